package mesh

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultParams(t *testing.T) {
	p := DefaultParams()
	if p.DetailFactor != 0.01 {
		t.Errorf("DetailFactor = %v, want 0.01", p.DetailFactor)
	}
	if p.AlphaThreshold != 10 {
		t.Errorf("AlphaThreshold = %d, want 10", p.AlphaThreshold)
	}
	if p.BinaryThreshold != 128 {
		t.Errorf("BinaryThreshold = %d, want 128", p.BinaryThreshold)
	}
	if p.BlurKernelSize != 1 {
		t.Errorf("BlurKernelSize = %d, want 1", p.BlurKernelSize)
	}
	if p.MinContourArea != 10 {
		t.Errorf("MinContourArea = %v, want 10", p.MinContourArea)
	}
	if p.DensityScalingFactor != 1000 {
		t.Errorf("DensityScalingFactor = %v, want 1000", p.DensityScalingFactor)
	}
	if p.MinTriangleArea != 1 {
		t.Errorf("MinTriangleArea = %v, want 1", p.MinTriangleArea)
	}
}

func TestParamsClamp(t *testing.T) {
	p := Params{
		DetailFactor:          0.5,
		ConcaveFactor:         -3,
		AlphaThreshold:        999,
		BinaryThreshold:       -1,
		InternalVertexDensity: -2,
		MinContourArea:        -10,
		DensityScalingFactor:  0,
		MinTriangleArea:       0,
	}
	p.Clamp()

	if p.DetailFactor != 0.050 {
		t.Errorf("DetailFactor = %v, want 0.050", p.DetailFactor)
	}
	if p.ConcaveFactor != 0 {
		t.Errorf("ConcaveFactor = %v, want 0", p.ConcaveFactor)
	}
	if p.AlphaThreshold != 255 {
		t.Errorf("AlphaThreshold = %d, want 255", p.AlphaThreshold)
	}
	if p.BinaryThreshold != 0 {
		t.Errorf("BinaryThreshold = %d, want 0", p.BinaryThreshold)
	}
	if p.InternalVertexDensity != 0 {
		t.Errorf("InternalVertexDensity = %v, want 0", p.InternalVertexDensity)
	}
	if p.MinContourArea != 0 {
		t.Errorf("MinContourArea = %v, want 0", p.MinContourArea)
	}
	if p.DensityScalingFactor != 1000 {
		t.Errorf("DensityScalingFactor = %v, want 1000", p.DensityScalingFactor)
	}
	if p.MinTriangleArea != 1 {
		t.Errorf("MinTriangleArea = %v, want 1", p.MinTriangleArea)
	}
}

func TestParamsApply(t *testing.T) {
	p := DefaultParams()
	unknown := p.Apply(map[string]any{
		"detail_factor":   0.02,
		"alpha_threshold": 42,
		"zeta":            true,
		"alpha":           1,
	})

	if p.DetailFactor != 0.02 {
		t.Errorf("DetailFactor = %v, want 0.02", p.DetailFactor)
	}
	if p.AlphaThreshold != 42 {
		t.Errorf("AlphaThreshold = %d, want 42", p.AlphaThreshold)
	}
	if len(unknown) != 2 || unknown[0] != "alpha" || unknown[1] != "zeta" {
		t.Errorf("unknown keys = %v, want [alpha zeta]", unknown)
	}
}

func TestParamsApplyNumericCoercion(t *testing.T) {
	p := DefaultParams()
	p.Apply(map[string]any{
		"internal_vertex_density": 5,   // int into float field
		"blur_kernel_size":        3.0, // float into int field
	})
	if p.InternalVertexDensity != 5 {
		t.Errorf("InternalVertexDensity = %v, want 5", p.InternalVertexDensity)
	}
	if p.BlurKernelSize != 3 {
		t.Errorf("BlurKernelSize = %d, want 3", p.BlurKernelSize)
	}
}

func TestLoadParams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "params.yaml")
	data := "detail_factor: 0.9\nconcave_factor: 25\nbogus_key: 7\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	p, unknown, err := LoadParams(path)
	if err != nil {
		t.Fatalf("LoadParams() error = %v", err)
	}
	if p.DetailFactor != 0.050 {
		t.Errorf("DetailFactor = %v, want clamped 0.050", p.DetailFactor)
	}
	if p.ConcaveFactor != 25 {
		t.Errorf("ConcaveFactor = %v, want 25", p.ConcaveFactor)
	}
	if len(unknown) != 1 || unknown[0] != "bogus_key" {
		t.Errorf("unknown keys = %v, want [bogus_key]", unknown)
	}
}

func TestLoadParamsMissingFile(t *testing.T) {
	if _, _, err := LoadParams(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("LoadParams() on missing file returned nil error")
	}
}
