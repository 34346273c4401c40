// Package mesh runs the raster-to-mesh generation pipeline: mask
// derivation, contour extraction and simplification, constrained
// triangulation and topology analysis, plus the batch driver that fans
// the pipeline out over many images.
package mesh

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Params configures mesh generation. A Params value is validated once
// and then shared read-only across a whole batch.
type Params struct {
	// DetailFactor controls polygon detail in [0.001, 0.050]; lower
	// keeps more contour points.
	DetailFactor float64 `yaml:"detail_factor" json:"detail_factor"`
	// AlphaThreshold is the opacity cutoff used to warn about
	// mostly-transparent inputs.
	AlphaThreshold int `yaml:"alpha_threshold" json:"alpha_threshold"`
	// ConcaveFactor in [0, 100] scales the simplification tolerance.
	ConcaveFactor float64 `yaml:"concave_factor" json:"concave_factor"`
	// InternalVertexDensity enables interior refinement when > 0;
	// higher values produce smaller triangles.
	InternalVertexDensity float64 `yaml:"internal_vertex_density" json:"internal_vertex_density"`
	// BlurKernelSize is the mask blur kernel; 1 or less disables the blur.
	BlurKernelSize int `yaml:"blur_kernel_size" json:"blur_kernel_size"`
	// BinaryThreshold is the mask binarization cutoff in [0, 255].
	BinaryThreshold int `yaml:"binary_threshold" json:"binary_threshold"`
	// MinContourArea drops contours enclosing less than this area.
	MinContourArea float64 `yaml:"min_contour_area" json:"min_contour_area"`
	// DensityScalingFactor converts density to a triangle area bound.
	DensityScalingFactor float64 `yaml:"density_scaling_factor" json:"density_scaling_factor"`
	// MinTriangleArea floors the refinement area bound.
	MinTriangleArea float64 `yaml:"min_triangle_area" json:"min_triangle_area"`
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		DetailFactor:          0.01,
		AlphaThreshold:        10,
		ConcaveFactor:         0.0,
		InternalVertexDensity: 0,
		BlurKernelSize:        1,
		BinaryThreshold:       128,
		MinContourArea:        10,
		DensityScalingFactor:  1000.0,
		MinTriangleArea:       1.0,
	}
}

// Clamp forces every field into its valid range.
func (p *Params) Clamp() {
	if p.DetailFactor < 0.001 {
		p.DetailFactor = 0.001
	} else if p.DetailFactor > 0.050 {
		p.DetailFactor = 0.050
	}
	if p.ConcaveFactor < 0 {
		p.ConcaveFactor = 0
	} else if p.ConcaveFactor > 100 {
		p.ConcaveFactor = 100
	}
	if p.BinaryThreshold < 0 {
		p.BinaryThreshold = 0
	} else if p.BinaryThreshold > 255 {
		p.BinaryThreshold = 255
	}
	if p.AlphaThreshold < 0 {
		p.AlphaThreshold = 0
	} else if p.AlphaThreshold > 255 {
		p.AlphaThreshold = 255
	}
	if p.InternalVertexDensity < 0 {
		p.InternalVertexDensity = 0
	}
	if p.MinContourArea < 0 {
		p.MinContourArea = 0
	}
	if p.DensityScalingFactor <= 0 {
		p.DensityScalingFactor = 1000.0
	}
	if p.MinTriangleArea <= 0 {
		p.MinTriangleArea = 1.0
	}
}

// Apply overrides fields from a loosely-typed option map, the shape a
// YAML or JSON payload decodes into. Recognized keys override the
// current value; unrecognized keys are returned, sorted, so the caller
// can warn about them. They are never fatal.
func (p *Params) Apply(opts map[string]any) []string {
	var unknown []string
	for key, value := range opts {
		switch key {
		case "detail_factor":
			setFloat(&p.DetailFactor, value)
		case "alpha_threshold":
			setInt(&p.AlphaThreshold, value)
		case "concave_factor":
			setFloat(&p.ConcaveFactor, value)
		case "internal_vertex_density":
			setFloat(&p.InternalVertexDensity, value)
		case "blur_kernel_size":
			setInt(&p.BlurKernelSize, value)
		case "binary_threshold":
			setInt(&p.BinaryThreshold, value)
		case "min_contour_area":
			setFloat(&p.MinContourArea, value)
		case "density_scaling_factor":
			setFloat(&p.DensityScalingFactor, value)
		case "min_triangle_area":
			setFloat(&p.MinTriangleArea, value)
		default:
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// LoadParams reads a YAML params file on top of the defaults and
// returns the resulting Params plus any unrecognized keys.
func LoadParams(path string) (Params, []string, error) {
	p := DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return p, nil, fmt.Errorf("reading params from %s: %w", path, err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return p, nil, fmt.Errorf("parsing params from %s: %w", path, err)
	}

	unknown := p.Apply(raw)
	p.Clamp()
	return p, unknown, nil
}

func setFloat(dst *float64, value any) {
	switch v := value.(type) {
	case float64:
		*dst = v
	case float32:
		*dst = float64(v)
	case int:
		*dst = float64(v)
	case int64:
		*dst = float64(v)
	case uint64:
		*dst = float64(v)
	}
}

func setInt(dst *int, value any) {
	switch v := value.(type) {
	case int:
		*dst = v
	case int64:
		*dst = int(v)
	case uint64:
		*dst = int(v)
	case float64:
		*dst = int(v)
	case float32:
		*dst = int(v)
	}
}
