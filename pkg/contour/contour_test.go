package contour

import (
	"errors"
	"math"
	"testing"

	"github.com/spinelift/meshgen/pkg/raster"
)

func rectMask(w, h, x0, y0, x1, y1 int) *raster.Mask {
	m := raster.NewMask(w, h)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			m.Pix[y*w+x] = 255
		}
	}
	return m
}

func containsPoint(c Contour, p Point) bool {
	for _, q := range c {
		if q == p {
			return true
		}
	}
	return false
}

func TestExtractRectangle(t *testing.T) {
	m := rectMask(100, 150, 20, 30, 80, 120)

	c, err := Extract(m, 10)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}

	for _, corner := range []Point{{20, 30}, {79, 30}, {79, 119}, {20, 119}} {
		if !containsPoint(c, corner) {
			t.Errorf("contour missing corner %v", corner)
		}
	}
	wantArea := float64(79-20) * float64(119-30)
	if got := c.Area(); math.Abs(got-wantArea) > 1e-9 {
		t.Errorf("Area() = %v, want %v", got, wantArea)
	}
}

func TestExtractPicksLargestComponent(t *testing.T) {
	m := raster.NewMask(20, 20)
	for y := 1; y < 4; y++ {
		for x := 1; x < 4; x++ {
			m.Pix[y*20+x] = 255
		}
	}
	for y := 8; y < 14; y++ {
		for x := 8; x < 14; x++ {
			m.Pix[y*20+x] = 255
		}
	}

	c, err := Extract(m, 1)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !containsPoint(c, Point{8, 8}) {
		t.Errorf("contour should trace the larger component, got %v", c)
	}
	if containsPoint(c, Point{1, 1}) {
		t.Errorf("contour should not include the smaller component")
	}
}

func TestExtractMinAreaFilters(t *testing.T) {
	m := rectMask(10, 10, 2, 2, 5, 5) // traced area 2*2 = 4

	if _, err := Extract(m, 10); !errors.Is(err, ErrNoContour) {
		t.Errorf("Extract() error = %v, want ErrNoContour", err)
	}
	if _, err := Extract(m, 1); err != nil {
		t.Errorf("Extract() error = %v, want nil for area above minimum", err)
	}
}

func TestExtractEmptyMask(t *testing.T) {
	if _, err := Extract(raster.NewMask(10, 10), 1); !errors.Is(err, ErrNoContour) {
		t.Errorf("Extract() on blank mask error = %v, want ErrNoContour", err)
	}
}

func TestAreaAndArcLength(t *testing.T) {
	square := Contour{{0, 0}, {10, 0}, {10, 10}, {0, 10}}
	if got := square.Area(); got != 100 {
		t.Errorf("Area() = %v, want 100", got)
	}
	if got := square.ArcLength(); got != 40 {
		t.Errorf("ArcLength() = %v, want 40", got)
	}
}

func TestSimplifyFallback(t *testing.T) {
	cases := []struct {
		name string
		in   Contour
	}{
		{"nil", nil},
		{"two points", Contour{{0, 0}, {5, 5}}},
		{"degenerate", Contour{{3, 3}, {3, 3}, {3, 3}}},
	}
	for _, tc := range cases {
		got, ok := Simplify(tc.in, 200, 300, 0.01, 0)
		if ok {
			t.Errorf("%s: Simplify() ok = true, want fallback", tc.name)
		}
		want := FallbackRect(200, 300)
		if len(got) != len(want) {
			t.Fatalf("%s: fallback has %d points, want %d", tc.name, len(got), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("%s: fallback[%d] = %v, want %v", tc.name, i, got[i], want[i])
			}
		}
	}
}

func TestSimplifyKeepsCorners(t *testing.T) {
	c := Contour{{0, 0}, {50, 0}, {100, 0}, {100, 100}, {0, 100}}

	got, ok := Simplify(c, 100, 100, 0.01, 0)
	if !ok {
		t.Fatalf("Simplify() fell back unexpectedly")
	}
	if len(got) != 4 {
		t.Fatalf("Simplify() kept %d points, want 4: %v", len(got), got)
	}
	for _, corner := range []Point{{0, 0}, {100, 0}, {100, 100}, {0, 100}} {
		if !containsPoint(got, corner) {
			t.Errorf("simplified contour missing corner %v", corner)
		}
	}
}

func circle(cx, cy int, r float64, n int) Contour {
	c := make(Contour, 0, n)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		c = append(c, Point{
			X: cx + int(math.Round(r*math.Cos(a))),
			Y: cy + int(math.Round(r*math.Sin(a))),
		})
	}
	return c
}

func TestSimplifyDetailFactorControlsPointCount(t *testing.T) {
	c := circle(50, 50, 40, 64)

	fine, ok := Simplify(c, 100, 100, 0.001, 0)
	if !ok {
		t.Fatalf("fine Simplify() fell back")
	}
	coarse, ok := Simplify(c, 100, 100, 0.05, 0)
	if !ok {
		t.Fatalf("coarse Simplify() fell back")
	}
	if len(fine) < len(coarse) {
		t.Errorf("lower detail factor kept %d points, coarse kept %d; want fine >= coarse", len(fine), len(coarse))
	}
	if len(coarse) < 3 {
		t.Errorf("coarse polygon has %d points, want at least 3", len(coarse))
	}
}

func TestSimplifyConcaveFactorReducesPoints(t *testing.T) {
	c := circle(50, 50, 40, 64)

	plain, ok := Simplify(c, 100, 100, 0.01, 0)
	if !ok {
		t.Fatalf("Simplify() fell back")
	}
	relaxed, ok := Simplify(c, 100, 100, 0.01, 100)
	if !ok {
		t.Fatalf("Simplify() with concave factor fell back")
	}
	if len(relaxed) > len(plain) {
		t.Errorf("concave factor 100 kept %d points, plain kept %d; want relaxed <= plain", len(relaxed), len(plain))
	}
}

func TestFallbackRect(t *testing.T) {
	r := FallbackRect(200, 300)
	want := Contour{{0, 0}, {200, 0}, {200, 300}, {0, 300}}
	if len(r) != 4 {
		t.Fatalf("FallbackRect() has %d points, want 4", len(r))
	}
	for i := range want {
		if r[i] != want[i] {
			t.Errorf("FallbackRect()[%d] = %v, want %v", i, r[i], want[i])
		}
	}
}
