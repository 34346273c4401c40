// Package trimesh turns simplified silhouette polygons into 2D
// triangle meshes and derives their texture coordinates and edge
// topology.
package trimesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/rclancey/earcut"

	"github.com/spinelift/meshgen/pkg/contour"
)

// Trimesh errors.
var (
	ErrTriangulation = errors.New("triangulation failed")
)

// Geometry is a triangulated planar mesh. BoundaryIndices maps the
// input polygon points, in order, to vertex indices; the polygon is
// always the prefix of Vertices.
type Geometry struct {
	Vertices        [][2]float64
	Triangles       [][3]int
	BoundaryIndices []int
}

// Options controls interior refinement. A Density of 0 disables it.
type Options struct {
	Density         float64
	DensityScale    float64
	MinTriangleArea float64
}

// MaxTriangleArea converts the density setting into the maximum allowed
// triangle area for a w x h image. Higher density means smaller
// triangles. It returns 0 when refinement is disabled (density or image
// dimensions not positive).
func (o Options) MaxTriangleArea(w, h int) float64 {
	if o.Density <= 0 || w <= 0 || h <= 0 {
		return 0
	}
	scale := o.DensityScale
	if scale <= 0 {
		scale = 1000.0
	}
	minArea := o.MinTriangleArea
	if minArea <= 0 {
		minArea = 1.0
	}
	return math.Max(minArea, float64(w*h)/(o.Density*scale))
}

// Triangulate builds a constrained triangulation of the closed polygon.
// The polygon points become the leading vertices of the mesh and its
// edges are preserved as triangle edges. When opts enables refinement,
// oversized triangles are split until every triangle respects the area
// bound for the w x h image.
func Triangulate(poly contour.Contour, w, h int, opts Options) (*Geometry, error) {
	if len(poly) < 3 {
		return nil, fmt.Errorf("%w: polygon has %d points, need at least 3", ErrTriangulation, len(poly))
	}

	coords := make([]float64, 0, len(poly)*2)
	for _, p := range poly {
		coords = append(coords, float64(p.X), float64(p.Y))
	}

	indices, err := earcut.Earcut(coords, nil, 2)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTriangulation, err)
	}
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: backend returned %d indices", ErrTriangulation, len(indices))
	}

	vertices := make([][2]float64, len(poly))
	for i, p := range poly {
		vertices[i] = [2]float64{float64(p.X), float64(p.Y)}
	}

	triangles := make([][3]int, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		t := [3]int{indices[i], indices[i+1], indices[i+2]}
		if triangleArea(vertices, t) > 0 {
			triangles = append(triangles, t)
		}
	}

	if len(vertices) < 3 || len(triangles) == 0 {
		return nil, fmt.Errorf("%w: %d vertices, %d triangles", ErrTriangulation, len(vertices), len(triangles))
	}

	if maxArea := opts.MaxTriangleArea(w, h); maxArea > 0 {
		vertices, triangles = refine(vertices, triangles, maxArea)
	}

	boundary := make([]int, len(poly))
	for i := range boundary {
		boundary[i] = i
	}
	if err := verifyBoundaryPrefix(vertices, poly); err != nil {
		return nil, err
	}

	return &Geometry{
		Vertices:        vertices,
		Triangles:       triangles,
		BoundaryIndices: boundary,
	}, nil
}

// verifyBoundaryPrefix checks that the input polygon survived as the
// leading vertices of the mesh. The earcut backend indexes into the
// input array so this holds by construction, but boundary indices are
// meaningless if it ever stops holding.
func verifyBoundaryPrefix(vertices [][2]float64, poly contour.Contour) error {
	if len(vertices) < len(poly) {
		return fmt.Errorf("%w: %d vertices for a %d point polygon", ErrTriangulation, len(vertices), len(poly))
	}
	for i, p := range poly {
		if vertices[i][0] != float64(p.X) || vertices[i][1] != float64(p.Y) {
			return fmt.Errorf("%w: vertex %d moved from (%d,%d) to (%g,%g)",
				ErrTriangulation, i, p.X, p.Y, vertices[i][0], vertices[i][1])
		}
	}
	return nil
}

// refine splits every triangle larger than maxArea at its centroid into
// three until all triangles fit. Centroid splits never touch shared
// edges, so the mesh stays conforming, and the split decision depends
// only on the triangle itself, so a tighter bound always yields at
// least as many triangles.
func refine(vertices [][2]float64, triangles [][3]int, maxArea float64) ([][2]float64, [][3]int) {
	out := make([][3]int, 0, len(triangles))
	queue := append([][3]int{}, triangles...)

	for i := 0; i < len(queue); i++ {
		t := queue[i]
		if triangleArea(vertices, t) <= maxArea {
			out = append(out, t)
			continue
		}

		a, b, c := vertices[t[0]], vertices[t[1]], vertices[t[2]]
		centroid := [2]float64{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3}
		ci := len(vertices)
		vertices = append(vertices, centroid)

		queue = append(queue,
			[3]int{t[0], t[1], ci},
			[3]int{t[1], t[2], ci},
			[3]int{t[2], t[0], ci},
		)
	}
	return vertices, out
}

// triangleArea returns the unsigned area of triangle t.
func triangleArea(vertices [][2]float64, t [3]int) float64 {
	a, b, c := vertices[t[0]], vertices[t[1]], vertices[t[2]]
	return math.Abs((b[0]-a[0])*(c[1]-a[1])-(c[0]-a[0])*(b[1]-a[1])) / 2
}
