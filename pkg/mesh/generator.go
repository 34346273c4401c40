package mesh

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/spinelift/meshgen/pkg/contour"
	"github.com/spinelift/meshgen/pkg/raster"
	"github.com/spinelift/meshgen/pkg/trimesh"
)

// Generator runs the mesh pipeline for single images. It holds only
// read-only configuration and an injected logger, so one Generator can
// serve concurrent batch workers.
type Generator struct {
	params Params
	log    *zap.Logger
}

// NewGenerator returns a Generator with the params clamped into their
// valid ranges. A nil logger disables logging.
func NewGenerator(params Params, log *zap.Logger) *Generator {
	params.Clamp()
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{params: params, log: log}
}

// Params returns the effective (clamped) parameters.
func (g *Generator) Params() Params {
	return g.params
}

// GenerateFile loads the image at path and generates its mesh.
func (g *Generator) GenerateFile(ctx context.Context, path string) (*Result, error) {
	img, err := raster.Load(path)
	if err != nil {
		return nil, err
	}
	return g.Generate(ctx, path, img)
}

// Generate runs the full pipeline for one decoded image: opacity mask,
// filtering, contour extraction, simplification, triangulation and
// topology analysis. The stages are CPU-bound with no suspension
// points, so ctx is only observed between stages. Any stage failure
// aborts the image and is returned as a typed error; no partial
// geometry is ever produced.
func (g *Generator) Generate(ctx context.Context, id string, img *raster.Image) (*Result, error) {
	log := g.log.With(zap.String("image", id))

	mask := img.AlphaMask()
	if int(mask.Max()) < g.params.AlphaThreshold {
		log.Warn("mask is mostly transparent, mesh may be empty or small",
			zap.Int("alpha_threshold", g.params.AlphaThreshold))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	binary, err := raster.FilterMask(mask, g.params.BlurKernelSize, g.params.BinaryThreshold)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c, err := contour.Extract(binary, g.params.MinContourArea)
	if err != nil {
		return nil, err
	}
	log.Debug("found main contour",
		zap.Int("points", len(c)),
		zap.Float64("area", c.Area()))

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	simplified, ok := contour.Simplify(c, img.W, img.H, g.params.DetailFactor, g.params.ConcaveFactor)
	if !ok {
		log.Warn("contour simplification fell back to the image rectangle")
	} else {
		log.Debug("simplified contour",
			zap.Int("from", len(c)),
			zap.Int("to", len(simplified)))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	geo, err := trimesh.Triangulate(simplified, img.W, img.H, trimesh.Options{
		Density:         g.params.InternalVertexDensity,
		DensityScale:    g.params.DensityScalingFactor,
		MinTriangleArea: g.params.MinTriangleArea,
	})
	if err != nil {
		return nil, err
	}
	log.Debug("triangulated mesh",
		zap.Int("vertices", len(geo.Vertices)),
		zap.Int("triangles", len(geo.Triangles)))

	uvs := trimesh.UVs(geo.Vertices, img.W, img.H)
	edges := trimesh.ClassifyEdges(geo.Triangles)

	return &Result{
		ImagePath:       id,
		ImageName:       imageName(id),
		Width:           img.W,
		Height:          img.H,
		Vertices:        geo.Vertices,
		Triangles:       geo.Triangles,
		UVs:             uvs,
		BoundaryIndices: geo.BoundaryIndices,
		BoundaryEdges:   edges.Boundary,
		InternalEdges:   edges.Internal,
		ParamsUsed:      g.params,
		X:               float64(img.W) / 2,
		Y:               float64(img.H) / 2,
	}, nil
}

// imageName is the file stem of an image identifier.
func imageName(id string) string {
	base := filepath.Base(id)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
