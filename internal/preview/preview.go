// Package preview renders diagnostic wireframe overlays for generated
// meshes.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"github.com/spinelift/meshgen/pkg/mesh"
	"github.com/spinelift/meshgen/pkg/raster"
)

var wireColor = color.RGBA{R: 255, G: 0, B: 255, A: 255}

// Write renders the mesh wireframe over the source image and writes it
// as <outputDir>/<image name>_mesh.png, returning the written path.
func Write(outputDir string, src *raster.Image, result *mesh.Result) (string, error) {
	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("creating preview dir: %w", err)
		}
	}

	img := Overlay(src, result)

	filename := filepath.Join(outputDir, result.ImageName+"_mesh.png")
	f, err := os.Create(filename)
	if err != nil {
		return "", fmt.Errorf("creating preview file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding preview: %w", err)
	}
	return filename, nil
}

// Overlay copies the source image and draws every triangle edge of the
// mesh onto it.
func Overlay(src *raster.Image, result *mesh.Result) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, src.W, src.H))
	copy(img.Pix, src.Pix)

	for _, t := range result.Triangles {
		a, b, c := result.Vertices[t[0]], result.Vertices[t[1]], result.Vertices[t[2]]
		drawLine(img, a, b)
		drawLine(img, b, c)
		drawLine(img, c, a)
	}
	return img
}

// drawLine draws a line between two pixel-space points with simple DDA
// stepping; preview output does not need anti-aliasing.
func drawLine(img *image.NRGBA, from, to [2]float64) {
	dx := to[0] - from[0]
	dy := to[1] - from[1]

	steps := int(max(abs(dx), abs(dy)))
	if steps == 0 {
		img.Set(int(from[0]), int(from[1]), wireColor)
		return
	}

	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		img.Set(int(from[0]+dx*t), int(from[1]+dy*t), wireColor)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
