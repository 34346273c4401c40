// Package raster provides decoded image buffers and the opacity-mask
// operations the mesh pipeline runs before contour extraction.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"os"

	// Register decoders for the formats the loader accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Raster errors.
var (
	ErrLoadFailed = errors.New("image load failed")
	ErrEmptyMask  = errors.New("empty mask")
)

// Image is a decoded raster image with an owned RGBA pixel buffer.
// Channels records whether the source format carried an alpha channel
// (4) or not (3); the buffer itself is always stored as 4 bytes per
// pixel in RGBA order.
type Image struct {
	Pix      []uint8
	W, H     int
	Channels int
}

// FromImage converts a decoded image.Image into an owned buffer.
func FromImage(src image.Image) *Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	return &Image{
		Pix:      dst.Pix,
		W:        w,
		H:        h,
		Channels: sourceChannels(src),
	}
}

// sourceChannels reports 4 for source formats that carry alpha, 3 otherwise.
func sourceChannels(src image.Image) int {
	switch img := src.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64, *image.Alpha, *image.Alpha16:
		return 4
	case *image.Paletted:
		for _, c := range img.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	default:
		return 3
	}
}

// Load reads and decodes the image at path. Any open or decode failure
// is reported as ErrLoadFailed.
func Load(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrLoadFailed, path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decoding %s: %v", ErrLoadFailed, path, err)
	}

	img := FromImage(src)
	if img.W == 0 || img.H == 0 {
		return nil, fmt.Errorf("%w: %s has zero dimensions", ErrLoadFailed, path)
	}
	return img, nil
}
