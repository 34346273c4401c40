package raster

// Mask is a single-channel opacity buffer with the same dimensions as
// its source image. Values range 0 (transparent) to 255 (opaque).
type Mask struct {
	Pix  []uint8
	W, H int
}

// NewMask allocates a zeroed w x h mask.
func NewMask(w, h int) *Mask {
	return &Mask{Pix: make([]uint8, w*h), W: w, H: h}
}

// At returns the mask value at (x, y). Out-of-bounds reads return 0.
func (m *Mask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.W || y >= m.H {
		return 0
	}
	return m.Pix[y*m.W+x]
}

// Max returns the largest value in the mask, 0 for an empty mask.
func (m *Mask) Max() uint8 {
	var max uint8
	for _, v := range m.Pix {
		if v > max {
			max = v
		}
	}
	return max
}

// AlphaMask derives the opacity mask for the image. When the source
// format carried an alpha channel the mask is that channel verbatim;
// otherwise the whole image counts as opaque.
func (img *Image) AlphaMask() *Mask {
	m := NewMask(img.W, img.H)
	if img.Channels == 4 {
		for i := range m.Pix {
			m.Pix[i] = img.Pix[i*4+3]
		}
		return m
	}
	for i := range m.Pix {
		m.Pix[i] = 255
	}
	return m
}
