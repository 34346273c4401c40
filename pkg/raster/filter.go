package raster

// FilterMask smooths and binarizes a mask so contour extraction sees
// stable region boundaries. A kernel size of 1 or less skips the blur;
// an even kernel size is bumped to the next odd value. The threshold is
// clamped to [0, 255] and applied as a hard cut: values strictly above
// it become 255, everything else 0.
func FilterMask(m *Mask, kernelSize, threshold int) (*Mask, error) {
	if m == nil || len(m.Pix) == 0 || m.W <= 0 || m.H <= 0 {
		return nil, ErrEmptyMask
	}

	if kernelSize > 0 && kernelSize%2 == 0 {
		kernelSize++
	}

	out := m
	if kernelSize > 1 {
		out = boxBlur(m, kernelSize)
	}

	if threshold < 0 {
		threshold = 0
	} else if threshold > 255 {
		threshold = 255
	}

	bin := NewMask(out.W, out.H)
	for i, v := range out.Pix {
		if int(v) > threshold {
			bin.Pix[i] = 255
		}
	}
	return bin, nil
}

// boxBlur applies a separable k x k box filter. Windows are clamped at
// the borders and normalized by the number of pixels actually covered,
// so edge values are not darkened.
func boxBlur(m *Mask, k int) *Mask {
	r := k / 2
	tmp := NewMask(m.W, m.H)
	out := NewMask(m.W, m.H)

	// Horizontal pass.
	for y := 0; y < m.H; y++ {
		row := m.Pix[y*m.W : (y+1)*m.W]
		for x := 0; x < m.W; x++ {
			lo, hi := x-r, x+r
			if lo < 0 {
				lo = 0
			}
			if hi > m.W-1 {
				hi = m.W - 1
			}
			sum := 0
			for i := lo; i <= hi; i++ {
				sum += int(row[i])
			}
			n := hi - lo + 1
			tmp.Pix[y*m.W+x] = uint8((sum + n/2) / n)
		}
	}

	// Vertical pass.
	for x := 0; x < m.W; x++ {
		for y := 0; y < m.H; y++ {
			lo, hi := y-r, y+r
			if lo < 0 {
				lo = 0
			}
			if hi > m.H-1 {
				hi = m.H - 1
			}
			sum := 0
			for i := lo; i <= hi; i++ {
				sum += int(tmp.Pix[i*m.W+x])
			}
			n := hi - lo + 1
			out.Pix[y*m.W+x] = uint8((sum + n/2) / n)
		}
	}
	return out
}
