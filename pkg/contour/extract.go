package contour

import (
	"fmt"

	"github.com/spinelift/meshgen/pkg/raster"
)

// Extract finds the dominant silhouette contour in a binary mask. Each
// 8-connected foreground component contributes its outer boundary;
// boundaries enclosing less than minArea are discarded and the largest
// remaining one wins. ErrNoContour is returned when nothing qualifies.
func Extract(m *raster.Mask, minArea float64) (Contour, error) {
	if m == nil || len(m.Pix) == 0 {
		return nil, fmt.Errorf("%w: empty mask", ErrNoContour)
	}

	comps := labelComponents(m)
	if len(comps) == 0 {
		return nil, ErrNoContour
	}

	var best Contour
	bestArea := -1.0
	for _, comp := range comps {
		c := traceBoundary(comp.labels, m.W, m.H, comp.id, comp.bounds)
		if len(c) == 0 {
			continue
		}
		area := c.Area()
		if area < minArea {
			continue
		}
		if area > bestArea {
			best, bestArea = c, area
		}
	}

	if best == nil {
		return nil, fmt.Errorf("%w: no contour with area >= %g", ErrNoContour, minArea)
	}
	return best, nil
}

type bbox struct {
	minX, minY, maxX, maxY int
}

type component struct {
	labels []int
	id     int
	bounds bbox
}

// labelComponents assigns a positive label to every 8-connected
// foreground (value > 0) component and records its bounding box.
// All components share one label grid.
func labelComponents(m *raster.Mask) []component {
	labels := make([]int, m.W*m.H)
	var comps []component
	next := 1

	var stack []int
	for i, v := range m.Pix {
		if v == 0 || labels[i] != 0 {
			continue
		}

		b := bbox{minX: m.W, minY: m.H, maxX: -1, maxY: -1}
		labels[i] = next
		stack = append(stack[:0], i)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			x, y := idx%m.W, idx/m.W
			if x < b.minX {
				b.minX = x
			}
			if y < b.minY {
				b.minY = y
			}
			if x > b.maxX {
				b.maxX = x
			}
			if y > b.maxY {
				b.maxY = y
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || ny < 0 || nx >= m.W || ny >= m.H {
						continue
					}
					ni := ny*m.W + nx
					if m.Pix[ni] > 0 && labels[ni] == 0 {
						labels[ni] = next
						stack = append(stack, ni)
					}
				}
			}
		}

		comps = append(comps, component{labels: labels, id: next, bounds: b})
		next++
	}
	return comps
}

// Clockwise Moore neighborhood: E, SE, S, SW, W, NW, N, NE.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

// traceBoundary walks the outer boundary of a labeled component with
// Moore-neighbor tracing, returning pixel-center coordinates with
// collinear points pruned.
func traceBoundary(labels []int, w, h, label int, b bbox) Contour {
	isLabel := func(x, y int) bool {
		if x < 0 || y < 0 || x >= w || y >= h {
			return false
		}
		return labels[y*w+x] == label
	}

	// Starting pixel: first component pixel in scan order. It is always
	// a boundary pixel since nothing of the component lies above it.
	sx, sy := -1, -1
	for y := b.minY; y <= b.maxY && sx == -1; y++ {
		for x := b.minX; x <= b.maxX; x++ {
			if isLabel(x, y) {
				sx, sy = x, y
				break
			}
		}
	}
	if sx == -1 {
		return nil
	}

	pts := make(Contour, 0, 64)
	push := func(x, y int) {
		// Drop the middle point of any collinear run.
		if n := len(pts); n >= 2 {
			a, bp := pts[n-2], pts[n-1]
			cross := (bp.X-a.X)*(y-bp.Y) - (bp.Y-a.Y)*(x-bp.X)
			if cross == 0 {
				pts = pts[:n-1]
			}
		}
		pts = append(pts, Point{x, y})
	}

	cx, cy := sx, sy
	bx, by := sx-1, sy // backtrack starts west of the start pixel
	push(cx, cy)

	maxSteps := w*h*4 + 8
	for step := 0; step < maxSteps; step++ {
		nx, ny, nbx, nby, ok := nextBoundaryPixel(isLabel, cx, cy, bx, by)
		if !ok {
			break // isolated pixel
		}
		cx, cy, bx, by = nx, ny, nbx, nby

		if cx == sx && cy == sy && bx == sx-1 && by == sy {
			break // start revisited from the original direction, loop closed
		}
		if last := pts[len(pts)-1]; last.X != cx || last.Y != cy {
			push(cx, cy)
		}
	}

	// Drop a duplicated closing point, the wrap edge is implicit.
	if n := len(pts); n >= 2 && pts[0] == pts[n-1] {
		pts = pts[:n-1]
	}
	return pts
}

// nextBoundaryPixel scans the Moore neighborhood of (cx,cy) clockwise
// starting just after the backtrack pixel (bx,by) and returns the first
// component pixel along with the new backtrack position, the last
// background pixel visited before it.
func nextBoundaryPixel(isLabel func(int, int) bool, cx, cy, bx, by int) (nx, ny, nbx, nby int, ok bool) {
	start := 0
	for i := 0; i < 8; i++ {
		if cx+mooreDX[i] == bx && cy+mooreDY[i] == by {
			start = (i + 1) % 8
			break
		}
	}

	px, py := bx, by
	for k := 0; k < 8; k++ {
		i := (start + k) % 8
		tx, ty := cx+mooreDX[i], cy+mooreDY[i]
		if isLabel(tx, ty) {
			return tx, ty, px, py, true
		}
		px, py = tx, ty
	}
	return 0, 0, 0, 0, false
}
