package contour

import "math"

// Detail-factor range and the epsilon percentages it maps onto.
// Maximum detail (lowest factor) keeps the tolerance at 0.2% of the
// perimeter, minimum detail lets it grow to 3%.
const (
	minDetailFactor = 0.001
	maxDetailFactor = 0.050
	maxDetailEps    = 0.002
	minDetailEps    = 0.030

	maxConcaveFactor = 100.0
	minEpsilon       = 0.1
)

// FallbackRect returns the degenerate-input replacement polygon, the
// axis-aligned image rectangle.
func FallbackRect(w, h int) Contour {
	return Contour{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

// Simplify reduces a contour to a sparse polygon with a Douglas-Peucker
// pass whose tolerance derives from the contour perimeter, detailFactor
// and concaveFactor. Contours that are too short, have zero perimeter
// or collapse below 3 points are replaced by the image rectangle; the
// returned bool is false in that case and true for a real reduction.
func Simplify(c Contour, w, h int, detailFactor, concaveFactor float64) (Contour, bool) {
	if len(c) < 3 {
		return FallbackRect(w, h), false
	}

	arc := c.ArcLength()
	if arc == 0 {
		return FallbackRect(w, h), false
	}

	eps := epsilonFor(arc, detailFactor, concaveFactor)
	simplified := reduceClosed(c, eps)
	if len(simplified) < 3 {
		return FallbackRect(w, h), false
	}
	return simplified, true
}

// epsilonFor maps the user-facing factors to a Douglas-Peucker
// tolerance. detailFactor moves through a square-root curve so the low
// end of the range keeps disproportionally more points; concaveFactor
// scales the result by a multiplier in [1, 5].
func epsilonFor(arcLength, detailFactor, concaveFactor float64) float64 {
	df := clampFloat(detailFactor, minDetailFactor, maxDetailFactor)
	norm := (df - minDetailFactor) / (maxDetailFactor - minDetailFactor)
	epsPerc := maxDetailEps + math.Sqrt(norm)*(minDetailEps-maxDetailEps)

	eps := epsPerc * arcLength

	cf := clampFloat(concaveFactor, 0, maxConcaveFactor)
	eps *= 1.0 + (cf/maxConcaveFactor)*4.0

	return math.Max(minEpsilon, eps)
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// reduceClosed runs Douglas-Peucker on a closed contour by splitting it
// at the point farthest from point 0 and reducing both halves.
func reduceClosed(c Contour, eps float64) Contour {
	far, maxD := 0, -1.0
	for i := 1; i < len(c); i++ {
		dx := float64(c[i].X - c[0].X)
		dy := float64(c[i].Y - c[0].Y)
		if d := dx*dx + dy*dy; d > maxD {
			far, maxD = i, d
		}
	}
	if far == 0 {
		return nil
	}

	first := douglasPeucker(c[:far+1], eps)
	second := douglasPeucker(append(append(Contour{}, c[far:]...), c[0]), eps)

	// Both halves keep their endpoints, so the split point ends first
	// and starts second, and second closes back on point 0.
	out := append(Contour{}, first...)
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}
	return out
}

// douglasPeucker reduces an open polyline, always keeping both
// endpoints.
func douglasPeucker(pts Contour, eps float64) Contour {
	if len(pts) < 3 {
		return append(Contour{}, pts...)
	}

	far, maxD := 0, 0.0
	a, b := pts[0], pts[len(pts)-1]
	for i := 1; i < len(pts)-1; i++ {
		if d := perpDistance(pts[i], a, b); d > maxD {
			far, maxD = i, d
		}
	}

	if maxD <= eps {
		return Contour{a, b}
	}

	left := douglasPeucker(pts[:far+1], eps)
	right := douglasPeucker(pts[far:], eps)
	return append(left[:len(left)-1], right...)
}

// perpDistance is the perpendicular distance from p to the line through
// a and b, or the point distance when a == b.
func perpDistance(p, a, b Point) float64 {
	abx := float64(b.X - a.X)
	aby := float64(b.Y - a.Y)
	apx := float64(p.X - a.X)
	apy := float64(p.Y - a.Y)

	length := math.Hypot(abx, aby)
	if length == 0 {
		return math.Hypot(apx, apy)
	}
	return math.Abs(abx*apy-aby*apx) / length
}
