package table

import "math"

// Surface2D is a 2D lookup table over an (x, y) grid with z[i][j] sampled
// at (x[i], y[j]). It reproduces the triangular-split interpolation
// scheme used by the reference drag-polar tables (mach, angle-of-attack),
// which evaluates a plane through three of the four surrounding corners
// rather than a full bilinear blend.
type Surface2D struct {
	x []float64
	y []float64
	z [][]float64
}

// NewSurface2D builds a Surface2D from ascending x/y grids and a z matrix
// indexed z[i][j] = f(x[i], y[j]). Panics on malformed input, a
// construction-time invariant.
func NewSurface2D(x, y []float64, z [][]float64) Surface2D {
	if len(x) < 2 || len(y) < 2 {
		panic("table: Surface2D requires at least a 2x2 grid")
	}
	if len(z) != len(x) {
		panic("table: Surface2D z must have len(x) rows")
	}
	for _, row := range z {
		if len(row) != len(y) {
			panic("table: Surface2D z rows must have len(y) columns")
		}
	}
	for i := 1; i < len(x); i++ {
		if x[i] < x[i-1] {
			panic("table: Surface2D x must be non-decreasing")
		}
	}
	for j := 1; j < len(y); j++ {
		if y[j] < y[j-1] {
			panic("table: Surface2D y must be non-decreasing")
		}
	}
	return Surface2D{
		x: append([]float64(nil), x...),
		y: append([]float64(nil), y...),
		z: z,
	}
}

// At returns the interpolated value at (xv, yv), clamped to the grid
// bounds and resolved via the triangular-split scheme: the fractional
// position picks one of the cell's four quadrants, and the value comes
// from the plane through the nearest corner and its two neighbours.
func (s Surface2D) At(xv, yv float64) float64 {
	m, n := len(s.x), len(s.y)

	xc := clamp(xv, s.x[0], s.x[m-1])
	yc := clamp(yv, s.y[0], s.y[n-1])

	i := lowerIndex(xc, s.x)
	j := lowerIndex(yc, s.y)

	x0, x1 := s.x[i], s.x[i+1]
	dMach := 0.0
	if math.Abs(x1-x0) >= 1e-12 {
		dMach = (xc - x0) / (x1 - x0)
	}

	y0, y1 := s.y[j], s.y[j+1]
	dAlpha := 0.0
	if math.Abs(y1-y0) >= 1e-12 {
		dAlpha = (yc - y0) / (y1 - y0)
	}

	f := func(ii, jj int) float64 { return s.z[ii][jj] }

	switch {
	case dMach < 0.5 && dAlpha < 0.5:
		return f(i, j) + (f(i+1, j)-f(i, j))*dMach + (f(i, j+1)-f(i, j))*dAlpha
	case dMach < 0.5:
		return f(i, j+1) + (f(i+1, j+1)-f(i, j+1))*dMach + (f(i, j+1)-f(i, j))*(dAlpha-1.0)
	case dAlpha < 0.5:
		return f(i+1, j) + (f(i+1, j)-f(i, j))*(dMach-1.0) + (f(i+1, j+1)-f(i+1, j))*dAlpha
	default:
		return f(i+1, j+1) + (f(i+1, j+1)-f(i, j+1))*(dMach-1.0) + (f(i+1, j+1)-f(i+1, j))*(dAlpha-1.0)
	}
}

// lowerIndex returns the largest i such that grid[i] <= v < grid[i+1],
// clamped to n-2 when v falls at or beyond the last interval.
func lowerIndex(v float64, grid []float64) int {
	n := len(grid)
	for k := 1; k < n; k++ {
		if v < grid[k] {
			return k - 1
		}
	}
	return n - 2
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
