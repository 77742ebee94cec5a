package gamut

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/okcolor/colorconv"
)

const (
	fit_samples      = 720
	fit_search_limit = 10
)

// hue_directions computes the channel selection vectors from the hues of
// the primaries. The region of a channel is bounded by the chord between
// the hues of the other two primaries.
func hue_directions(rgb_to_lms *colorconv.Mat3) (ans [3][2]float64) {
	var hues [3]float64
	for i := range 3 {
		var primary colorconv.Vec3
		primary[i] = 1
		lab := colorconv.OKLabFrom(primary, rgb_to_lms)
		hues[i] = math.Atan2(lab[2], lab[1])
	}
	dir := func(h1, h2 float64) [2]float64 {
		x := 0.5 * (math.Cos(h1) + math.Cos(h2))
		y := 0.5 * (math.Sin(h1) + math.Sin(h2))
		n := x*x + y*y
		return [2]float64{x / n, y / n}
	}
	r, g, b := hues[0], hues[1], hues[2]
	ans[0], ans[1], ans[2] = dir(b, g), dir(b, r), dir(r, g)
	return
}

func basis(a, b float64) [5]float64 {
	return [5]float64{1, a, b, a * a, a * b}
}

// FitCoefficients fits the max saturation polynomial of every channel to the
// exact saturation at which that channel clips, sampled over all hues. It
// returns the largest absolute error of the fitted polynomial over the
// samples.
func FitCoefficients(lmsToRGB *colorconv.Mat3) (ans Coefficients, max_residual float64, err error) {
	rgb_to_lms, err := lmsToRGB.Inverted()
	if err != nil {
		return
	}
	dirs := hue_directions(&rgb_to_lms)
	for i := range 3 {
		ans[i].Dir = dirs[i]
	}
	type sample struct{ a, b, s float64 }
	var samples [3][]sample
	for i := range fit_samples {
		h := 2 * math.Pi * (float64(i) + 0.5) / fit_samples
		b, a := math.Sincos(h)
		ch := pick_channel(a, b, &ans)
		p := channel_cubic(a, b, lmsToRGB[ch])
		if s, found := p.first_root(fit_search_limit); found {
			samples[ch] = append(samples[ch], sample{a, b, s})
		}
	}
	for ch, ss := range samples {
		var ata [5][5]float64
		var aty [5]float64
		mean := 0.
		for _, x := range ss {
			phi := basis(x.a, x.b)
			for r := range 5 {
				aty[r] += phi[r] * x.s
				for k := range 5 {
					ata[r][k] += phi[r] * phi[k]
				}
			}
			mean += x.s
		}
		k, serr := solve5(ata, aty)
		if serr != nil {
			// too few hues for this channel to fit a surface, a constant is
			// enough as refinement corrects the estimate
			k = [5]float64{}
			if len(ss) > 0 {
				k[0] = mean / float64(len(ss))
			}
		}
		ans[ch].K = k
		for _, x := range ss {
			phi := basis(x.a, x.b)
			est := 0.
			for r := range 5 {
				est += k[r] * phi[r]
			}
			max_residual = max(max_residual, math.Abs(est-x.s))
		}
	}
	return
}

// solve5 solves a·x = y with Gaussian elimination and partial pivoting
func solve5(a [5][5]float64, y [5]float64) (x [5]float64, err error) {
	const n = 5
	for c := range n {
		p := c
		for r := c + 1; r < n; r++ {
			if math.Abs(a[r][c]) > math.Abs(a[p][c]) {
				p = r
			}
		}
		if math.Abs(a[p][c]) < 1e-12 {
			return x, fmt.Errorf("normal equations are singular")
		}
		a[c], a[p] = a[p], a[c]
		y[c], y[p] = y[p], y[c]
		for r := c + 1; r < n; r++ {
			f := a[r][c] / a[c][c]
			for k := c; k < n; k++ {
				a[r][k] -= f * a[c][k]
			}
			y[r] -= f * y[c]
		}
	}
	for r := n - 1; r >= 0; r-- {
		s := y[r]
		for k := r + 1; k < n; k++ {
			s -= a[r][k] * x[k]
		}
		x[r] = s / a[r][r]
	}
	return
}
