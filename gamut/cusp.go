package gamut

import (
	"math"

	"github.com/kovidgoyal/okcolor/colorconv"
)

const (
	// Halley steps refining the polynomial estimate of the max saturation
	MaxSaturationSteps = 3
	// Halley steps refining the gamut intersection above the cusp
	IntersectionSteps = 2
)

// Cusp is the point of maximum chroma of a gamut for one hue.
type Cusp struct {
	L, C float64
}

func pick_channel(a, b float64, c *Coefficients) int {
	if c[0].Dir[0]*a+c[0].Dir[1]*b > 1 {
		return 0
	}
	if c[1].Dir[0]*a+c[1].Dir[1]*b > 1 {
		return 1
	}
	return 2
}

// ComputeMaxSaturationOKLC finds the saturation S = C/L at which the ray
// from white along the unit hue (a, b) leaves the gamut, that is the
// smallest S at which some RGB channel becomes negative.
func ComputeMaxSaturationOKLC(a, b float64, lmsToRGB *colorconv.Mat3, c *Coefficients) float64 {
	ch := pick_channel(a, b, c)
	k := &c[ch].K
	s := k[0] + k[1]*a + k[2]*b + k[3]*a*a + k[4]*a*b
	p := channel_cubic(a, b, lmsToRGB[ch])
	for range MaxSaturationSteps {
		f, f1, f2 := p.at(s), p.slope(s), p.curvature(s)
		s -= f * f1 / (f1*f1 - 0.5*f*f2)
	}
	// Near the blue primary another channel can dip below zero before the
	// selected one does.
	for i := range 3 {
		q := channel_cubic(a, b, lmsToRGB[i])
		if r, found := q.first_root(s); found && r < s {
			s = r
		}
	}
	return s
}

func find_cusp(a, b float64, lms_to_rgb *colorconv.Mat3, c *Coefficients) Cusp {
	s := ComputeMaxSaturationOKLC(a, b, lms_to_rgb, c)
	rgb := colorconv.OKLabTo(colorconv.Vec3{1, s * a, s * b}, lms_to_rgb)
	l := math.Cbrt(1 / max(rgb[0], rgb[1], rgb[2]))
	return Cusp{L: l, C: l * s}
}

// FindCuspOKLCH returns the cusp of the gamut for the unit hue (a, b).
func FindCuspOKLCH(a, b float64, g *ColorGamut) (Cusp, error) {
	if g == nil {
		return Cusp{}, ErrMissingGamut
	}
	return find_cusp(a, b, g.LMSToRGB(), g.coefficients()), nil
}

// FindGamutIntersectionOKLCH returns t such that (L0·(1-t) + t·L1, t·C1) is
// where the line from (L0, 0) to (L1, C1) at the unit hue (a, b) meets the
// gamut boundary. Below the cusp the boundary is a straight line through
// black and the result is exact, above it the triangle estimate is refined
// against the surface where a channel reaches one.
func FindGamutIntersectionOKLCH(a, b, L1, C1, L0 float64, cusp Cusp, lmsToRGB *colorconv.Mat3) float64 {
	if (L1-L0)*cusp.C-(cusp.L-L0)*C1 <= 0 {
		return cusp.C * L0 / (C1*cusp.L + cusp.C*(L0-L1))
	}
	t := cusp.C * (L0 - 1) / (C1*(cusp.L-1) + cusp.C*(L0-L1))
	m := &colorconv.OKLabToLMS
	var k, dt [3]float64
	for j := range 3 {
		k[j] = m[j][1]*a + m[j][2]*b
		dt[j] = (L1-L0)*m[j][0] + C1*k[j]
	}
	for range IntersectionSteps {
		l, c := L0*(1-t)+t*L1, t*C1
		var v, d1, d2 [3]float64
		for j := range 3 {
			x := l*m[j][0] + c*k[j]
			v[j] = x * x * x
			d1[j] = 3 * dt[j] * x * x
			d2[j] = 6 * dt[j] * dt[j] * x
		}
		step := math.Inf(1)
		for i := range 3 {
			w := &lmsToRGB[i]
			r := w[0]*v[0] + w[1]*v[1] + w[2]*v[2] - 1
			r1 := w[0]*d1[0] + w[1]*d1[1] + w[2]*d1[2]
			r2 := w[0]*d2[0] + w[1]*d2[1] + w[2]*d2[2]
			u := r1 / (r1*r1 - 0.5*r*r2)
			if u >= 0 {
				step = min(step, -r*u)
			}
		}
		if math.IsInf(step, 1) {
			break
		}
		t += step
	}
	return t
}
