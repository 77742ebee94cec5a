package colorconv

import (
	"math"
)

// Transfer functions work on the magnitude and restore the sign afterwards,
// so that out of gamut negative values survive a round trip.

func srgb_to_linear(c float64) float64 {
	a := math.Abs(c)
	if a < 0.04045 {
		return c / 12.92
	}
	return math.Copysign(math.Pow((a+0.055)/1.055, 2.4), c)
}

func srgb_from_linear(c float64) float64 {
	a := math.Abs(c)
	if a > 0.0031308 {
		return math.Copysign(1.055*math.Pow(a, 1/2.4)-0.055, c)
	}
	return 12.92 * c
}

const (
	rec2020_alpha = 1.09929682680944
	rec2020_beta  = 0.018053968510807
)

func rec2020_to_linear(c float64) float64 {
	a := math.Abs(c)
	if a < rec2020_beta*4.5 {
		return c / 4.5
	}
	return math.Copysign(math.Pow((a+rec2020_alpha-1)/rec2020_alpha, 1/0.45), c)
}

func rec2020_from_linear(c float64) float64 {
	a := math.Abs(c)
	if a > rec2020_beta {
		return math.Copysign(rec2020_alpha*math.Pow(a, 0.45)-(rec2020_alpha-1), c)
	}
	return 4.5 * c
}

const a98_gamma = 563. / 256.

func a98_to_linear(c float64) float64 {
	return math.Copysign(math.Pow(math.Abs(c), a98_gamma), c)
}

func a98_from_linear(c float64) float64 {
	return math.Copysign(math.Pow(math.Abs(c), 1/a98_gamma), c)
}

const (
	prophoto_et  = 1. / 512.
	prophoto_et2 = 16. / 512.
)

func prophoto_to_linear(c float64) float64 {
	a := math.Abs(c)
	if a <= prophoto_et2 {
		return c / 16
	}
	return math.Copysign(math.Pow(a, 1.8), c)
}

func prophoto_from_linear(c float64) float64 {
	a := math.Abs(c)
	if a >= prophoto_et {
		return math.Copysign(math.Pow(a, 1/1.8), c)
	}
	return 16 * c
}

// per_channel lifts a scalar transfer function to a Vec3 transform
func per_channel(f func(float64) float64) func(Vec3) Vec3 {
	return func(v Vec3) Vec3 {
		return Vec3{f(v[0]), f(v[1]), f(v[2])}
	}
}

// CIE L*a*b* relative to D50, with the exact CIE constants.
const (
	lab_epsilon = 216. / 24389.
	lab_kappa   = 24389. / 27.
)

func lab_to_xyz_d50(lab Vec3) Vec3 {
	fy := (lab[0] + 16) / 116
	fx := fy + lab[1]/500
	fz := fy - lab[2]/200
	finv := func(f float64) float64 {
		if f3 := f * f * f; f3 > lab_epsilon {
			return f3
		}
		return (116*f - 16) / lab_kappa
	}
	y := lab[0] / lab_kappa
	if lab[0] > lab_kappa*lab_epsilon {
		y = fy * fy * fy
	}
	return Vec3{finv(fx) * WhiteD50[0], y * WhiteD50[1], finv(fz) * WhiteD50[2]}
}

func xyz_d50_to_lab(xyz Vec3) Vec3 {
	f := func(t float64) float64 {
		if t > lab_epsilon {
			return math.Cbrt(t)
		}
		return (lab_kappa*t + 16) / 116
	}
	fx := f(xyz[0] / WhiteD50[0])
	fy := f(xyz[1] / WhiteD50[1])
	fz := f(xyz[2] / WhiteD50[2])
	return Vec3{116*fy - 16, 500 * (fx - fy), 200 * (fy - fz)}
}

// OKLabToOKLCH converts rectangular OKLab to polar OKLCH with the hue in
// degrees in [0, 360).
func OKLabToOKLCH(lab Vec3) Vec3 {
	h := math.Atan2(lab[2], lab[1]) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return Vec3{lab[0], math.Hypot(lab[1], lab[2]), h}
}

// OKLCHToOKLab converts polar OKLCH with the hue in degrees to OKLab.
func OKLCHToOKLab(lch Vec3) Vec3 {
	s, c := math.Sincos(lch[2] * math.Pi / 180)
	return Vec3{lch[0], lch[1] * c, lch[1] * s}
}
