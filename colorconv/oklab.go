package colorconv

import (
	"math"
)

// Matrices of the OKLab model. XYZToLMS and LMSToOKLab are the published
// ones, the other two are computed as their inverses in init so that the
// forward and reverse paths agree to within floating point rounding.
var (
	XYZToLMS = Mat3{
		{0.8190224432164319, 0.3619062562801221, -0.12887378261216414},
		{0.0329836671980271, 0.9292868468965546, 0.03614466816999844},
		{0.048177199566046255, 0.26423952494422764, 0.6335478258136937},
	}
	LMSToOKLab = Mat3{
		{0.2104542553, 0.7936177850, -0.0040720468},
		{1.9779984951, -2.4285922050, 0.4505937099},
		{0.0259040371, 0.7827717662, -0.8086757660},
	}
	LMSToXYZ   Mat3
	OKLabToLMS Mat3
)

// OKLabTo converts OKLab to the linear space whose matrix from LMS is
// lmsToOutput.
func OKLabTo(lab Vec3, lmsToOutput *Mat3) Vec3 {
	lms := OKLabToLMS.Transform(lab)
	lms[0] = lms[0] * lms[0] * lms[0]
	lms[1] = lms[1] * lms[1] * lms[1]
	lms[2] = lms[2] * lms[2] * lms[2]
	return lmsToOutput.Transform(lms)
}

// OKLabFrom converts from the linear space whose matrix to LMS is
// inputToLMS to OKLab.
func OKLabFrom(in Vec3, inputToLMS *Mat3) Vec3 {
	lms := inputToLMS.Transform(in)
	lms[0] = math.Cbrt(lms[0])
	lms[1] = math.Cbrt(lms[1])
	lms[2] = math.Cbrt(lms[2])
	return LMSToOKLab.Transform(lms)
}

// DeltaEOK is the euclidean distance between two OKLab colors.
func DeltaEOK(a, b Vec3) float64 {
	dl, da, db := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(dl*dl + da*da + db*db)
}

// IsRGBInGamut reports whether all channels lie in [-ep, 1+ep].
func IsRGBInGamut(rgb Vec3, ep float64) bool {
	lo, hi := -ep, 1+ep
	return rgb[0] >= lo && rgb[0] <= hi && rgb[1] >= lo && rgb[1] <= hi && rgb[2] >= lo && rgb[2] <= hi
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

func ClampedRGB(rgb Vec3) Vec3 {
	return Vec3{clamp01(rgb[0]), clamp01(rgb[1]), clamp01(rgb[2])}
}
