package colorconv

// Adaptation holds the whitepoint correction between a space whose XYZ
// matrices are relative to a white other than D65 and the D65 hub.
type Adaptation struct {
	To   Mat3 // space white -> D65
	From Mat3 // D65 -> space white
}

// Reference whites as xy chromaticities converted to XYZ with Y = 1.
var (
	WhiteD50 = Vec3{0.3457 / 0.3585, 1, (1 - 0.3457 - 0.3585) / 0.3585}
	WhiteD65 = Vec3{0.3127 / 0.3290, 1, (1 - 0.3127 - 0.3290) / 0.3290}
)

var bradford = Mat3{
	{0.8951, 0.2664, -0.1614},
	{-0.7502, 1.7135, 0.0367},
	{0.0389, -0.0685, 1.0296},
}

// BradfordAdaptation constructs a matrix that adapts XYZ values from
// sourceWhite to targetWhite using the Bradford cone response.
func BradfordAdaptation(sourceWhite, targetWhite Vec3) Mat3 {
	src := bradford.Transform(sourceWhite)
	tgt := bradford.Transform(targetWhite)
	diag := Mat3{
		{tgt[0] / src[0], 0, 0},
		{0, tgt[1] / src[1], 0},
		{0, 0, tgt[2] / src[2]},
	}
	inv := mustInvert(bradford)
	// inv(B) · diag · B
	tmp := diag.Multiply(bradford)
	return inv.Multiply(tmp)
}

// NewAdaptation returns the adaptation between white and the D65 hub.
func NewAdaptation(white Vec3) *Adaptation {
	to := BradfordAdaptation(white, WhiteD65)
	return &Adaptation{To: to, From: mustInvert(to)}
}
