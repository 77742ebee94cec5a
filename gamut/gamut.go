package gamut

import (
	"fmt"
	"sync"

	"github.com/kovidgoyal/okcolor"
	"github.com/kovidgoyal/okcolor/colorconv"
)

var _ = fmt.Print

// ChannelCoefficients approximate, for the hues where one RGB channel is
// the first to clip, the maximum saturation S = C/L as
// K[0] + K[1]·a + K[2]·b + K[3]·a² + K[4]·a·b for a unit hue vector (a, b).
// The channel is responsible for hues where Dir·(a, b) > 1.
type ChannelCoefficients struct {
	Dir [2]float64
	K   [5]float64
}

// Coefficients for the R, G and B channels. The B channel is used for all
// hues not claimed by R or G, so its Dir is informational only.
type Coefficients [3]ChannelCoefficients

// ColorGamut is the set of colors displayable in an RGB color space,
// described by the coefficients of its maximum saturation approximation.
type ColorGamut struct {
	ID    string
	Space *colorconv.ColorSpace

	lms_to_rgb   *colorconv.Mat3
	coefficients func() *Coefficients
}

func (g *ColorGamut) String() string {
	return g.ID
}

// Coefficients returns a copy of the max saturation coefficients, computing
// them on first use for fitted gamuts.
func (g *ColorGamut) Coefficients() Coefficients {
	return *g.coefficients()
}

// LMSToRGB is the matrix from OKLab LMS to the linear RGB of the gamut.
func (g *ColorGamut) LMSToRGB() *colorconv.Mat3 {
	return g.lms_to_rgb
}

func lms_to_rgb_of(id string, space *colorconv.ColorSpace) (*colorconv.Mat3, error) {
	if err := space.Validate(); err != nil {
		return nil, fmt.Errorf("gamut %s: %w", id, err)
	}
	root := space.Root()
	if root.FromLMS == nil || root.ToLMS == nil {
		return nil, fmt.Errorf("gamut %s: %w: %s", id, ErrInvalidGamut, space.ID)
	}
	return root.FromLMS, nil
}

// NewColorGamut creates a gamut for space using known coefficients.
func NewColorGamut(id string, space *colorconv.ColorSpace, coeffs Coefficients) (*ColorGamut, error) {
	m, err := lms_to_rgb_of(id, space)
	if err != nil {
		return nil, err
	}
	return &ColorGamut{ID: id, Space: space, lms_to_rgb: m, coefficients: func() *Coefficients { return &coeffs }}, nil
}

// FitColorGamut creates a gamut for space whose coefficients are fitted
// from the primaries of space. The fit runs once, on first use.
func FitColorGamut(id string, space *colorconv.ColorSpace) (*ColorGamut, error) {
	m, err := lms_to_rgb_of(id, space)
	if err != nil {
		return nil, err
	}
	// validate eagerly, the fit itself is deferred
	if _, err = m.Inverted(); err != nil {
		return nil, fmt.Errorf("gamut %s: %w", id, err)
	}
	ans := &ColorGamut{ID: id, Space: space, lms_to_rgb: m}
	ans.coefficients = sync.OnceValue(func() *Coefficients {
		c, residual, err := FitCoefficients(m)
		if err != nil {
			// cannot happen, the matrix was inverted above
			panic(err)
		}
		okcolor.Logger().Debug("fitted gamut coefficients", "gamut", id, "max_residual", residual)
		return &c
	})
	return ans, nil
}

func must(g *ColorGamut, err error) *ColorGamut {
	if err != nil {
		panic(err)
	}
	return g
}
