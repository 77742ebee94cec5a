package gamut

import (
	"fmt"
	"strings"

	"github.com/kovidgoyal/okcolor/colorconv"
)

// Published coefficients for sRGB from
// https://bottosson.github.io/posts/gamutclipping/
var srgb_coefficients = Coefficients{
	{Dir: [2]float64{-1.88170328, -0.80936493}, K: [5]float64{1.19086277, 1.76576728, 0.59662641, 0.75515197, 0.56771245}},
	{Dir: [2]float64{1.81444104, -1.19445276}, K: [5]float64{0.73956515, -0.45954404, 0.08285427, 0.12541070, -0.14503204}},
	{Dir: [2]float64{0.13110757652422744, 1.8133394419562086}, K: [5]float64{1.35733652, -0.00915799, -1.15130210, -0.50559606, 0.00692167}},
}

// Built-in gamuts. The coefficients of all but SRGB are fitted on first use.
var (
	SRGB      = must(NewColorGamut("srgb", colorconv.SRGB, srgb_coefficients))
	DisplayP3 = must(FitColorGamut("display-p3", colorconv.DisplayP3))
	Rec2020   = must(FitColorGamut("rec2020", colorconv.Rec2020))
	A98RGB    = must(FitColorGamut("a98-rgb", colorconv.A98RGB))
)

var builtin_gamuts = []*ColorGamut{SRGB, DisplayP3, Rec2020, A98RGB}

func ListColorGamuts() []*ColorGamut {
	return append([]*ColorGamut(nil), builtin_gamuts...)
}

// ColorGamutByID finds a built-in gamut by its case insensitive ID.
func ColorGamutByID(id string) (*ColorGamut, error) {
	q := strings.ToLower(strings.TrimSpace(id))
	for _, g := range builtin_gamuts {
		if g.ID == q {
			return g, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGamut, id)
}
