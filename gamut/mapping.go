package gamut

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/kovidgoyal/okcolor/colorconv"
)

// MappingFunc chooses the lightness L0 of the gray point toward which an
// out of gamut OKLCH color is projected.
type MappingFunc func(oklch colorconv.Vec3, cusp Cusp) float64

// MapToL keeps the lightness of the color, reducing only chroma.
func MapToL(oklch colorconv.Vec3, cusp Cusp) float64 { return oklch[0] }

// MapToGray projects toward 50% gray.
func MapToGray(oklch colorconv.Vec3, cusp Cusp) float64 { return 0.5 }

// MapToCuspL projects toward the lightness of the cusp of the hue.
func MapToCuspL(oklch colorconv.Vec3, cusp Cusp) float64 { return cusp.L }

const adaptive_alpha = 0.05

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// MapToAdaptiveGray moves L0 from 50% gray toward the lightness of the
// color, less so the more chroma the color has.
func MapToAdaptiveGray(oklch colorconv.Vec3, cusp Cusp) float64 {
	ld := oklch[0] - 0.5
	e1 := 0.5 + math.Abs(ld) + adaptive_alpha*oklch[1]
	return 0.5 * (1 + sign(ld)*(e1-math.Sqrt(e1*e1-2*math.Abs(ld))))
}

// MapToAdaptiveCuspL is like MapToAdaptiveGray but centered on the
// lightness of the cusp instead of 50% gray.
func MapToAdaptiveCuspL(oklch colorconv.Vec3, cusp Cusp) float64 {
	ld := oklch[0] - cusp.L
	k := 2 * cusp.L
	if ld > 0 {
		k = 2 * (1 - cusp.L)
	}
	if k <= 0 {
		return cusp.L
	}
	e1 := 0.5*k + math.Abs(ld) + adaptive_alpha*oklch[1]/k
	return cusp.L + 0.5*sign(ld)*(e1-math.Sqrt(e1*e1-2*k*math.Abs(ld)))
}

var mappings_by_name = map[string]MappingFunc{
	"l":               MapToL,
	"gray":            MapToGray,
	"cusp-l":          MapToCuspL,
	"adaptive-gray":   MapToAdaptiveGray,
	"adaptive-cusp-l": MapToAdaptiveCuspL,
}

// MappingNames returns the names accepted by MappingByName, sorted.
func MappingNames() []string {
	ans := make([]string, 0, len(mappings_by_name))
	for k := range mappings_by_name {
		ans = append(ans, k)
	}
	slices.Sort(ans)
	return ans
}

func MappingByName(name string) (MappingFunc, error) {
	if f := mappings_by_name[strings.ToLower(name)]; f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q, must be one of: %s", ErrUnknownMapping, name, strings.Join(MappingNames(), ", "))
}
