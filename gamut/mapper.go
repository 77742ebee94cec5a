package gamut

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/okcolor/colorconv"
)

// Epsilon is the tolerance, in linear RGB, within which a color is
// considered to be inside a gamut.
const Epsilon = 7.5e-5

type cusp_cache struct {
	hue   float64
	cusp  Cusp
	valid bool
}

func clamp01(x float64) float64 {
	return max(0, min(x, 1))
}

// GamutMapOKLCH maps an OKLCH color into the gamut g and converts it to
// target. Colors already in the gamut, to within Epsilon, are only
// converted. Others are moved in a straight line toward the gray point
// chosen by mapping, keeping their hue, until they reach the gamut
// boundary. When target is the gamut's space, or shares its linear base,
// the result is clamped to [0, 1].
//
// A nil target means the space of g, a nil mapping means MapToCuspL. If
// the cusp of the hue of oklch is already known it can be passed in to
// avoid computing it again.
func GamutMapOKLCH(oklch colorconv.Vec3, g *ColorGamut, target *colorconv.ColorSpace, mapping MappingFunc, cusp *Cusp) (colorconv.Vec3, error) {
	var cache cusp_cache
	if cusp != nil {
		cache = cusp_cache{hue: oklch[2], cusp: *cusp, valid: true}
	}
	return gamut_map(oklch, g, target, mapping, Epsilon, &cache)
}

func gamut_map(oklch colorconv.Vec3, g *ColorGamut, target *colorconv.ColorSpace, mapping MappingFunc, ep float64, cache *cusp_cache) (colorconv.Vec3, error) {
	if g == nil {
		return oklch, ErrMissingGamut
	}
	if target == nil {
		target = g.Space
	}
	if mapping == nil {
		mapping = MapToCuspL
	}
	lms_to_rgb := g.LMSToRGB()
	mapped := oklch
	if !colorconv.IsRGBInGamut(colorconv.OKLabTo(colorconv.OKLCHToOKLab(oklch), lms_to_rgb), ep) {
		b, a := math.Sincos(oklch[2] * math.Pi / 180)
		if !cache.valid || cache.hue != oklch[2] {
			cache.cusp = find_cusp(a, b, lms_to_rgb, g.coefficients())
			cache.hue, cache.valid = oklch[2], true
		}
		l0 := clamp01(mapping(oklch, cache.cusp))
		t := clamp01(FindGamutIntersectionOKLCH(a, b, oklch[0], oklch[1], l0, cache.cusp, lms_to_rgb))
		mapped = colorconv.Vec3{t*oklch[0] + (1-t)*l0, t * oklch[1], oklch[2]}
	}
	ans, err := colorconv.Convert(mapped, colorconv.OKLCH, target)
	if err != nil {
		return ans, err
	}
	if target.Root() == g.Space.Root() {
		ans = colorconv.ClampedRGB(ans)
	}
	return ans, nil
}

// Mapper gamut maps colors with a fixed configuration. It remembers the
// cusp of the last hue it mapped, which makes mapping many colors of the
// same hue cheaper. A Mapper must not be used from multiple goroutines
// concurrently.
type Mapper struct {
	gamut   *ColorGamut
	target  *colorconv.ColorSpace
	mapping MappingFunc
	epsilon float64
	cache   cusp_cache
}

// MapperOption sets an optional parameter for NewMapper.
type MapperOption func(*Mapper)

// WithMapping sets the function choosing the gray point. Default is MapToCuspL.
func WithMapping(mapping MappingFunc) MapperOption {
	return func(m *Mapper) {
		if mapping != nil {
			m.mapping = mapping
		}
	}
}

// WithTarget sets the color space of mapped colors. Default is the space
// of the gamut.
func WithTarget(target *colorconv.ColorSpace) MapperOption {
	return func(m *Mapper) {
		if target != nil {
			m.target = target
		}
	}
}

// WithEpsilon sets the tolerance within which colors are left unmapped.
// Default is Epsilon.
func WithEpsilon(ep float64) MapperOption {
	return func(m *Mapper) {
		m.epsilon = ep
	}
}

func NewMapper(g *ColorGamut, opts ...MapperOption) (*Mapper, error) {
	if g == nil {
		return nil, ErrMissingGamut
	}
	ans := &Mapper{gamut: g, target: g.Space, mapping: MapToCuspL, epsilon: Epsilon}
	for _, o := range opts {
		o(ans)
	}
	if ans.epsilon < 0 || math.IsNaN(ans.epsilon) {
		return nil, fmt.Errorf("gamut epsilon must be a non-negative number, not %v", ans.epsilon)
	}
	if err := ans.target.Validate(); err != nil {
		return nil, err
	}
	return ans, nil
}

func (m *Mapper) Gamut() *ColorGamut            { return m.gamut }
func (m *Mapper) Target() *colorconv.ColorSpace { return m.target }

// Map gamut maps an OKLCH color, see GamutMapOKLCH.
func (m *Mapper) Map(oklch colorconv.Vec3) (colorconv.Vec3, error) {
	return gamut_map(oklch, m.gamut, m.target, m.mapping, m.epsilon, &m.cache)
}

// MapFrom gamut maps a color in the color space from.
func (m *Mapper) MapFrom(v colorconv.Vec3, from *colorconv.ColorSpace) (colorconv.Vec3, error) {
	oklch, err := colorconv.Convert(v, from, colorconv.OKLCH)
	if err != nil {
		return v, err
	}
	return m.Map(oklch)
}
