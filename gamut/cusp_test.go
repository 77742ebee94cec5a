package gamut

import (
	"fmt"
	"math"
	"testing"

	"github.com/kovidgoyal/okcolor/colorconv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

// test_hues avoids exact primary hues and samples the band near the blue
// primary, where the clipping channel changes, densely.
func test_hues() (ans []float64) {
	for i := range 360 {
		ans = append(ans, float64(i)+0.37)
	}
	for i := range 200 {
		ans = append(ans, 243+float64(i)*0.12)
	}
	return
}

func unit_hue(h float64) (a, b float64) {
	b, a = math.Sincos(h * math.Pi / 180)
	return
}

// reference_max_saturation scans the ray from white in small steps and
// bisects the first step where a channel goes negative.
func reference_max_saturation(a, b float64, lms_to_rgb *colorconv.Mat3) float64 {
	min_channel := func(s float64) float64 {
		rgb := colorconv.OKLabTo(colorconv.Vec3{1, s * a, s * b}, lms_to_rgb)
		return min(rgb[0], rgb[1], rgb[2])
	}
	const step = 1e-4
	for s := 0.0; s < 10; s += step {
		if min_channel(s+step) < 0 {
			lo, hi := s, s+step
			for range 80 {
				mid := (lo + hi) / 2
				if min_channel(mid) >= 0 {
					lo = mid
				} else {
					hi = mid
				}
			}
			return lo
		}
	}
	return math.NaN()
}

func TestMaxSaturationMatchesReference(t *testing.T) {
	if testing.Short() {
		t.Skip("slow")
	}
	for _, g := range ListColorGamuts() {
		worst, worst_hue := 0., 0.
		c := g.Coefficients()
		for _, h := range test_hues() {
			a, b := unit_hue(h)
			s := ComputeMaxSaturationOKLC(a, b, g.LMSToRGB(), &c)
			if d := math.Abs(s - reference_max_saturation(a, b, g.LMSToRGB())); d > worst {
				worst, worst_hue = d, h
			}
		}
		assert.Less(t, worst, 1e-6, "%s: max saturation off by %v at hue %v", g, worst, worst_hue)
	}
}

func TestCuspCorrectness(t *testing.T) {
	for _, g := range ListColorGamuts() {
		for _, h := range test_hues() {
			a, b := unit_hue(h)
			cusp, err := FindCuspOKLCH(a, b, g)
			require.NoError(t, err)
			rgb := colorconv.MustConvert(colorconv.Vec3{cusp.L, cusp.C, h}, colorconv.OKLCH, g.Space.Root())
			lo, hi := min(rgb[0], rgb[1], rgb[2]), max(rgb[0], rgb[1], rgb[2])
			if math.Abs(lo) > 1e-6 || math.Abs(hi-1) > 1e-6 {
				t.Fatalf("%s: cusp %v at hue %v is not on the gamut corner, linear RGB: %v", g, cusp, h, rgb)
			}
		}
	}
}

func TestCuspGolden(t *testing.T) {
	a, b := unit_hue(30)
	cusp, err := FindCuspOKLCH(a, b, SRGB)
	require.NoError(t, err)
	assert.InDelta(t, 0.6322836552668101, cusp.L, 1e-9)
	assert.InDelta(t, 0.25358302696698126, cusp.C, 1e-9)

	_, err = FindCuspOKLCH(a, b, nil)
	assert.ErrorIs(t, err, ErrMissingGamut)
}

func TestFittedGamuts(t *testing.T) {
	c, residual, err := FitCoefficients(SRGB.LMSToRGB())
	require.NoError(t, err)
	// the selection vectors follow from the primaries alone
	for i := range 3 {
		assert.InDelta(t, srgb_coefficients[i].Dir[0], c[i].Dir[0], 1e-8)
		assert.InDelta(t, srgb_coefficients[i].Dir[1], c[i].Dir[1], 1e-8)
	}
	assert.Less(t, residual, 0.1)

	fitted, err := FitColorGamut("srgb-fitted", colorconv.SRGB)
	require.NoError(t, err)
	for _, h := range test_hues() {
		a, b := unit_hue(h)
		expected, _ := FindCuspOKLCH(a, b, SRGB)
		actual, err := FindCuspOKLCH(a, b, fitted)
		require.NoError(t, err)
		assert.InDelta(t, expected.L, actual.L, 1e-6, "hue: %v", h)
		assert.InDelta(t, expected.C, actual.C, 1e-6, "hue: %v", h)
	}
	for _, g := range []*ColorGamut{DisplayP3, Rec2020, A98RGB} {
		_, residual, err := FitCoefficients(g.LMSToRGB())
		require.NoError(t, err)
		assert.Less(t, residual, 0.1, g.ID)
		assert.Same(t, g.coefficients(), g.coefficients())
	}
}

func TestCoefficientsAreCopies(t *testing.T) {
	a, b := unit_hue(30)
	before, err := FindCuspOKLCH(a, b, SRGB)
	require.NoError(t, err)
	for _, g := range ListColorGamuts() {
		c := g.Coefficients()
		original := c
		for i := range c {
			c[i].K[0] = 100
			c[i].Dir = [2]float64{}
		}
		assert.Equal(t, original, g.Coefficients(), g.ID)
	}
	after, err := FindCuspOKLCH(a, b, SRGB)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestWiderGamutsContainSRGBCusps(t *testing.T) {
	for _, h := range test_hues() {
		a, b := unit_hue(h)
		cusp, _ := FindCuspOKLCH(a, b, SRGB)
		for _, g := range []*ColorGamut{DisplayP3, Rec2020} {
			rgb := colorconv.MustConvert(colorconv.Vec3{cusp.L, cusp.C, h}, colorconv.OKLCH, g.Space.Root())
			assert.True(t, colorconv.IsRGBInGamut(rgb, 1e-9), "sRGB cusp at hue %v outside %s: %v", h, g, rgb)
		}
	}
}

func TestSolve5(t *testing.T) {
	a := [5][5]float64{
		{0, 2, 0, 0, 1},
		{1, 0, 0, 0, 0},
		{0, 0, 3, 1, 0},
		{0, 1, 0, 2, 0},
		{4, 0, 1, 0, 5},
	}
	want := [5]float64{1, -2, 0.5, 3, -1}
	var y [5]float64
	for r := range 5 {
		for k := range 5 {
			y[r] += a[r][k] * want[k]
		}
	}
	x, err := solve5(a, y)
	require.NoError(t, err)
	for i := range 5 {
		assert.InDelta(t, want[i], x[i], 1e-12)
	}
	_, err = solve5([5][5]float64{}, y)
	require.Error(t, err)
}

func TestCubicFirstRoot(t *testing.T) {
	// (s-1)(s-2)(s-3) is negative below 1, so flip it: -(s-1)(s-2)(s-3)
	// is positive on [0,1), negative on (1,2) and positive again on (2,3)
	c := cubic{6, -11, 6, -1}
	r, found := c.first_root(10)
	require.True(t, found)
	assert.InDelta(t, 1, r, 1e-12)
	_, found = c.first_root(0.5)
	assert.False(t, found)
	// a dip that does not change sign at the limit: (s-1)² - 0.01
	d := cubic{0.99, -2, 1, 0}
	r, found = d.first_root(2)
	require.True(t, found)
	assert.InDelta(t, 0.9, r, 1e-12)
}
