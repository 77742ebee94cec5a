package colorconv

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestConvertErrors(t *testing.T) {
	deep := &ColorSpace{ID: "deep", Base: OKLCH, ToBase: func(v Vec3) Vec3 { return v }, FromBase: func(v Vec3) Vec3 { return v }}
	no_to_base := &ColorSpace{ID: "no-to-base", Base: SRGBLinear, FromBase: func(v Vec3) Vec3 { return v }}
	no_from_base := &ColorSpace{ID: "no-from-base", Base: SRGBLinear, ToBase: func(v Vec3) Vec3 { return v }}
	bare := &ColorSpace{ID: "bare"}

	for _, tc := range []struct {
		from, to *ColorSpace
		expected error
	}{
		{nil, SRGB, ErrMissingSpace},
		{SRGB, nil, ErrMissingSpace},
		{deep, SRGB, ErrUnsupportedDepth},
		{SRGB, deep, ErrUnsupportedDepth},
		{no_to_base, SRGB, ErrInvalidBase},
		{SRGB, no_from_base, ErrInvalidBase},
		{bare, SRGB, ErrMissingTransform},
		{SRGB, bare, ErrMissingTransform},
		{bare, OKLab, ErrMissingTransform},
		{OKLCH, bare, ErrMissingTransform},
	} {
		in := Vec3{0.1, 0.2, 0.3}
		out, err := Convert(in, tc.from, tc.to)
		require.Error(t, err)
		assert.True(t, errors.Is(err, tc.expected), "%s -> %s: %v", tc.from, tc.to, err)
		assert.Equal(t, in, out)
	}
	assert.Panics(t, func() { MustConvert(Vec3{}, bare, SRGB) })
}

func TestCustomSpace(t *testing.T) {
	// a gray scale space derived from linear sRGB
	gray := &ColorSpace{
		ID: "gray", Base: SRGBLinear,
		ToBase:   func(v Vec3) Vec3 { return Vec3{v[0], v[0], v[0]} },
		FromBase: func(v Vec3) Vec3 { return Vec3{v[1], 0, 0} },
	}
	require.NoError(t, gray.Validate())
	lab, err := Convert(Vec3{1, 0, 0}, gray, OKLab)
	require.NoError(t, err)
	assert.InDelta(t, 1, lab[0], 1e-7)
	assert.InDelta(t, 0, lab[1], 1e-7)
	g, err := Convert(lab, OKLab, gray)
	require.NoError(t, err)
	assert.InDelta(t, 1, g[0], 1e-9)
	// both ends share the base
	g, err = Convert(Vec3{0.25, 0.25, 0.25}, SRGBLinear, gray)
	require.NoError(t, err)
	assert.Equal(t, Vec3{0.25, 0, 0}, g)
}

func TestXYZOnlySpace(t *testing.T) {
	// ProPhoto without its fused LMS matrices, so every path to and from
	// OKLab goes through the D65 XYZ hub and the D50 adaptation
	xyz_only := &ColorSpace{
		ID: "prophoto-xyz-only", ToXYZ: ProPhotoRGBLinear.ToXYZ, FromXYZ: ProPhotoRGBLinear.FromXYZ,
		Adapt: ProPhotoRGBLinear.Adapt,
	}
	require.NoError(t, xyz_only.Validate())
	samples := append(srgb_samples, Vec3{1, 0, 0}, Vec3{0, 1, 0}, Vec3{0, 0, 1}, Vec3{1, 1, 1}, Vec3{-0.2, 1.3, 0.5})
	for _, s := range samples {
		for _, to := range []*ColorSpace{OKLab, SRGB, XYZ, Lab} {
			expected := MustConvert(s, ProPhotoRGBLinear, to)
			actual, err := Convert(s, xyz_only, to)
			require.NoError(t, err)
			if d := vec_diff(expected, actual, 1e-12); d != "" {
				t.Fatalf("%v -> %s differs:\n%s", s, to.ID, d)
			}
		}
		for _, from := range []*ColorSpace{OKLab, OKLCH, SRGB, XYZ, Lab} {
			v := MustConvert(s, ProPhotoRGBLinear, from)
			expected := MustConvert(v, from, ProPhotoRGBLinear)
			actual, err := Convert(v, from, xyz_only)
			require.NoError(t, err)
			if d := vec_diff(expected, actual, 1e-12); d != "" {
				t.Fatalf("%v from %s differs:\n%s", s, from.ID, d)
			}
		}
	}
	oklch := Vec3{0.7, 0.2, 120}
	expected := MustConvert(oklch, OKLCH, ProPhotoRGBLinear)
	actual, err := Convert(oklch, OKLCH, xyz_only)
	require.NoError(t, err)
	assert.Empty(t, vec_diff(expected, actual, 1e-12))
}

func TestValidate(t *testing.T) {
	for _, cs := range ListColorSpaces() {
		require.NoError(t, cs.Validate(), cs.ID)
	}
	var missing *ColorSpace
	assert.ErrorIs(t, missing.Validate(), ErrMissingSpace)
	deep := &ColorSpace{ID: "deep", Base: OKLCH, ToBase: OKLCH.ToBase, FromBase: OKLCH.FromBase}
	assert.ErrorIs(t, deep.Validate(), ErrUnsupportedDepth)
	assert.ErrorIs(t, (&ColorSpace{ID: "x", Base: OKLab, ToBase: OKLCHToOKLab}).Validate(), ErrInvalidBase)
	assert.ErrorIs(t, (&ColorSpace{ID: "x", ToBase: OKLCHToOKLab}).Validate(), ErrInvalidBase)
	assert.ErrorIs(t, (&ColorSpace{ID: "x", ToXYZ: &IdentityMat3}).Validate(), ErrMissingTransform)
}

func TestConvertSlice(t *testing.T) {
	in := []float64{0.5, 0.15, 30, 0.25}
	out, err := ConvertSlice(nil, in, OKLCH, SRGB)
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, 0.25, out[3])
	assert.Equal(t, []float64{0.5, 0.15, 30, 0.25}, in)
	assert.InDelta(t, 0.657921809677, out[0], 1e-9)

	// in place
	out2, err := ConvertSlice(in, in, OKLCH, SRGB)
	require.NoError(t, err)
	assert.Equal(t, out, out2)
	assert.Equal(t, out, in)

	three := []float64{1, 1, 1}
	out3, err := ConvertSlice(make([]float64, 3), three, SRGB, OKLab)
	require.NoError(t, err)
	assert.InDelta(t, 1, out3[0], 1e-7)

	_, err = ConvertSlice(nil, []float64{1, 2}, SRGB, OKLab)
	require.Error(t, err)
	_, err = ConvertSlice(make([]float64, 3), []float64{1, 2, 3, 4}, SRGB, OKLab)
	require.Error(t, err)
	_, err = ConvertSlice(nil, three, nil, OKLab)
	assert.ErrorIs(t, err, ErrMissingSpace)
}

func TestRegistry(t *testing.T) {
	spaces := ListColorSpaces()
	require.Len(t, spaces, 15)
	spaces[0] = nil
	assert.Equal(t, XYZ, ListColorSpaces()[0])
	seen := map[string]bool{}
	for _, cs := range ListColorSpaces() {
		assert.False(t, seen[cs.ID], "duplicate id: %s", cs.ID)
		seen[cs.ID] = true
		found, err := ColorSpaceByID(cs.ID)
		require.NoError(t, err)
		assert.Same(t, cs, found)
		assert.Equal(t, cs.ID, cs.String())
	}
	for alias, expected := range map[string]*ColorSpace{"XYZ-D65": XYZ, "linear-srgb": SRGBLinear, " OKLCH ": OKLCH} {
		found, err := ColorSpaceByID(alias)
		require.NoError(t, err)
		assert.Same(t, expected, found)
	}
	_, err := ColorSpaceByID("cmyk")
	assert.ErrorIs(t, err, ErrUnknownSpace)
	assert.Contains(t, err.Error(), "cmyk")
}

func TestConvertDoesNotAllocate(t *testing.T) {
	pairs := [][2]*ColorSpace{{OKLCH, SRGB}, {SRGB, Lab}, {ProPhotoRGB, OKLCH}, {Lab, Rec2020}, {XYZ, XYZD50}}
	for _, p := range pairs {
		var out Vec3
		allocs := testing.AllocsPerRun(100, func() {
			out, _ = Convert(Vec3{0.5, 0.1, 120}, p[0], p[1])
		})
		assert.Zero(t, allocs, "%s -> %s", p[0], p[1])
		_ = out
	}
}

func TestMatrix(t *testing.T) {
	m := Mat3{{2, 0, 1}, {1, 3, 0}, {0, 1, 4}}
	inv, err := m.Inverted()
	require.NoError(t, err)
	p := m.Multiply(inv)
	for i := range 3 {
		for j := range 3 {
			assert.InDelta(t, IdentityMat3[i][j], p[i][j], 1e-15)
		}
	}
	assert.Equal(t, Vec3{3, 4, 5}, m.Transform(Vec3{1, 1, 1}))
	assert.Equal(t, Mat3{{2, 1, 0}, {0, 3, 1}, {1, 0, 4}}, m.Transpose())
	singular := Mat3{{1, 2, 3}, {2, 4, 6}, {0, 1, 1}}
	_, err = singular.Inverted()
	require.Error(t, err)
	assert.Panics(t, func() { mustInvert(singular) })
	assert.Contains(t, m.String(), "Mat3{")
}

func TestBradfordAdaptation(t *testing.T) {
	a := BradfordAdaptation(WhiteD50, WhiteD65)
	expected := Mat3{
		{0.955473421488075, -0.02309845494876471, 0.06325924320057072},
		{-0.0283697093338637, 1.0099953980813041, 0.021041441191917323},
		{0.012314014864481998, -0.020507649298898964, 1.330365926242124},
	}
	for i := range 3 {
		for j := range 3 {
			assert.InDelta(t, expected[i][j], a[i][j], 1e-12)
		}
	}
	w := a.Transform(WhiteD50)
	for i := range 3 {
		assert.InDelta(t, WhiteD65[i], w[i], 1e-12)
	}
	// D50 white maps to the OKLab neutral axis
	lab := MustConvert(WhiteD50, XYZD50, OKLab)
	assert.InDelta(t, 1, lab[0], 1e-6)
	assert.InDelta(t, 0, lab[1], 1e-6)
	assert.InDelta(t, 0, lab[2], 1e-6)
}

func BenchmarkConvertOKLCHToSRGB(b *testing.B) {
	b.ReportAllocs()
	v := Vec3{0.5, 0.15, 30}
	for b.Loop() {
		v, _ = Convert(Vec3{0.5, 0.15, 30}, OKLCH, SRGB)
	}
	_ = v
}

func BenchmarkConvertLabToProPhoto(b *testing.B) {
	b.ReportAllocs()
	v := Vec3{50, 20, -30}
	for b.Loop() {
		v, _ = Convert(Vec3{50, 20, -30}, Lab, ProPhotoRGB)
	}
	_ = v
}
