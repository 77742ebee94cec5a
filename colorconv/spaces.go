package colorconv

import (
	"fmt"
	"strings"
)

// Linear RGB to XYZ matrices, as exact fractions where the primaries allow
// it. All are relative to D65 except ProPhoto which is relative to D50.
var (
	srgb = linear_matrices{to_xyz: rational([9]float64{
		506752. / 1228815, 87881. / 245763, 12673. / 70218,
		87098. / 409605, 175762. / 245763, 12673. / 175545,
		7918. / 409605, 87881. / 737289, 1001167. / 1053270,
	})}
	display_p3 = linear_matrices{to_xyz: rational([9]float64{
		608311. / 1250200, 189793. / 714400, 198249. / 1000160,
		35783. / 156275, 247089. / 357200, 198249. / 2500400,
		0, 32229. / 714400, 5220557. / 5000800,
	})}
	rec2020 = linear_matrices{to_xyz: rational([9]float64{
		63426534. / 99577255, 20160776. / 139408157, 47086771. / 278816314,
		26158966. / 99577255, 472592308. / 697040785, 8267143. / 139408157,
		0, 19567812. / 697040785, 295819943. / 278816314,
	})}
	a98_rgb = linear_matrices{to_xyz: rational([9]float64{
		573536. / 994567, 263643. / 1420810, 187206. / 994567,
		591459. / 1989134, 6239551. / 9945670, 374412. / 4972835,
		53769. / 1989134, 351524. / 4972835, 4929758. / 4972835,
	})}
	prophoto_rgb = linear_matrices{to_xyz: rational([9]float64{
		0.7977604896723027, 0.13518583717574031, 0.0313493495815248,
		0.2880711282292934, 0.7118432178101014, 0.00008565396060525902,
		0, 0, 0.8251046025104601,
	})}
	xyz     = linear_matrices{to_xyz: IdentityMat3}
	xyz_d50 = linear_matrices{to_xyz: IdentityMat3}

	d50_adaptation = NewAdaptation(WhiteD50)
)

type linear_matrices struct {
	to_xyz, from_xyz, to_lms, from_lms Mat3
}

// fuse derives the inverse XYZ matrix and the direct LMS matrices, folding
// in the whitepoint adaptation so that the LMS path needs a single multiply.
func (m *linear_matrices) fuse(adapt *Adaptation) {
	m.from_xyz = mustInvert(m.to_xyz)
	to_d65 := m.to_xyz
	if adapt != nil {
		to_d65 = adapt.To.Multiply(m.to_xyz)
	}
	m.to_lms = XYZToLMS.Multiply(to_d65)
	m.from_lms = mustInvert(m.to_lms)
}

func new_linear_space(id string, m *linear_matrices, adapt *Adaptation) *ColorSpace {
	return &ColorSpace{
		ID: id, ToXYZ: &m.to_xyz, FromXYZ: &m.from_xyz, ToLMS: &m.to_lms, FromLMS: &m.from_lms, Adapt: adapt,
	}
}

func new_derived_space(id string, base *ColorSpace, to_base, from_base func(Vec3) Vec3) *ColorSpace {
	return &ColorSpace{ID: id, Base: base, ToBase: to_base, FromBase: from_base}
}

// Built-in color spaces. They must not be modified.
var (
	XYZ               = new_linear_space("xyz", &xyz, nil)
	XYZD50            = new_linear_space("xyz-d50", &xyz_d50, d50_adaptation)
	SRGBLinear        = new_linear_space("srgb-linear", &srgb, nil)
	SRGB              = new_derived_space("srgb", SRGBLinear, per_channel(srgb_to_linear), per_channel(srgb_from_linear))
	DisplayP3Linear   = new_linear_space("display-p3-linear", &display_p3, nil)
	DisplayP3         = new_derived_space("display-p3", DisplayP3Linear, per_channel(srgb_to_linear), per_channel(srgb_from_linear))
	Rec2020Linear     = new_linear_space("rec2020-linear", &rec2020, nil)
	Rec2020           = new_derived_space("rec2020", Rec2020Linear, per_channel(rec2020_to_linear), per_channel(rec2020_from_linear))
	A98RGBLinear      = new_linear_space("a98-rgb-linear", &a98_rgb, nil)
	A98RGB            = new_derived_space("a98-rgb", A98RGBLinear, per_channel(a98_to_linear), per_channel(a98_from_linear))
	ProPhotoRGBLinear = new_linear_space("prophoto-rgb-linear", &prophoto_rgb, d50_adaptation)
	ProPhotoRGB       = new_derived_space("prophoto-rgb", ProPhotoRGBLinear, per_channel(prophoto_to_linear), per_channel(prophoto_from_linear))
	OKLab             = &ColorSpace{ID: "oklab"}
	OKLCH             = new_derived_space("oklch", OKLab, OKLCHToOKLab, OKLabToOKLCH)
	Lab               = new_derived_space("lab", XYZD50, lab_to_xyz_d50, xyz_d50_to_lab)
)

var builtin_spaces []*ColorSpace
var space_aliases = map[string]string{"xyz-d65": "xyz", "linear-srgb": "srgb-linear"}
var spaces_by_id map[string]*ColorSpace

func init() {
	LMSToXYZ = mustInvert(XYZToLMS)
	OKLabToLMS = mustInvert(LMSToOKLab)
	for _, m := range []*linear_matrices{&xyz, &srgb, &display_p3, &rec2020, &a98_rgb} {
		m.fuse(nil)
	}
	for _, m := range []*linear_matrices{&xyz_d50, &prophoto_rgb} {
		m.fuse(d50_adaptation)
	}
	builtin_spaces = []*ColorSpace{
		XYZ, XYZD50, SRGBLinear, SRGB, DisplayP3Linear, DisplayP3, Rec2020Linear, Rec2020,
		A98RGBLinear, A98RGB, ProPhotoRGBLinear, ProPhotoRGB, OKLab, OKLCH, Lab,
	}
	spaces_by_id = make(map[string]*ColorSpace, len(builtin_spaces)+len(space_aliases))
	for _, cs := range builtin_spaces {
		spaces_by_id[cs.ID] = cs
	}
	for alias, id := range space_aliases {
		spaces_by_id[alias] = spaces_by_id[id]
	}
}

// ListColorSpaces returns the built-in color spaces in a fixed order.
func ListColorSpaces() []*ColorSpace {
	return append([]*ColorSpace(nil), builtin_spaces...)
}

// ColorSpaceByID finds a built-in color space by its case insensitive ID.
func ColorSpaceByID(id string) (*ColorSpace, error) {
	if cs := spaces_by_id[strings.ToLower(strings.TrimSpace(id))]; cs != nil {
		return cs, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSpace, id)
}
