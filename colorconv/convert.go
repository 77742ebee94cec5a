package colorconv

import (
	"fmt"
)

// Convert converts in from one color space to another. Spaces without a
// common base are routed through one of two hubs: the LMS basis of OKLab
// when either end is OKLab, CIE XYZ relative to D65 otherwise.
//
// Convert does not allocate, so it is suitable for per pixel use.
func Convert(in Vec3, from, to *ColorSpace) (Vec3, error) {
	if from == nil || to == nil {
		return in, ErrMissingSpace
	}
	if from == to {
		return in, nil
	}
	v := in
	if from.Base != nil {
		if from.Base.Base != nil {
			return in, fmt.Errorf("%w: %s", ErrUnsupportedDepth, from.ID)
		}
		if from.ToBase == nil {
			return in, fmt.Errorf("%w: %s has no transform to %s", ErrInvalidBase, from.ID, from.Base.ID)
		}
		v = from.ToBase(v)
		from = from.Base
	}
	to_base := to
	if to.Base != nil {
		if to.Base.Base != nil {
			return in, fmt.Errorf("%w: %s", ErrUnsupportedDepth, to.ID)
		}
		if to.FromBase == nil {
			return in, fmt.Errorf("%w: %s has no transform from %s", ErrInvalidBase, to.ID, to.Base.ID)
		}
		to_base = to.Base
	}
	if from != to_base {
		var err error
		if v, err = convert_linear(v, from, to_base); err != nil {
			return in, err
		}
	}
	if to_base != to {
		v = to.FromBase(v)
	}
	return v, nil
}

func convert_linear(v Vec3, from, to *ColorSpace) (Vec3, error) {
	switch {
	case from == OKLab:
		if to.FromLMS != nil {
			return OKLabTo(v, to.FromLMS), nil
		}
		if to.FromXYZ == nil {
			return v, fmt.Errorf("%w: %s", ErrMissingTransform, to.ID)
		}
		v = OKLabTo(v, &LMSToXYZ)
		if to.Adapt != nil {
			v = to.Adapt.From.Transform(v)
		}
		return to.FromXYZ.Transform(v), nil
	case to == OKLab:
		if from.ToLMS != nil {
			return OKLabFrom(v, from.ToLMS), nil
		}
		xv, err := to_xyz(v, from)
		if err != nil {
			return v, err
		}
		return OKLabFrom(xv, &XYZToLMS), nil
	}
	v, err := to_xyz(v, from)
	if err != nil {
		return v, err
	}
	if to.FromXYZ == nil {
		return v, fmt.Errorf("%w: %s", ErrMissingTransform, to.ID)
	}
	if to.Adapt != nil {
		v = to.Adapt.From.Transform(v)
	}
	return to.FromXYZ.Transform(v), nil
}

// to_xyz converts linear coordinates of cs to XYZ relative to D65
func to_xyz(v Vec3, cs *ColorSpace) (Vec3, error) {
	if cs.ToXYZ == nil {
		return v, fmt.Errorf("%w: %s", ErrMissingTransform, cs.ID)
	}
	v = cs.ToXYZ.Transform(v)
	if cs.Adapt != nil {
		v = cs.Adapt.To.Transform(v)
	}
	return v, nil
}

// MustConvert is like Convert but panics on error. Use it only with space
// pairs known to be convertible, such as the built-in spaces.
func MustConvert(in Vec3, from, to *ColorSpace) Vec3 {
	ans, err := Convert(in, from, to)
	if err != nil {
		panic(err)
	}
	return ans
}

// ConvertSlice converts a color stored as 3 floats, or 4 floats where the
// last is alpha which is copied unchanged. out may be the same slice as in.
// When out is nil a new slice is allocated. The slice written to is returned.
func ConvertSlice(out, in []float64, from, to *ColorSpace) ([]float64, error) {
	if n := len(in); n != 3 && n != 4 {
		return out, fmt.Errorf("colorconv: a color must have 3 or 4 components, not %d", n)
	}
	if out == nil {
		out = make([]float64, len(in))
	} else if len(out) < len(in) {
		return out, fmt.Errorf("colorconv: output of length %d too small for %d components", len(out), len(in))
	}
	v, err := Convert(Vec3{in[0], in[1], in[2]}, from, to)
	if err != nil {
		return out, err
	}
	if len(in) == 4 {
		out[3] = in[3]
	}
	out[0], out[1], out[2] = v[0], v[1], v[2]
	return out, nil
}
