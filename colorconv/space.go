package colorconv

import (
	"fmt"
)

// ColorSpace describes how to reach a color space from the conversion hubs.
// All fields except ID are optional and the router picks its path based on
// which of them are set:
//
//   - ToXYZ/FromXYZ connect a linear space to CIE XYZ. The XYZ is relative to
//     the space's own white, Adapt corrects it to the D65 hub when that white
//     is not D65.
//   - ToLMS/FromLMS connect a linear space directly to the LMS basis of
//     OKLab, skipping XYZ entirely.
//   - Base, ToBase and FromBase define a space as a non linear function of
//     another space, for instance a transfer function applied to linear RGB
//     or polar coordinates of a Lab like space. Only one level is supported,
//     a base may not itself have a base.
//
// Color spaces are immutable once built and can be shared between goroutines.
type ColorSpace struct {
	ID       string
	ToXYZ    *Mat3
	FromXYZ  *Mat3
	ToLMS    *Mat3
	FromLMS  *Mat3
	Adapt    *Adaptation
	Base     *ColorSpace
	ToBase   func(Vec3) Vec3
	FromBase func(Vec3) Vec3
}

func (cs *ColorSpace) String() string {
	if cs == nil {
		return "<nil>"
	}
	return cs.ID
}

// Validate checks the structural invariants of the color space. It is meant
// to be called once when a custom space is set up, the router only checks
// what it needs along the path it takes.
func (cs *ColorSpace) Validate() error {
	if cs == nil {
		return ErrMissingSpace
	}
	if cs.Base == nil {
		if cs.ToBase != nil || cs.FromBase != nil {
			return fmt.Errorf("%w: %s has base transforms but no base", ErrInvalidBase, cs.ID)
		}
		if (cs.ToXYZ == nil) != (cs.FromXYZ == nil) {
			return fmt.Errorf("%w: %s must have both or neither of the XYZ matrices", ErrMissingTransform, cs.ID)
		}
		return nil
	}
	if cs.Base.Base != nil {
		return fmt.Errorf("%w: %s -> %s -> %s", ErrUnsupportedDepth, cs.ID, cs.Base.ID, cs.Base.Base.ID)
	}
	if cs.ToBase == nil || cs.FromBase == nil {
		return fmt.Errorf("%w: %s", ErrInvalidBase, cs.ID)
	}
	return cs.Base.Validate()
}

// Root returns the base of cs, or cs itself when it has no base.
func (cs *ColorSpace) Root() *ColorSpace {
	if cs.Base != nil {
		return cs.Base
	}
	return cs
}
