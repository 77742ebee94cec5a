package colorconv

import "errors"

var (
	ErrMissingSpace     = errors.New("color space is nil")
	ErrUnsupportedDepth = errors.New("color space derives from more than one base level")
	ErrMissingTransform = errors.New("color space has no XYZ transform")
	ErrInvalidBase      = errors.New("color space has a base but no transform to or from it")
	ErrUnknownSpace     = errors.New("unknown color space")
)
