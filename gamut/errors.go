package gamut

import "errors"

var (
	ErrMissingGamut   = errors.New("color gamut is nil")
	ErrInvalidGamut   = errors.New("color space has no linear base with LMS matrices, it cannot be used as a gamut")
	ErrUnknownGamut   = errors.New("unknown color gamut")
	ErrUnknownMapping = errors.New("unknown gamut mapping")
)
