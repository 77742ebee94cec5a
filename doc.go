/*
Package okcolor converts colors between color spaces and maps out of gamut colors into RGB gamuts
using the OKLab perceptual color space.

The conversions themselves live in the colorconv sub-package, the gamut mapping in the gamut
sub-package and bulk conversion of pixel data in the imageconv sub-package. This package holds
the version and the logger shared by all of them.
*/
package okcolor

import "fmt"

type OKColorVersion struct {
	Major, Minor, Patch uint
}

func (v OKColorVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func (v OKColorVersion) Equal(o OKColorVersion) bool {
	return v.Major == o.Major && v.Minor == o.Minor && v.Patch == o.Patch
}

func (v OKColorVersion) After(o OKColorVersion) bool {
	switch {
	case v.Major == o.Major:
		switch {
		case v.Minor == o.Minor:
			return v.Patch > o.Patch
		case v.Minor > o.Minor:
			return true
		case v.Minor < o.Minor:
			return false
		}
	case v.Major > o.Major:
		return true
	case v.Major < o.Major:
		return false
	}
	return false
}

func (v OKColorVersion) Before(o OKColorVersion) bool {
	return !v.Equal(o) && !v.After(o)
}

var Version = OKColorVersion{0, 3, 0}
