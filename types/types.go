package types

import (
	"errors"
	"path/filepath"
	"strings"
)

// Format is an image file format.
type Format int

// Image file formats.
const (
	UNKNOWN Format = iota
	JPEG
	PNG
	GIF
	TIFF
	WEBP
	BMP
)

var FormatExts = map[string]Format{
	"jpg":  JPEG,
	"jpeg": JPEG,
	"png":  PNG,
	"apng": PNG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"webp": WEBP,
	"bmp":  BMP,
}

var formatNames = map[Format]string{
	JPEG: "JPEG",
	PNG:  "PNG",
	GIF:  "GIF",
	TIFF: "TIFF",
	WEBP: "WEBP",
	BMP:  "BMP",
}

func (f Format) String() string {
	if ans, ok := formatNames[f]; ok {
		return ans
	}
	return "UNKNOWN"
}

// CanEncode reports whether images can be written in this format. WEBP is
// decode only.
func (f Format) CanEncode() bool {
	switch f {
	case JPEG, PNG, GIF, TIFF, BMP:
		return true
	}
	return false
}

// ErrUnsupportedFormat means the given image format is not supported.
var ErrUnsupportedFormat = errors.New("okcolor: unsupported image format")

// FormatFromExtension parses image format from filename extension, with or
// without the leading dot, ignoring case.
func FormatFromExtension(ext string) (Format, error) {
	if f, ok := FormatExts[strings.ToLower(strings.TrimPrefix(ext, "."))]; ok {
		return f, nil
	}
	return UNKNOWN, ErrUnsupportedFormat
}

// FormatFromFilename parses image format from the extension of filename.
func FormatFromFilename(filename string) (Format, error) {
	return FormatFromExtension(filepath.Ext(filename))
}

// FormatFromDecoderName maps the name returned by image.Decode to a Format.
func FormatFromDecoderName(name string) Format {
	switch strings.ToLower(name) {
	case "jpeg":
		return JPEG
	case "png":
		return PNG
	case "gif":
		return GIF
	case "tiff", "tif":
		return TIFF
	case "webp":
		return WEBP
	case "bmp":
		return BMP
	}
	return UNKNOWN
}
