package imageconv

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"strings"
	"time"

	"github.com/kettek/apng"
	"github.com/rwcarlsen/goexif/exif"
	exif_tiff "github.com/rwcarlsen/goexif/tiff"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/kovidgoyal/okcolor"
	"github.com/kovidgoyal/okcolor/colorconv"
	"github.com/kovidgoyal/okcolor/types"
)

type fileSystem interface {
	Create(string) (io.WriteCloser, error)
	Open(string) (io.ReadCloser, error)
}

type localFS struct{}

func (localFS) Create(name string) (io.WriteCloser, error) { return os.Create(name) }
func (localFS) Open(name string) (io.ReadCloser, error)    { return os.Open(name) }

var fs fileSystem = localFS{}

const exif_colorspace_uncalibrated = 0xffff

// DetectColorSpace reads the EXIF data in r, if any, and returns the color
// space the pixel values are encoded in. Images with no usable EXIF color
// information are assumed to be sRGB.
func DetectColorSpace(r io.Reader) *colorconv.ColorSpace {
	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return colorconv.SRGB
	}
	cs := exif_color_space(x)
	okcolor.Logger().Debug("detected color space from EXIF", "space", cs.ID)
	return cs
}

func exif_color_space(x *exif.Exif) *colorconv.ColorSpace {
	tag, err := x.Get(exif.ColorSpace)
	if err != nil || tag == nil || tag.Format() != exif_tiff.IntVal {
		return colorconv.SRGB
	}
	v, err := tag.Int(0)
	if err != nil || v != exif_colorspace_uncalibrated {
		return colorconv.SRGB
	}
	// Uncalibrated with the R03 interoperability index is the DCF
	// convention for Adobe RGB (1998)
	if idx, err := x.Get(exif.InteroperabilityIndex); err == nil && idx != nil {
		if s, err := idx.StringVal(); err == nil && strings.TrimRight(s, "\x00 ") == "R03" {
			return colorconv.A98RGB
		}
	}
	return colorconv.SRGB
}

// Decode reads an image from r, returning it along with the color space
// its pixels are in and its format. The color space comes from the cICP
// chunk of PNG images and the EXIF data of JPEG and TIFF images, defaulting
// to sRGB.
func Decode(r io.Reader) (img image.Image, cs *colorconv.ColorSpace, format types.Format, err error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, types.UNKNOWN, err
	}
	img, name, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, nil, types.UNKNOWN, err
	}
	format = types.FormatFromDecoderName(name)
	cs = colorconv.SRGB
	switch format {
	case types.JPEG, types.TIFF:
		cs = DetectColorSpace(bytes.NewReader(data))
	case types.PNG:
		if c, found, cerr := ReadPNGCICP(data); cerr == nil && found {
			if s := c.ColorSpace(); s != nil {
				cs = s
			} else {
				okcolor.Logger().Debug("ignoring unsupported PNG color space", "cicp", c.String())
			}
		}
	}
	return img, cs, format, nil
}

// Open loads an image from file.
func Open(filename string) (image.Image, *colorconv.ColorSpace, types.Format, error) {
	file, err := fs.Open(filename)
	if err != nil {
		return nil, nil, types.UNKNOWN, err
	}
	defer file.Close()
	return Decode(file)
}

type encodeConfig struct {
	jpegQuality         int
	gifNumColors        int
	gifDrawer           draw.Drawer
	pngCompressionLevel png.CompressionLevel
}

var defaultEncodeConfig = encodeConfig{
	jpegQuality:         95,
	gifNumColors:        256,
	pngCompressionLevel: png.DefaultCompression,
}

// EncodeOption sets an optional parameter for the Encode and Save functions.
type EncodeOption func(*encodeConfig)

// JPEGQuality returns an EncodeOption that sets the output JPEG quality.
// Quality ranges from 1 to 100 inclusive, higher is better. Default is 95.
func JPEGQuality(quality int) EncodeOption {
	return func(c *encodeConfig) {
		c.jpegQuality = quality
	}
}

// GIFNumColors returns an EncodeOption that sets the maximum number of colors
// used in the GIF-encoded image. It ranges from 1 to 256. Default is 256.
func GIFNumColors(numColors int) EncodeOption {
	return func(c *encodeConfig) {
		c.gifNumColors = numColors
	}
}

// GIFDrawer returns an EncodeOption that sets the drawer used to convert
// the source image to the palette of the GIF-encoded image.
func GIFDrawer(drawer draw.Drawer) EncodeOption {
	return func(c *encodeConfig) {
		c.gifDrawer = drawer
	}
}

// PNGCompressionLevel returns an EncodeOption that sets the compression level
// of the PNG-encoded image. Default is png.DefaultCompression.
func PNGCompressionLevel(level png.CompressionLevel) EncodeOption {
	return func(c *encodeConfig) {
		c.pngCompressionLevel = level
	}
}

// Encode writes the image img to w in the specified format (JPEG, PNG, GIF, TIFF or BMP).
func Encode(w io.Writer, img image.Image, format types.Format, opts ...EncodeOption) error {
	cfg := defaultEncodeConfig
	for _, option := range opts {
		option(&cfg)
	}

	switch format {
	case types.JPEG:
		if nrgba, ok := img.(*image.NRGBA); ok && nrgba.Opaque() {
			rgba := &image.RGBA{Pix: nrgba.Pix, Stride: nrgba.Stride, Rect: nrgba.Rect}
			return jpeg.Encode(w, rgba, &jpeg.Options{Quality: cfg.jpegQuality})
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: cfg.jpegQuality})
	case types.PNG:
		encoder := png.Encoder{CompressionLevel: cfg.pngCompressionLevel}
		return encoder.Encode(w, img)
	case types.GIF:
		return gif.Encode(w, img, &gif.Options{NumColors: cfg.gifNumColors, Drawer: cfg.gifDrawer})
	case types.TIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	case types.BMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("cannot encode %s: %w", format, types.ErrUnsupportedFormat)
}

func save(filename string, write func(io.Writer) error) (err error) {
	file, err := fs.Create(filename)
	if err != nil {
		return err
	}
	err = write(file)
	if errc := file.Close(); err == nil {
		err = errc
	}
	return err
}

// Save saves the image to file with the specified filename. The format is
// determined from the filename extension.
func Save(img image.Image, filename string, opts ...EncodeOption) error {
	f, err := types.FormatFromFilename(filename)
	if err != nil {
		return err
	}
	return save(filename, func(w io.Writer) error { return Encode(w, img, f, opts...) })
}

// EncodeAnimation writes frames to w as an animated PNG that loops forever,
// showing each frame for delay. A single frame is written as a plain PNG.
func EncodeAnimation(w io.Writer, frames []image.Image, delay time.Duration) error {
	switch len(frames) {
	case 0:
		return fmt.Errorf("no frames to encode")
	case 1:
		return png.Encode(w, frames[0])
	}
	ms := uint16(min(max(0, delay.Milliseconds()), 0xffff))
	a := apng.APNG{Frames: make([]apng.Frame, 0, len(frames))}
	for _, f := range frames {
		a.Frames = append(a.Frames, apng.Frame{
			Image: f, DelayNumerator: ms, DelayDenominator: 1000,
			DisposeOp: apng.DISPOSE_OP_NONE, BlendOp: apng.BLEND_OP_SOURCE,
		})
	}
	return apng.Encode(w, a)
}

// SaveAnimation is EncodeAnimation writing to the named file.
func SaveAnimation(frames []image.Image, filename string, delay time.Duration) error {
	return save(filename, func(w io.Writer) error { return EncodeAnimation(w, frames, delay) })
}

// DecodeAnimation reads all frames of an animated PNG from r. Frame
// offsets are ignored, every frame is returned as stored.
func DecodeAnimation(r io.Reader) ([]image.Image, error) {
	a, err := apng.DecodeAll(r)
	if err != nil {
		return nil, err
	}
	ans := make([]image.Image, 0, len(a.Frames))
	for _, f := range a.Frames {
		if !f.IsDefault {
			ans = append(ans, f.Image)
		}
	}
	return ans, nil
}
