package imageconv

import (
	"fmt"
	"image"

	"github.com/kovidgoyal/okcolor"
	"github.com/kovidgoyal/okcolor/colorconv"
	"github.com/kovidgoyal/okcolor/gamut"
)

type convertConfig struct {
	mapping gamut.MappingFunc
	workers int
}

// Option sets an optional parameter for ConvertImage and ConvertFloats.
type Option func(*convertConfig)

// WithMapping sets the gamut mapping used for out of gamut pixels.
// Default is gamut.MapToCuspL.
func WithMapping(m gamut.MappingFunc) Option {
	return func(c *convertConfig) {
		c.mapping = m
	}
}

// WithWorkers sets the number of goroutines used. Zero, the default, means
// one per CPU.
func WithWorkers(n int) Option {
	return func(c *convertConfig) {
		c.workers = max(0, n)
	}
}

func new_config(opts []Option) convertConfig {
	cfg := convertConfig{mapping: gamut.MapToCuspL}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// ConvertImage converts an image whose pixel values are encoded
// coordinates in the color space from into the space of gamut g, gamut
// mapping colors that fall outside it. The result may be either the
// original image unmodified if no conversion was needed, the original
// image modified, or a new image with the same bounds when the original is
// not in a format that can be modified in place.
func ConvertImage(image_any image.Image, from *colorconv.ColorSpace, g *gamut.ColorGamut, opts ...Option) (ans image.Image, err error) {
	cfg := new_config(opts)
	pc, err := new_pixel_converter(from, g, cfg.mapping)
	if err != nil {
		return nil, err
	}
	if from == g.Space {
		okcolor.Logger().Debug("image already in the target color space", "space", from.ID)
		return image_any, nil
	}
	okcolor.Logger().Debug("converting image", "type", fmt.Sprintf("%T", image_any), "bounds", image_any.Bounds(), "from", from.ID, "gamut", g.ID)
	return pc.convert_image(image_any, cfg.workers)
}
