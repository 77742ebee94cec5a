package imageconv

import (
	"fmt"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/okcolor/colorconv"
	"github.com/kovidgoyal/okcolor/gamut"
)

func check_channels(buf []float64, channels int) (int, error) {
	if channels != 3 && channels != 4 {
		return 0, fmt.Errorf("pixels must have 3 or 4 channels, not %d", channels)
	}
	if len(buf)%channels != 0 {
		return 0, fmt.Errorf("buffer of length %d is not a whole number of %d channel pixels", len(buf), channels)
	}
	return len(buf) / channels, nil
}

// ConvertFloats converts, in place, a buffer of interleaved pixels with
// three color channels optionally followed by an alpha channel from one
// color space to another. No gamut mapping is done.
func ConvertFloats(buf []float64, channels int, from, to *colorconv.ColorSpace, opts ...Option) error {
	n, err := check_channels(buf, channels)
	if err != nil || n == 0 {
		return err
	}
	if _, err = colorconv.Convert(colorconv.Vec3{}, from, to); err != nil {
		return err
	}
	cfg := new_config(opts)
	return parallel.Run_in_parallel_over_range(cfg.workers, func(start, limit int) {
		for i := start; i < limit; i++ {
			p := buf[i*channels : i*channels+3 : i*channels+3]
			v, _ := colorconv.Convert(colorconv.Vec3{p[0], p[1], p[2]}, from, to)
			p[0], p[1], p[2] = v[0], v[1], v[2]
		}
	}, 0, n)
}

// MapFloats is like ConvertFloats except that the destination is the space
// of gamut g and colors outside it are gamut mapped.
func MapFloats(buf []float64, channels int, from *colorconv.ColorSpace, g *gamut.ColorGamut, opts ...Option) error {
	n, err := check_channels(buf, channels)
	if err != nil || n == 0 {
		return err
	}
	cfg := new_config(opts)
	pc, err := new_pixel_converter(from, g, cfg.mapping)
	if err != nil {
		return err
	}
	return parallel.Run_in_parallel_over_range(cfg.workers, func(start, limit int) {
		w := pc.new_worker()
		for i := start; i < limit; i++ {
			p := buf[i*channels : i*channels+3 : i*channels+3]
			v := w.convert(colorconv.Vec3{p[0], p[1], p[2]})
			p[0], p[1], p[2] = v[0], v[1], v[2]
		}
	}, 0, n)
}
