package imageconv

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/kovidgoyal/go-parallel"
	"github.com/kovidgoyal/okcolor/colorconv"
	"github.com/kovidgoyal/okcolor/gamut"
)

func premultiply8(r, a uint8) uint8 {
	return uint8((uint16(r)*uint16(a) + 0x7f) / uint16(0xff))
}

func unpremultiply8(r, a uint8) uint8 {
	return uint8(min(0xff, (uint16(r)*0xff+uint16(a)/2)/uint16(a)))
}

func unpremultiply(r, a uint32) uint16 {
	return uint16(min(0xffff, (r*0xffff+a/2)/a))
}

func premultiply(r, a uint32) uint16 {
	return uint16((r*a + 0x7fff) / 0xffff)
}

func to8(x float64) uint8 {
	return uint8(math.Round(max(0, min(x, 1)) * math.MaxUint8))
}

func to16(x float64) uint16 {
	return uint16(math.Round(max(0, min(x, 1)) * math.MaxUint16))
}

type pixel_converter struct {
	from   *colorconv.ColorSpace
	mapper gamut.Mapper
}

// new_pixel_converter checks both legs of the path from the source space
// through OKLCH into the space of the gamut, so that per pixel conversions
// cannot fail.
func new_pixel_converter(from *colorconv.ColorSpace, g *gamut.ColorGamut, mapping gamut.MappingFunc) (*pixel_converter, error) {
	if g == nil {
		return nil, gamut.ErrMissingGamut
	}
	if err := from.Validate(); err != nil {
		return nil, err
	}
	if _, err := colorconv.Convert(colorconv.Vec3{}, from, colorconv.OKLCH); err != nil {
		return nil, err
	}
	if _, err := colorconv.Convert(colorconv.Vec3{}, colorconv.OKLCH, g.Space); err != nil {
		return nil, fmt.Errorf("gamut %s: %w", g.ID, err)
	}
	m, err := gamut.NewMapper(g, gamut.WithMapping(mapping))
	if err != nil {
		return nil, err
	}
	return &pixel_converter{from: from, mapper: *m}, nil
}

// worker state, one per goroutine as a gamut.Mapper is not safe for
// concurrent use
type pixel_worker struct {
	from   *colorconv.ColorSpace
	mapper gamut.Mapper
}

func (pc *pixel_converter) new_worker() *pixel_worker {
	return &pixel_worker{from: pc.from, mapper: pc.mapper}
}

func (w *pixel_worker) convert(v colorconv.Vec3) colorconv.Vec3 {
	ans, _ := w.mapper.MapFrom(v, w.from)
	return ans
}

func (w *pixel_worker) convert8(p []uint8) {
	v := w.convert(colorconv.Vec3{float64(p[0]) / math.MaxUint8, float64(p[1]) / math.MaxUint8, float64(p[2]) / math.MaxUint8})
	p[0], p[1], p[2] = to8(v[0]), to8(v[1]), to8(v[2])
}

func (w *pixel_worker) convert16(p []uint16) {
	v := w.convert(colorconv.Vec3{float64(p[0]) / math.MaxUint16, float64(p[1]) / math.MaxUint16, float64(p[2]) / math.MaxUint16})
	p[0], p[1], p[2] = to16(v[0]), to16(v[1]), to16(v[2])
}

func read16(s []uint8) uint16 { return uint16(s[0])<<8 | uint16(s[1]) }

func write16(s []uint8, v uint16) { s[0], s[1] = uint8(v>>8), uint8(v) }

func (pc *pixel_converter) convert_image(image_any image.Image, workers int) (ans image.Image, err error) {
	b := image_any.Bounds()
	width, height := b.Dx(), b.Dy()
	ans = image_any
	if width == 0 || height == 0 {
		return
	}
	var f func(start, limit int)
	switch img := image_any.(type) {
	case *image.NRGBA:
		f = func(start, limit int) {
			w := pc.new_worker()
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[4*(width-1)]
				for range width {
					if row[3] != 0 {
						w.convert8(row[0:3:3])
					}
					row = row[4:]
				}
			}
		}
	case *image.NRGBA64:
		f = func(start, limit int) {
			w := pc.new_worker()
			sl := []uint16{0, 0, 0}
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					if read16(s[6:]) != 0 {
						sl[0], sl[1], sl[2] = read16(s[0:]), read16(s[2:]), read16(s[4:])
						w.convert16(sl)
						write16(s[0:], sl[0])
						write16(s[2:], sl[1])
						write16(s[4:], sl[2])
					}
					row = row[8:]
				}
			}
		}
	case *image.RGBA:
		f = func(start, limit int) {
			w := pc.new_worker()
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[4*(width-1)]
				for range width {
					r := row[0:3:3]
					if a := row[3]; a != 0 {
						r[0], r[1], r[2] = unpremultiply8(r[0], a), unpremultiply8(r[1], a), unpremultiply8(r[2], a)
						w.convert8(r)
						r[0], r[1], r[2] = premultiply8(r[0], a), premultiply8(r[1], a), premultiply8(r[2], a)
					}
					row = row[4:]
				}
			}
		}
	case *image.RGBA64:
		f = func(start, limit int) {
			w := pc.new_worker()
			sl := []uint16{0, 0, 0}
			for y := start; y < limit; y++ {
				row := img.Pix[img.Stride*y:]
				_ = row[8*(width-1)]
				for range width {
					s := row[0:8:8]
					if a := uint32(read16(s[6:])); a != 0 {
						sl[0] = unpremultiply(uint32(read16(s[0:])), a)
						sl[1] = unpremultiply(uint32(read16(s[2:])), a)
						sl[2] = unpremultiply(uint32(read16(s[4:])), a)
						w.convert16(sl)
						write16(s[0:], premultiply(uint32(sl[0]), a))
						write16(s[2:], premultiply(uint32(sl[1]), a))
						write16(s[4:], premultiply(uint32(sl[2]), a))
					}
					row = row[8:]
				}
			}
		}
	case *image.Paletted:
		w := pc.new_worker()
		sl := []uint16{0, 0, 0}
		for i, c := range img.Palette {
			r, g, b, a := c.RGBA()
			if a != 0 {
				sl[0], sl[1], sl[2] = unpremultiply(r, a), unpremultiply(g, a), unpremultiply(b, a)
				w.convert16(sl)
				img.Palette[i] = color.NRGBA64{R: sl[0], G: sl[1], B: sl[2], A: uint16(a)}
			}
		}
		return
	default:
		// Gray, YCbCr, CMYK and anything else cannot hold the result in place
		d := image.NewNRGBA64(b)
		ans = d
		f = func(start, limit int) {
			w := pc.new_worker()
			sl := []uint16{0, 0, 0}
			for y := start; y < limit; y++ {
				row := d.Pix[d.Stride*y:]
				for x := range width {
					r16, g16, b16, a16 := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
					s := row[8*x : 8*x+8 : 8*x+8]
					if a16 != 0 {
						sl[0], sl[1], sl[2] = unpremultiply(r16, a16), unpremultiply(g16, a16), unpremultiply(b16, a16)
						w.convert16(sl)
						write16(s[0:], sl[0])
						write16(s[2:], sl[1])
						write16(s[4:], sl[2])
					}
					write16(s[6:], uint16(a16))
				}
			}
		}
	}
	err = parallel.Run_in_parallel_over_range(workers, f, 0, height)
	return
}
