package main

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"time"

	"github.com/kovidgoyal/okcolor/colorconv"
	"github.com/kovidgoyal/okcolor/gamut"
	"github.com/kovidgoyal/okcolor/imageconv"
)

const slice_max_chroma = 0.4

// render_slice draws the OKLCH plane of constant hue, lightness increasing
// upwards and chroma to the right. Colors outside the gamut are drawn
// mapped and at half brightness, the cusp is marked with a white cross.
func render_slice(g *gamut.ColorGamut, hue float64, size int) (*image.NRGBA, error) {
	m, err := gamut.NewMapper(g)
	if err != nil {
		return nil, err
	}
	a, b := unit_hue(hue)
	cusp, err := gamut.FindCuspOKLCH(a, b, g)
	if err != nil {
		return nil, err
	}
	linear := g.Space.Root()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	scale := float64(size - 1)
	for y := range size {
		L := 1 - float64(y)/scale
		for x := range size {
			C := slice_max_chroma * float64(x) / scale
			oklch := colorconv.Vec3{L, C, hue}
			rgb, err := colorconv.Convert(oklch, colorconv.OKLCH, linear)
			if err != nil {
				return nil, err
			}
			inside := colorconv.IsRGBInGamut(rgb, gamut.Epsilon)
			v, err := m.Map(oklch)
			if err != nil {
				return nil, err
			}
			f := 255.0
			if !inside {
				f = 127.5
			}
			img.SetNRGBA(x, y, color.NRGBA{
				uint8(math.Round(v[0] * f)), uint8(math.Round(v[1] * f)), uint8(math.Round(v[2] * f)), 255})
		}
	}
	cx, cy := int(math.Round(cusp.C/slice_max_chroma*scale)), int(math.Round((1-cusp.L)*scale))
	for d := -3; d <= 3; d++ {
		for _, p := range [2]image.Point{{cx + d, cy}, {cx, cy + d}} {
			if p.In(img.Rect) {
				img.SetNRGBA(p.X, p.Y, color.NRGBA{255, 255, 255, 255})
			}
		}
	}
	return img, nil
}

func run_slice(args []string, out io.Writer) (err error) {
	fs, verbose := new_flag_set("slice")
	gid := fs.String("gamut", "srgb", "gamut to render")
	hue := fs.Float64("hue", 30, "hue in degrees, the first hue when animating")
	size := fs.Int("size", 256, "width and height of the output in pixels")
	frames := fs.Int("frames", 1, "number of frames, more than one writes an animated PNG sweeping all hues")
	delay := fs.Duration("delay", 50*time.Millisecond, "time each frame is shown")
	if err = parse_flags(fs, verbose, args); err != nil {
		return
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: okcolor %s", commands["slice"].usage)
	}
	if *size < 2 || *frames < 1 {
		return fmt.Errorf("size must be at least 2 and frames at least 1")
	}
	g, err := gamut.ColorGamutByID(*gid)
	if err != nil {
		return
	}
	output := fs.Arg(0)
	if *frames == 1 {
		var img *image.NRGBA
		if img, err = render_slice(g, *hue, *size); err != nil {
			return
		}
		err = imageconv.Save(img, output)
	} else {
		imgs := make([]image.Image, *frames)
		for i := range imgs {
			if imgs[i], err = render_slice(g, math.Mod(*hue+360*float64(i)/float64(*frames), 360), *size); err != nil {
				return
			}
		}
		err = imageconv.SaveAnimation(imgs, output, *delay)
	}
	if err == nil {
		fmt.Fprintln(out, "Slice saved to:", output)
	}
	return
}
