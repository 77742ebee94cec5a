package main

import (
	"fmt"
	"io"
	"math"

	"github.com/kovidgoyal/okcolor/colorconv"
	"github.com/kovidgoyal/okcolor/gamut"
	"github.com/kovidgoyal/okcolor/imageconv"
)

func run_convert(args []string, out io.Writer) (err error) {
	fs, verbose := new_flag_set("convert")
	from := fs.String("from", "srgb", "source color space")
	to := fs.String("to", "oklch", "destination color space")
	if err = parse_flags(fs, verbose, args); err != nil {
		return
	}
	src, err := colorconv.ColorSpaceByID(*from)
	if err != nil {
		return
	}
	dest, err := colorconv.ColorSpaceByID(*to)
	if err != nil {
		return
	}
	vals, err := parse_floats(fs.Args())
	if err != nil {
		return
	}
	ans, err := colorconv.ConvertSlice(nil, vals, src, dest)
	if err != nil {
		return
	}
	_, err = fmt.Fprintln(out, format_floats(ans))
	return
}

func run_map(args []string, out io.Writer) (err error) {
	fs, verbose := new_flag_set("map")
	gid := fs.String("gamut", "srgb", "gamut to map into")
	to := fs.String("to", "", "color space of the output, defaults to that of the gamut")
	mname := fs.String("mapping", "cusp-l", "the lightness the mapping moves towards")
	if err = parse_flags(fs, verbose, args); err != nil {
		return
	}
	g, err := gamut.ColorGamutByID(*gid)
	if err != nil {
		return
	}
	mapping, err := gamut.MappingByName(*mname)
	if err != nil {
		return
	}
	opts := []gamut.MapperOption{gamut.WithMapping(mapping)}
	if *to != "" {
		dest, err := colorconv.ColorSpaceByID(*to)
		if err != nil {
			return err
		}
		opts = append(opts, gamut.WithTarget(dest))
	}
	m, err := gamut.NewMapper(g, opts...)
	if err != nil {
		return
	}
	vals, err := parse_floats(fs.Args())
	if err != nil {
		return
	}
	if len(vals) != 3 {
		return fmt.Errorf("map needs exactly three numbers: L C H")
	}
	ans, err := m.Map(colorconv.Vec3{vals[0], vals[1], vals[2]})
	if err != nil {
		return
	}
	_, err = fmt.Fprintln(out, format_floats(ans[:]))
	return
}

func unit_hue(degrees float64) (a, b float64) {
	h := degrees * math.Pi / 180
	return math.Cos(h), math.Sin(h)
}

func run_cusp(args []string, out io.Writer) (err error) {
	fs, verbose := new_flag_set("cusp")
	gid := fs.String("gamut", "srgb", "gamut whose cusp is wanted")
	if err = parse_flags(fs, verbose, args); err != nil {
		return
	}
	g, err := gamut.ColorGamutByID(*gid)
	if err != nil {
		return
	}
	vals, err := parse_floats(fs.Args())
	if err != nil {
		return
	}
	if len(vals) != 1 {
		return fmt.Errorf("cusp needs exactly one number: the hue in degrees")
	}
	a, b := unit_hue(vals[0])
	c, err := gamut.FindCuspOKLCH(a, b, g)
	if err != nil {
		return
	}
	_, err = fmt.Fprintln(out, format_floats([]float64{c.L, c.C}))
	return
}

func run_spaces(args []string, out io.Writer) (err error) {
	fs, verbose := new_flag_set("spaces")
	if err = parse_flags(fs, verbose, args); err != nil {
		return
	}
	fmt.Fprintln(out, "Color spaces:")
	for _, cs := range colorconv.ListColorSpaces() {
		fmt.Fprintln(out, " ", cs.ID)
	}
	fmt.Fprintln(out, "Gamuts:")
	for _, g := range gamut.ListColorGamuts() {
		fmt.Fprintln(out, " ", g.ID)
	}
	fmt.Fprintln(out, "Mappings:")
	for _, name := range gamut.MappingNames() {
		fmt.Fprintln(out, " ", name)
	}
	return
}

func run_image(args []string, out io.Writer) (err error) {
	fs, verbose := new_flag_set("image")
	from := fs.String("from", "auto", "color space of the input pixels, auto reads it from EXIF data")
	gid := fs.String("gamut", "srgb", "gamut of the output")
	mname := fs.String("mapping", "cusp-l", "the lightness the mapping moves towards")
	if err = parse_flags(fs, verbose, args); err != nil {
		return
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("usage: okcolor %s", commands["image"].usage)
	}
	g, err := gamut.ColorGamutByID(*gid)
	if err != nil {
		return
	}
	mapping, err := gamut.MappingByName(*mname)
	if err != nil {
		return
	}
	img, detected, _, err := imageconv.Open(fs.Arg(0))
	if err != nil {
		return
	}
	src := detected
	if *from != "auto" {
		if src, err = colorconv.ColorSpaceByID(*from); err != nil {
			return
		}
	}
	if img, err = imageconv.ConvertImage(img, src, g, imageconv.WithMapping(mapping)); err != nil {
		return
	}
	if err = imageconv.Save(img, fs.Arg(1)); err == nil {
		fmt.Fprintf(out, "Converted from %s to %s and saved to: %s\n", src.ID, g.ID, fs.Arg(1))
	}
	return
}
