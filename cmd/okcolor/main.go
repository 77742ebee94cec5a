package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/kovidgoyal/okcolor"
)

var _ = fmt.Print

type command struct {
	usage string
	run   func(args []string, out io.Writer) error
}

var commands map[string]command

func init() {
	commands = map[string]command{
		"convert": {"convert -from ID -to ID c1 c2 c3 [alpha]", run_convert},
		"map":     {"map -gamut ID [-to ID] [-mapping NAME] L C H", run_map},
		"cusp":    {"cusp -gamut ID H", run_cusp},
		"spaces":  {"spaces", run_spaces},
		"image":   {"image -from ID|auto -gamut ID [-mapping NAME] input-file output-file", run_image},
		"slice":   {"slice -gamut ID -hue H [-size N] [-frames N] output-file", run_slice},
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: okcolor command [options] [args]")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintln(w, "  okcolor", commands[name].usage)
	}
}

// new_flag_set creates the flag set for a command, every command accepts -v
func new_flag_set(name string) (*flag.FlagSet, *bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	verbose := fs.Bool("v", false, "log debug information to stderr")
	return fs, verbose
}

func parse_flags(fs *flag.FlagSet, verbose *bool, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%s: %w, usage: okcolor %s", fs.Name(), err, commands[fs.Name()].usage)
	}
	if *verbose {
		okcolor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	return nil
}

func parse_floats(args []string) (ans []float64, err error) {
	ans = make([]float64, len(args))
	for i, a := range args {
		if ans[i], err = strconv.ParseFloat(strings.TrimSpace(a), 64); err != nil {
			return nil, fmt.Errorf("%q is not a number", a)
		}
	}
	return
}

func format_floats(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strings.Join(parts, " ")
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		usage(out)
		return fmt.Errorf("no command specified")
	}
	cmd, ok := commands[args[0]]
	if !ok {
		if args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
			usage(out)
			return nil
		}
		return fmt.Errorf("unknown command: %s", args[0])
	}
	return cmd.run(args[1:], out)
}

func main() {
	var err error
	defer func() {
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}()
	err = run(os.Args[1:], os.Stdout)
}
