// Package config implements the CLI option stream, its hand-rolled
// ordered parser, and the per-output config resolver.
package config

import (
	"fmt"
	"os"

	"github.com/friedelschoen/wsbg/internal/wcolor"
)

// OptionType tags the kind of value an Option carries.
type OptionType int

const (
	OptOutput OptionType = iota
	OptWorkspace
	OptColor
	OptImage
	OptMode
	OptPosition
)

// Option is one entry in the ordered CLI stream. Selector options
// (OptOutput, OptWorkspace) use Selector ("*" meaning "all"); the rest
// use the matching value field.
type Option struct {
	Type     OptionType
	Selector string
	Color    wcolor.Color
	Image    string
	Mode     wcolor.BackgroundMode
	Position wcolor.Point16
}

// ParseArgs hand-scans argv in order, since the config resolver's
// semantics (§4.F) depend on option order the standard flag package
// does not preserve. For -h/-v it prints the help or version text and
// returns helpOrVersion=true; a parse error is returned as err without
// printing anything. cmd/wsbg exits 0 for help/version and prints err
// and exits 1 otherwise.
func ParseArgs(args []string) (opts []Option, helpOrVersion bool, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		next := func() (string, error) {
			i++
			if i >= len(args) {
				return "", fmt.Errorf("config: %s requires an argument", arg)
			}
			return args[i], nil
		}

		switch arg {
		case "-c", "--color":
			v, err := next()
			if err != nil {
				return nil, false, err
			}
			c, err := wcolor.ParseColor(v)
			if err != nil {
				return nil, false, err
			}
			opts = append(opts, Option{Type: OptColor, Color: c})
		case "-i", "--image":
			v, err := next()
			if err != nil {
				return nil, false, err
			}
			opts = append(opts, Option{Type: OptImage, Image: v})
		case "-m", "--mode":
			v, err := next()
			if err != nil {
				return nil, false, err
			}
			mode := wcolor.ParseMode(v)
			if mode == wcolor.ModeInvalid {
				return nil, false, fmt.Errorf("config: unsupported mode %q", v)
			}
			opts = append(opts, Option{Type: OptMode, Mode: mode})
			opts = append(opts, Option{Type: OptPosition, Position: wcolor.DefaultPosition})
		case "-p", "--position":
			v, err := next()
			if err != nil {
				return nil, false, err
			}
			pos, err := ParsePosition(v)
			if err != nil {
				return nil, false, err
			}
			opts = append(opts, Option{Type: OptPosition, Position: pos})
		case "-o", "--output":
			v, err := next()
			if err != nil {
				return nil, false, err
			}
			opts = append(opts, Option{Type: OptOutput, Selector: v})
		case "-w", "--workspace":
			v, err := next()
			if err != nil {
				return nil, false, err
			}
			opts = append(opts, Option{Type: OptWorkspace, Selector: v})
		case "-v", "--version":
			fmt.Println("wsbg (reimplementation)")
			return nil, true, nil
		case "-h", "--help":
			printUsage(os.Stdout)
			return nil, true, nil
		default:
			return nil, false, fmt.Errorf("config: unrecognized argument %q", arg)
		}
	}
	return opts, false, nil
}

// ParsePosition parses one of the nine position spellings into a Q16
// anchor: the four corners, the four edges, and center.
func ParsePosition(s string) (wcolor.Point16, error) {
	const (
		start  = 0
		center = wcolor.Q16 / 2
		end    = wcolor.Q16
	)
	switch s {
	case "center":
		return wcolor.Point16{X: center, Y: center}, nil
	case "left":
		return wcolor.Point16{X: start, Y: center}, nil
	case "right":
		return wcolor.Point16{X: end, Y: center}, nil
	case "top":
		return wcolor.Point16{X: center, Y: start}, nil
	case "bottom":
		return wcolor.Point16{X: center, Y: end}, nil
	case "top/left":
		return wcolor.Point16{X: start, Y: start}, nil
	case "top/right":
		return wcolor.Point16{X: end, Y: start}, nil
	case "bottom/left":
		return wcolor.Point16{X: start, Y: end}, nil
	case "bottom/right":
		return wcolor.Point16{X: end, Y: end}, nil
	default:
		return wcolor.Point16{}, fmt.Errorf("config: unrecognized position %q", s)
	}
}

func printUsage(w *os.File) {
	fmt.Fprint(w, `usage: wsbg [options...]

  -c, --color RRGGBB        set background color
  -i, --image PATH          set background image
  -m, --mode NAME           stretch|fill|fit|center|tile|solid_color
  -p, --position SPEC       center|left|right|top|bottom|top/left|...
  -o, --output NAME         select an output, or * for all
  -w, --workspace NAME      select a workspace, or * for all
  -v, --version             print version and exit
  -h, --help                print this help and exit
`)
}
