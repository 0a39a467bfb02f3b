package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rook-computer/clockface/internal/app/screens"
	"github.com/rook-computer/clockface/internal/assets"
	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/render"
)

const defaultSnapshotSize = 512

type snapshotOpts struct {
	at       string
	size     int
	width    int
	height   int
	output   string
	format   string
	backdrop bool
}

func (c *CLI) snapshotCommand() *cobra.Command {
	opts := snapshotOpts{size: defaultSnapshotSize}

	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to a PNG or SVG file",
		Example: `  clockface snapshot --at 03:00:00 --out three.png
  clockface snapshot --style roman-square --size 256 --out face.svg
  clockface snapshot --format svg --out - > face.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSnapshot(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.at, "at", "", "time of day as HH:MM:SS or HH:MM (default now)")
	cmd.Flags().IntVar(&opts.size, "size", opts.size, "side of the square image in pixels")
	cmd.Flags().IntVar(&opts.width, "width", 0, "image width; with --height, centers the face on a wider or taller canvas")
	cmd.Flags().IntVar(&opts.height, "height", 0, "image height")
	cmd.Flags().StringVarP(&opts.output, "out", "o", "clockface.png", "output file, or - for stdout")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "png or svg (default from the --out extension)")
	cmd.Flags().BoolVar(&opts.backdrop, "backdrop", false, "svg only: fill the area around the face like the device does (png always is)")

	return cmd
}

func (c *CLI) runSnapshot(cmd *cobra.Command, opts *snapshotOpts) error {
	format, err := snapshotFormat(opts.format, opts.output)
	if err != nil {
		return err
	}

	width, height := opts.size, opts.size
	if opts.width > 0 || opts.height > 0 {
		width, height = opts.width, opts.height
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid image size %dx%d", width, height)
	}

	now := c.now()
	if opts.at != "" {
		tod, err := face.ParseTimeOfDay(opts.at)
		if err != nil {
			return err
		}
		now = time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, tod.Second, 0, now.Location())
	}

	screen := screens.NewClockScreen(nil, nil, c.style, c.Logger)
	frame := screen.Frame(now, width, height)

	var data []byte
	switch format {
	case "svg":
		var svgOpts []render.SVGOption
		if opts.backdrop {
			svgOpts = append(svgOpts, render.WithBackdrop(render.Backdrop))
		}
		data = render.RenderSVG(frame, float64(width), float64(height), svgOpts...)
	default:
		data, err = render.EncodePNG(frame, width, height, render.LoadFonts(assets.FontTTF, c.Logger))
		if err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
	}

	if err := writeOutput(cmd.OutOrStdout(), opts.output, data); err != nil {
		return err
	}
	c.Logger.Infof("snapshot", "%s %dx%d at %s written to %s", format, width, height, face.TimeOfDayFrom(now), opts.output)
	return nil
}

func snapshotFormat(flag, output string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".svg":
			format = "svg"
		case ".png", "":
			format = "png"
		default:
			return "", fmt.Errorf("cannot tell the format of %q: use --format", output)
		}
	}
	if format != "png" && format != "svg" {
		return "", errors.New("format must be png or svg")
	}
	return format, nil
}

func writeOutput(stdout io.Writer, path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
