// Package cli implements the clockface command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rook-computer/clockface/internal/app"
	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/style"
)

const appName = "clockface"

// Environment fallbacks for the persistent flags.
const (
	EnvStyle    = "CLOCKFACE_STYLE"
	EnvTimeZone = "CLOCKFACE_TZ"
	EnvStdioLog = "CLOCKFACE_STDIO_LOG"
)

var version = "dev"

// SetVersion sets the version printed by --version. main passes the value
// injected with -ldflags.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// CLI holds the state shared by all commands. It is filled in by the root
// command's PersistentPreRunE.
type CLI struct {
	Logger app.Logger

	stderr io.Writer

	debug    bool
	logFile  string
	styleRef string
	tz       string

	style    face.StyleConfig
	location *time.Location
	closeLog func() error
}

// New returns a CLI that logs to w until a log file is configured.
func New(w io.Writer) *CLI {
	return &CLI{Logger: app.NoopLogger{}, stderr: w, style: face.DefaultStyle()}
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:               appName,
		Short:             "clockface draws an analog clock face",
		Long:              `clockface draws an analog clock face on a Linux framebuffer, serves a live preview over HTTP and renders snapshots to PNG or SVG.`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.closeLog != nil {
				return c.closeLog()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.BoolVarP(&c.debug, "debug", "d", false, "enable debug logging")
	flags.StringVar(&c.logFile, "log-file", "", "append logs to this file instead of stderr")
	flags.StringVarP(&c.styleRef, "style", "s", os.Getenv(EnvStyle), "style preset name or .yaml/.toml file; also configurable via "+EnvStyle)
	flags.StringVar(&c.tz, "tz", os.Getenv(EnvTimeZone), "IANA time zone of the face (default local); also configurable via "+EnvTimeZone)

	root.AddCommand(c.runCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.snapshotCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.styleCommand())

	return root
}

func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.logFile != "" {
		f, err := os.OpenFile(c.logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		c.closeLog = f.Close
		c.Logger = app.NewFileLogger(f)
	} else {
		c.Logger = app.NewLogger(c.stderr, c.debug)
	}

	st, issues, err := style.Load(c.styleRef)
	if err != nil {
		return fmt.Errorf("load style: %w", err)
	}
	for _, issue := range issues {
		c.Logger.Infof("style", "%s", issue)
	}
	c.style = st

	if c.tz != "" {
		loc, err := time.LoadLocation(c.tz)
		if err != nil {
			return fmt.Errorf("time zone %q: %w", c.tz, err)
		}
		c.location = loc
	}
	return nil
}

func (c *CLI) now() time.Time {
	if c.location != nil {
		return time.Now().In(c.location)
	}
	return time.Now()
}

// Execute runs the clockface CLI until the command finishes or ctx ends.
func Execute(ctx context.Context) error {
	return New(os.Stderr).RootCommand().ExecuteContext(ctx)
}
