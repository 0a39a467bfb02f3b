package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rook-computer/clockface/internal/style"
)

var errStyleIssues = errors.New("style has issues")

type styleOpts struct {
	format string
	strict bool
}

// styleCommand prints a style in normalized form, which is also a handy
// starting point for a custom style file.
func (c *CLI) styleCommand() *cobra.Command {
	opts := styleOpts{format: string(style.FormatYAML)}

	cmd := &cobra.Command{
		Use:   "style [preset-or-file]",
		Short: "Print the normalized attributes of a style",
		Long: `Print every attribute of a style after defaults and clamping are applied.
Without an argument the style selected by --style is printed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := c.styleRef
			if len(args) == 1 {
				ref = args[0]
			}
			st, issues, err := style.Load(ref)
			if err != nil {
				return err
			}
			for _, issue := range issues {
				fmt.Fprintln(cmd.ErrOrStderr(), "issue:", issue)
			}
			if err := writeAttributes(cmd.OutOrStdout(), style.Encode(st), style.Format(opts.format)); err != nil {
				return err
			}
			if opts.strict && len(issues) > 0 {
				return fmt.Errorf("%w: %d", errStyleIssues, len(issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: yaml or toml")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "fail when any attribute was ignored or adjusted")

	return cmd
}

// writeAttributes writes attrs with booleans and numbers unquoted, so the
// output reads like a hand-written style file.
func writeAttributes(w io.Writer, attrs style.Attributes, format style.Format) error {
	m := make(map[string]any, len(attrs))
	for name, v := range attrs {
		m[name] = typedValue(v)
	}
	switch format {
	case style.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case style.FormatTOML:
		return toml.NewEncoder(w).Encode(m)
	}
	return fmt.Errorf("unsupported style format %q", format)
}

func typedValue(v string) any {
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
