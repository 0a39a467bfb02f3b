package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/rook-computer/clockface/internal/app"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/state"
	"github.com/rook-computer/clockface/internal/system"
	"github.com/rook-computer/clockface/internal/web"
)

type serverOpts struct {
	listen    string
	dev       bool
	staticDir string
	noWeb     bool
}

func (o *serverOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.listen, "listen", "", "preview server listen address; also configurable via "+web.EnvListenAddr)
	cmd.Flags().BoolVar(&o.dev, "dev", false, "enable permissive CORS; also configurable via "+web.EnvDevMode)
	cmd.Flags().StringVar(&o.staticDir, "static-dir", "", "serve the preview UI from this directory instead of the embedded page")
	cmd.Flags().BoolVar(&o.noWeb, "no-web", false, "do not start the preview server")
}

// config merges the environment defaults with explicitly set flags.
func (o *serverOpts) config(cmd *cobra.Command, defaultListen string) (web.ServerConfig, error) {
	cfg, err := web.DefaultServerConfigFromEnv(defaultListen)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr = o.listen
	}
	if cmd.Flags().Changed("dev") {
		cfg.DevMode = o.dev
	}
	return cfg, nil
}

type runOpts struct {
	serverOpts
	device   string
	overscan int
	stdioLog string
}

func (c *CLI) runCommand() *cobra.Command {
	var opts runOpts

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show the clock on the framebuffer",
		Long:  `Show the clock face on the Linux framebuffer until interrupted or F4 is pressed. The preview server mirrors the screen.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := system.RedirectStdIO(opts.stdioLog); err != nil {
				c.Logger.Errorf("main", "stdio log redirect error: %v", err)
			}
			cfg, err := opts.config(cmd, ":80")
			if err != nil {
				return err
			}
			fb := render.NewFBRenderer()
			fb.Device = opts.device
			fb.Overscan = opts.overscan
			return c.runApp(cmd.Context(), fb, cfg, &opts.serverOpts, true)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&opts.device, "fb", "", "framebuffer device (default /dev/fb0)")
	cmd.Flags().IntVar(&opts.overscan, "overscan", 0, "keep the picture this many pixels away from the screen edges")
	cmd.Flags().StringVar(&opts.stdioLog, "stdio-log", os.Getenv(EnvStdioLog), "redirect stdout and stderr, including panics, to this file; also configurable via "+EnvStdioLog)

	return cmd
}

type serveOpts struct {
	serverOpts
	width  int
	height int
}

func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{width: 480, height: 480}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the clock offscreen behind the preview server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd, ":8080")
			if err != nil {
				return err
			}
			img := render.NewImageRenderer(opts.width, opts.height)
			img.Logger = c.Logger
			return c.runApp(cmd.Context(), img, cfg, &opts.serverOpts, false)
		},
	}

	opts.register(cmd)
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "canvas width in pixels")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "canvas height in pixels")

	return cmd
}

// runApp shows the configured face on renderer until ctx ends.
func (c *CLI) runApp(ctx context.Context, renderer render.Renderer, cfg web.ServerConfig, opts *serverOpts, console bool) error {
	store := state.NewStore()
	rec := render.NewRecorder(renderer)

	a := app.New(store, rec, web.NoopServer{}, c.style)
	a.Logger = c.Logger
	a.Debug = c.debug
	a.Console = console
	a.Location = c.location

	if !opts.noWeb {
		httpServer := web.NewHTTPServer(cfg.ListenAddr, web.APIV1Deps{
			Status:   store,
			Frames:   rec,
			Location: c.location,
		})
		httpServer.DevMode = cfg.DevMode
		httpServer.StaticDir = opts.staticDir
		httpServer.Logger = c.Logger
		a.Web = httpServer
		publishPreviewURL(store, cfg.ListenAddr, c.Logger)
	}

	return a.Start(ctx)
}

func publishPreviewURL(store *state.Store, listenAddr string, logger app.Logger) {
	ip, err := system.LocalIPv4()
	if err != nil {
		logger.Infof("net", "no network address: %v", err)
	}
	url := system.PreviewURL(listenAddr, ip)
	if url == "" {
		return
	}
	store.UpdateNetwork(state.NetworkInfo{URL: url})
	logger.Infof("net", "preview at %s", url)
}
