package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/rook-computer/clockface/internal/app"
	"github.com/rook-computer/clockface/internal/face"
	"github.com/rook-computer/clockface/internal/render"
	"github.com/rook-computer/clockface/internal/state"
	"github.com/rook-computer/clockface/internal/style"
	"github.com/rook-computer/clockface/internal/web"
)

type simOpts struct {
	listen    string
	dev       bool
	staticDir string
	styleRef  string
	at        string
	width     int
	height    int
	debug     bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := simOpts{width: 480, height: 480, styleRef: os.Getenv("CLOCKFACE_STYLE")}

	cmd := &cobra.Command{
		Use:          "clockface-sim",
		Short:        "Run the clock face offscreen with simulator controls",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulator(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.listen, "listen", "", "http listen address; also configurable via "+web.EnvListenAddr)
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "enable dev mode; also configurable via "+web.EnvDevMode)
	cmd.Flags().StringVar(&opts.staticDir, "static-dir", "", "serve static UI from this directory (optional); when empty, embedded web UI assets are served")
	cmd.Flags().StringVar(&opts.styleRef, "style", opts.styleRef, "style preset or file")
	cmd.Flags().StringVar(&opts.at, "at", "", "freeze the clock at HH:MM:SS; POST /sim/advance moves it")
	cmd.Flags().IntVar(&opts.width, "width", opts.width, "canvas width")
	cmd.Flags().IntVar(&opts.height, "height", opts.height, "canvas height")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "log every frame")

	return cmd
}

func runSimulator(cmd *cobra.Command, opts *simOpts) error {
	cfg, err := web.DefaultServerConfigFromEnv(":8080")
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		cfg.ListenAddr = opts.listen
	}
	if cmd.Flags().Changed("dev") {
		cfg.DevMode = opts.dev
	}

	logger := app.NewLogger(cmd.ErrOrStderr(), opts.debug)

	st, issues, err := style.Load(opts.styleRef)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		logger.Infof("style", "%s", issue)
	}

	clock, err := simClock(opts.at)
	if err != nil {
		return err
	}

	store := state.NewStore()
	img := render.NewImageRenderer(opts.width, opts.height)
	img.Logger = logger

	a := app.New(store, nil, nil, st)
	a.Logger = logger
	a.Debug = opts.debug
	a.Clock = clock

	control := NewSimControl(a, clock, img)
	rec := render.NewRecorder(control.Renderer(img))
	a.Render = rec

	mux := web.NewDefaultMux(opts.staticDir, web.APIV1Deps{Status: store, Frames: rec, Clock: clock, Logger: logger})
	registerSimEndpoints(mux, control)

	var handler http.Handler = mux
	if cfg.DevMode {
		handler = web.WithDevCORS(handler)
	}
	server := &http.Server{Addr: cfg.ListenAddr, Handler: handler, ReadHeaderTimeout: 5 * time.Second}
	store.UpdateNetwork(state.NetworkInfo{URL: "http://" + displayAddr(cfg.ListenAddr) + "/"})

	ctx := cmd.Context()
	serveErr := make(chan error, 1)
	go func() { serveErr <- server.ListenAndServe() }()

	fmt.Fprintln(cmd.OutOrStdout(), "clockface simulator listening on", cfg.ListenAddr)
	fmt.Fprintln(cmd.OutOrStdout(), "API: http://"+displayAddr(cfg.ListenAddr)+"/api/v1/")

	go control.Run(ctx)

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// simClock returns the real clock, or a fake one frozen at the given time
// of day today.
func simClock(at string) (clockwork.Clock, error) {
	if at == "" {
		return clockwork.NewRealClock(), nil
	}
	tod, err := face.ParseTimeOfDay(at)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return clockwork.NewFakeClockAt(time.Date(now.Year(), now.Month(), now.Day(), tod.Hour, tod.Minute, tod.Second, 0, now.Location())), nil
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "127.0.0.1" + addr
	}
	if addr == "" {
		return "127.0.0.1:8080"
	}
	return addr
}
