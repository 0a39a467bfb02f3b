package web

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Environment overrides for the preview server.
const (
	EnvListenAddr = "CLOCKFACE_LISTEN"
	EnvDevMode    = "CLOCKFACE_DEV"
)

// ServerConfig is where the preview server listens and whether it answers
// cross-origin requests from a separately served page. `clockface run`
// defaults to :80; `serve` and the simulator default to :8080.
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// DefaultServerConfigFromEnv starts from defaultListenAddr and applies
// CLOCKFACE_LISTEN and CLOCKFACE_DEV. Blank variables count as unset.
func DefaultServerConfigFromEnv(defaultListenAddr string) (ServerConfig, error) {
	cfg := ServerConfig{ListenAddr: defaultListenAddr}
	if addr := env(EnvListenAddr); addr != "" {
		cfg.ListenAddr = addr
	}
	dev, err := envBool(EnvDevMode)
	if err != nil {
		return ServerConfig{}, err
	}
	cfg.DevMode = dev
	return cfg, nil
}

func env(name string) string { return strings.TrimSpace(os.Getenv(name)) }

func envBool(name string) (bool, error) {
	raw := env(name)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean (got %q): %w", name, raw, err)
	}
	return v, nil
}
