//go:build !linux

package system

import "context"

// StartExitOnF4 is a no-op without evdev.
func StartExitOnF4(ctx context.Context, logger logger, onExit func()) {
	if logger != nil {
		logger.Infof("input", "F4 exit unavailable on this platform")
	}
}
