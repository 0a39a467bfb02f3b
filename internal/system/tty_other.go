//go:build !linux

package system

import "errors"

var errNoVT = errors.New("virtual terminal control requires linux")

func SetGraphicsMode() error { return errNoVT }
func RestoreTextMode() error { return errNoVT }
func HideCursor() error      { return errNoVT }
func ShowCursor() error      { return errNoVT }
