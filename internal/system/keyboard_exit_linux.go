//go:build linux

package system

import (
	"context"
	"encoding/binary"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

const (
	evKey    = 0x01
	keyF4    = 62 // input-event-codes.h
	keyPress = 1
)

// keyEvent is the part of struct input_event the watcher looks at.
type keyEvent struct {
	typ   uint16
	code  uint16
	value int32
}

// inputEventLayout is the size of struct input_event and the offset of its
// type field, which follows the timeval.
func inputEventLayout() (size, typeOffset int) {
	tv := binary.Size(unix.Timeval{})
	return tv + 2 + 2 + 4, tv
}

// decodeEvents splits buf into input events. A trailing partial record is
// ignored.
func decodeEvents(buf []byte, size, typeOffset int) []keyEvent {
	var out []keyEvent
	for off := 0; off+size <= len(buf); off += size {
		rec := buf[off+typeOffset : off+size]
		out = append(out, keyEvent{
			typ:   binary.LittleEndian.Uint16(rec[0:2]),
			code:  binary.LittleEndian.Uint16(rec[2:4]),
			value: int32(binary.LittleEndian.Uint32(rec[4:8])),
		})
	}
	return out
}

// StartExitOnF4 watches the evdev devices under /dev/input and calls onExit
// once when F4 goes down. Without input devices it logs and returns.
func StartExitOnF4(ctx context.Context, logger logger, onExit func()) {
	if onExit == nil {
		return
	}

	paths, err := filepath.Glob("/dev/input/event*")
	if err != nil || len(paths) == 0 {
		if logger != nil {
			logger.Infof("input", "no evdev devices, F4 exit disabled")
		}
		return
	}

	var once sync.Once
	pressed := func() {
		once.Do(func() {
			if logger != nil {
				logger.Infof("input", "F4 pressed, leaving clock face")
			}
			onExit()
		})
	}
	for _, path := range paths {
		go watchKey(ctx, path, keyF4, pressed)
	}
}

// watchKey polls one device until ctx ends, the device fails or the key is
// pressed.
func watchKey(ctx context.Context, path string, key uint16, pressed func()) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	defer unix.Close(fd)

	size, typeOffset := inputEventLayout()
	buf := make([]byte, 64*size)
	for ctx.Err() == nil {
		fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(fds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if fds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, ev := range decodeEvents(buf[:n], size, typeOffset) {
			if ev.typ == evKey && ev.code == key && ev.value == keyPress {
				pressed()
				return
			}
		}
	}
}
