//go:build !unix

package system

import "os"

// RedirectStdIO swaps the os.Stdout and os.Stderr files. Runtime panics
// still reach the original stderr.
func RedirectStdIO(path string) error {
	if path == "" {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	os.Stdout = f
	os.Stderr = f
	return nil
}
