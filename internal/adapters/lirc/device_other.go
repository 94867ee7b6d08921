//go:build !linux

package lirc

import (
	"errors"
	"fmt"
)

func openDevice(path string) (device, error) {
	return nil, fmt.Errorf("open %s: %w", path, errors.ErrUnsupported)
}
