//go:build linux

package lirc

import (
	"os"

	"golang.org/x/sys/unix"
)

type fileDevice struct {
	f *os.File
}

func openDevice(path string) (device, error) {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, err
	}
	return &fileDevice{f: f}, nil
}

func (d *fileDevice) Features() (uint32, error) {
	return unix.IoctlGetUint32(int(d.f.Fd()), lircGetFeatures)
}

func (d *fileDevice) SetInt(req uint, value int) error {
	return unix.IoctlSetPointerInt(int(d.f.Fd()), req, value)
}

func (d *fileDevice) Write(p []byte) (int, error) { return d.f.Write(p) }

func (d *fileDevice) Close() error { return d.f.Close() }
