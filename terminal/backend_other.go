//go:build !unix

package terminal

import (
	"errors"
	"os"
)

// NewANSI is unavailable without a unix tty; Init always fails
func NewANSI(in, out *os.File) Surface {
	return unsupportedSurface{}
}

type unsupportedSurface struct{}

func (unsupportedSurface) Init() error {
	return errors.New("terminal: ansi backend requires a unix terminal")
}

func (unsupportedSurface) Fini() {}

func (unsupportedSurface) Size() (int, int) {
	return 80, 24
}

func (unsupportedSurface) Emit(int, int, string) {}

func (unsupportedSurface) Clear() {}

func (unsupportedSurface) Sync() {}

func (unsupportedSurface) PollCommand() Command {
	return CmdQuit
}

func (unsupportedSurface) Drain() {}
