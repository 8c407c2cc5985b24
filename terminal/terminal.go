package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/mazegen/render"
)

// Command is a decoded key press
type Command uint8

const (
	CmdNone Command = iota
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdSave
	CmdLoad
	CmdNew
	CmdQuit
)

func (c Command) String() string {
	switch c {
	case CmdNone:
		return "none"
	case CmdUp:
		return "up"
	case CmdDown:
		return "down"
	case CmdLeft:
		return "left"
	case CmdRight:
		return "right"
	case CmdSave:
		return "save"
	case CmdLoad:
		return "load"
	case CmdNew:
		return "new"
	case CmdQuit:
		return "quit"
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// IsMove reports whether c is one of the four directional commands
func (c Command) IsMove() bool {
	return c >= CmdUp && c <= CmdRight
}

// commandForRune maps the single-key commands shared by both surfaces
func commandForRune(r rune) Command {
	switch r {
	case 's', 'S':
		return CmdSave
	case 'l', 'L':
		return CmdLoad
	case 'n', 'N':
		return CmdNew
	case 'q', 'Q':
		return CmdQuit
	}
	return CmdNone
}

// Surface is a terminal the game draws on and reads commands from
type Surface interface {
	render.Output

	// Init takes over the terminal. Fini restores it and is safe to call twice.
	Init() error
	Fini()

	// Size returns the terminal dimensions in character cells
	Size() (width, height int)

	// Clear blanks the whole terminal on the next Sync
	Clear()

	// PollCommand blocks for the next key press. Unmapped keys yield CmdNone,
	// a closed input yields CmdQuit.
	PollCommand() Command

	// Drain discards key presses already queued
	Drain()
}

const (
	BackendTcell = "tcell"
	BackendANSI  = "ansi"
)

// New creates the surface for the named backend
func New(backend string, glyphs render.Glyphs) (Surface, error) {
	switch backend {
	case "", BackendTcell:
		return NewTcell(glyphs)
	case BackendANSI:
		return NewANSI(os.Stdin, os.Stdout), nil
	}
	return nil, fmt.Errorf("terminal: unknown backend %q", backend)
}

// EmergencyReset attempts to restore the terminal to a sane state.
// Call this from panic recovery if Fini() cannot be called normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	resetTerminalMode()
}
