//go:build unix

package terminal

import (
	"bufio"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const pollTimeoutMs = 50

// ansiSurface drives the terminal with raw CSI sequences
type ansiSurface struct {
	in    *os.File
	out   *os.File
	inFd  int
	outFd int
	w     *bufio.Writer

	oldTerm *term.State

	commands chan Command
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu        sync.Mutex
	started   bool
	finalized bool
}

// NewANSI creates a raw-mode surface over the given terminal files
func NewANSI(in, out *os.File) Surface {
	return &ansiSurface{
		in:       in,
		out:      out,
		inFd:     int(in.Fd()),
		outFd:    int(out.Fd()),
		w:        bufio.NewWriterSize(out, 16384),
		commands: make(chan Command, 64),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

func (s *ansiSurface) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if !term.IsTerminal(s.inFd) {
		return fmt.Errorf("stdin is not a terminal")
	}

	old, err := term.MakeRaw(s.inFd)
	if err != nil {
		return err
	}
	s.oldTerm = old

	s.w.Write(csiAltScreenEnter)
	s.w.Write(csiCursorHide)
	s.w.Write(csiAutoWrapOff)
	s.w.Write(csiClear)
	s.w.Flush()

	go s.readLoop()
	s.started = true
	return nil
}

func (s *ansiSurface) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.finalized {
		return
	}
	close(s.stopCh)
	<-s.doneCh

	s.w.Write(csiSGR0)
	s.w.Write(csiCursorShow)
	s.w.Write(csiAltScreenExit)
	s.w.Write(csiAutoWrapOn)
	s.w.Flush()

	if s.oldTerm != nil {
		term.Restore(s.inFd, s.oldTerm)
	}
	s.finalized = true
}

func (s *ansiSurface) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(s.outFd, unix.TIOCGWINSZ)
	if err != nil {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

func (s *ansiSurface) Emit(col, row int, glyph string) {
	writeCursorPos(s.w, col, row)
	s.w.WriteString(glyph)
}

func (s *ansiSurface) Clear() {
	s.w.Write(csiClear)
}

func (s *ansiSurface) Sync() {
	s.w.Flush()
}

func (s *ansiSurface) PollCommand() Command {
	cmd, ok := <-s.commands
	if !ok {
		return CmdQuit
	}
	return cmd
}

func (s *ansiSurface) Drain() {
	for {
		select {
		case _, ok := <-s.commands:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// readLoop polls stdin so stopCh is honored between reads
func (s *ansiSurface) readLoop() {
	defer close(s.doneCh)
	defer close(s.commands)

	var dec keyDecoder
	buf := make([]byte, 256)
	emit := func(c Command) {
		select {
		case s.commands <- c:
		case <-s.stopCh:
		}
	}

	for {
		select {
		case <-s.stopCh:
			return
		default:
		}

		fds := []unix.PollFd{{Fd: int32(s.inFd), Events: unix.POLLIN}}
		n, err := unix.Poll(fds, pollTimeoutMs)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return
		}
		if n == 0 {
			dec.timeout(emit)
			continue
		}

		rn, err := unix.Read(s.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return
		}
		if rn == 0 {
			// EOF
			return
		}
		dec.feed(buf[:rn], emit)
	}
}
