package terminal

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazegen/render"
)

// Palette maps glyphs to the tcell style they are painted with
type Palette map[string]tcell.Style

// DefaultPalette colors the markers so they stand out from the walls
func DefaultPalette(g render.Glyphs) Palette {
	return Palette{
		g.Wall:   tcell.StyleDefault.Foreground(tcell.ColorGray),
		g.Start:  tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true),
		g.Goal:   tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
		g.Player: tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true),
	}
}

type tcellSurface struct {
	screen  tcell.Screen
	palette Palette

	events chan tcell.Event
	stopCh chan struct{}

	mu        sync.Mutex
	started   bool
	finalized bool
}

// NewTcell creates a surface on the controlling terminal
func NewTcell(glyphs render.Glyphs) (Surface, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTcellSurface(screen, DefaultPalette(glyphs)), nil
}

func newTcellSurface(screen tcell.Screen, palette Palette) *tcellSurface {
	return &tcellSurface{
		screen:  screen,
		palette: palette,
		events:  make(chan tcell.Event, 64),
		stopCh:  make(chan struct{}),
	}
}

func (s *tcellSurface) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if err := s.screen.Init(); err != nil {
		return err
	}
	s.screen.HideCursor()
	s.screen.Clear()
	s.screen.Show()

	// Input polling uses a raw goroutine so Drain can inspect what is queued
	go s.pump()
	s.started = true
	return nil
}

func (s *tcellSurface) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.finalized {
		return
	}
	close(s.stopCh)
	s.screen.Fini()
	s.finalized = true
}

func (s *tcellSurface) pump() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case s.events <- ev:
		case <-s.stopCh:
			return
		}
	}
}

func (s *tcellSurface) Size() (int, int) {
	return s.screen.Size()
}

func (s *tcellSurface) Emit(col, row int, glyph string) {
	style, ok := s.palette[glyph]
	if !ok {
		style = tcell.StyleDefault
	}
	x := col
	for _, r := range glyph {
		s.screen.SetContent(x, row, r, nil, style)
		x++
	}
}

func (s *tcellSurface) Clear() {
	s.screen.Clear()
}

func (s *tcellSurface) Sync() {
	s.screen.Show()
}

func (s *tcellSurface) PollCommand() Command {
	for ev := range s.events {
		switch ev := ev.(type) {
		case *tcell.EventKey:
			return tcellCommand(ev)
		case *tcell.EventResize:
			s.screen.Sync()
		}
	}
	return CmdQuit
}

func (s *tcellSurface) Drain() {
	for {
		select {
		case _, ok := <-s.events:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func tcellCommand(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyUp:
		return CmdUp
	case tcell.KeyDown:
		return CmdDown
	case tcell.KeyLeft:
		return CmdLeft
	case tcell.KeyRight:
		return CmdRight
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyRune:
		return commandForRune(ev.Rune())
	}
	return CmdNone
}
