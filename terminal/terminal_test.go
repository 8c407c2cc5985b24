package terminal

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazegen/render"
)

func collect(d *keyDecoder, chunks ...string) []Command {
	var got []Command
	for _, c := range chunks {
		d.feed([]byte(c), func(cmd Command) { got = append(got, cmd) })
	}
	return got
}

func TestKeyDecoder(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []Command
	}{
		{"Arrows CSI", []string{"\x1b[A\x1b[B\x1b[C\x1b[D"}, []Command{CmdUp, CmdDown, CmdRight, CmdLeft}},
		{"Arrows SS3", []string{"\x1bOA\x1bOD"}, []Command{CmdUp, CmdLeft}},
		{"Modified arrow", []string{"\x1b[1;5C"}, []Command{CmdRight}},
		{"Split sequence", []string{"\x1b", "[", "B"}, []Command{CmdDown}},
		{"Commands", []string{"slnq"}, []Command{CmdSave, CmdLoad, CmdNew, CmdQuit}},
		{"Uppercase", []string{"SL"}, []Command{CmdSave, CmdLoad}},
		{"Ctrl+C", []string{"\x03"}, []Command{CmdQuit}},
		{"Unmapped", []string{"xyz \r\x1b[5~é"}, nil},
		{"Double escape", []string{"\x1b\x1b[A"}, []Command{CmdQuit, CmdUp}},
		{"Alt key", []string{"\x1bx\x1b[D"}, []Command{CmdLeft}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d keyDecoder
			got := collect(&d, tt.chunks...)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("command %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKeyDecoderTimeout(t *testing.T) {
	var d keyDecoder
	var got []Command
	emit := func(c Command) { got = append(got, c) }

	d.feed([]byte("\x1b"), emit)
	if len(got) != 0 {
		t.Fatalf("lone ESC decoded before timeout: %v", got)
	}
	d.timeout(emit)
	if len(got) != 1 || got[0] != CmdQuit {
		t.Errorf("lone ESC after timeout = %v, want [quit]", got)
	}

	// A partial CSI is dropped, not turned into Escape
	got = nil
	d.feed([]byte("\x1b["), emit)
	d.timeout(emit)
	d.feed([]byte("s"), emit)
	if len(got) != 1 || got[0] != CmdSave {
		t.Errorf("after dropped CSI got %v, want [save]", got)
	}
}

func TestCommandIsMove(t *testing.T) {
	moves := map[Command]bool{
		CmdUp: true, CmdDown: true, CmdLeft: true, CmdRight: true,
		CmdNone: false, CmdSave: false, CmdLoad: false, CmdNew: false, CmdQuit: false,
	}
	for c, want := range moves {
		if c.IsMove() != want {
			t.Errorf("%v.IsMove() = %v", c, !want)
		}
	}
}

func TestWriteCursorPos(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writeCursorPos(w, 0, 0)
	writeCursorPos(w, 41, 126)
	w.Flush()

	if got, want := buf.String(), "\x1b[1;1H\x1b[127;42H"; got != want {
		t.Errorf("cursor sequences %q, want %q", got, want)
	}
}

func TestNewUnknownBackend(t *testing.T) {
	if _, err := New("curses", render.DefaultGlyphs); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func newSimSurface(t *testing.T) (*tcellSurface, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s := newTcellSurface(sim, DefaultPalette(render.DefaultGlyphs))
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(s.Fini)
	return s, sim
}

func TestTcellEmit(t *testing.T) {
	s, sim := newSimSurface(t)

	s.Emit(4, 2, render.DefaultGlyphs.Player)
	s.Sync()

	for i, want := range []rune(render.DefaultGlyphs.Player) {
		r, _, style, _ := sim.GetContent(4+i, 2)
		if r != want {
			t.Errorf("column %d = %q, want %q", 4+i, r, want)
		}
		if style != s.palette[render.DefaultGlyphs.Player] {
			t.Errorf("column %d not painted with the player style", 4+i)
		}
	}
}

func TestTcellPollCommand(t *testing.T) {
	s, sim := newSimSurface(t)

	tests := []struct {
		key  tcell.Key
		r    rune
		want Command
	}{
		{tcell.KeyUp, 0, CmdUp},
		{tcell.KeyLeft, 0, CmdLeft},
		{tcell.KeyRune, 's', CmdSave},
		{tcell.KeyRune, 'x', CmdNone},
		{tcell.KeyEscape, 0, CmdQuit},
	}

	for _, tt := range tests {
		sim.InjectKey(tt.key, tt.r, tcell.ModNone)
		if got := s.PollCommand(); got != tt.want {
			t.Errorf("key %v rune %q = %v, want %v", tt.key, tt.r, got, tt.want)
		}
	}
}

func TestTcellFiniIdempotent(t *testing.T) {
	s, _ := newSimSurface(t)
	s.Fini()
	s.Fini()
	if got := s.PollCommand(); got != CmdQuit {
		t.Errorf("PollCommand after Fini = %v, want quit", got)
	}
}
