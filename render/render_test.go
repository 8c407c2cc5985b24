package render

import (
	"strings"
	"testing"

	"github.com/lixenwraith/mazegen/maze"
)

type emit struct {
	col, row int
	glyph    string
}

// recorder is an Output that remembers everything written to it
type recorder struct {
	emits []emit
	syncs int
}

func (r *recorder) Emit(col, row int, glyph string) {
	r.emits = append(r.emits, emit{col, row, glyph})
}

func (r *recorder) Sync() {
	r.syncs++
}

func (r *recorder) reset() {
	r.emits = nil
	r.syncs = 0
}

func TestDrawDeferredIdempotent(t *testing.T) {
	out := &recorder{}
	s := NewScreen(4, 3, out)
	p := maze.Point{X: 2, Y: 1}

	s.DrawDeferred(p, "##")
	if !s.Dirty(p) || !s.NeedsFlush() {
		t.Fatal("first draw did not mark the pixel")
	}

	s.Flush()
	if len(out.emits) != 1 {
		t.Fatalf("flush emitted %d glyphs, want 1", len(out.emits))
	}

	s.DrawDeferred(p, "##")
	if s.Dirty(p) || s.NeedsFlush() {
		t.Error("identical draw marked the pixel again")
	}

	out.reset()
	s.Flush()
	if len(out.emits) != 0 || out.syncs != 0 {
		t.Errorf("clean flush emitted %d glyphs and %d syncs", len(out.emits), out.syncs)
	}
}

func TestFlushEmitsOnlyChanges(t *testing.T) {
	out := &recorder{}
	s := NewScreen(5, 5, out)

	s.DrawDeferred(maze.Point{X: 0, Y: 0}, "aa")
	s.DrawDeferred(maze.Point{X: 3, Y: 2}, "bb")
	s.DrawDeferred(maze.Point{X: 1, Y: 4}, "cc")
	s.Flush()

	want := []emit{{0, 0, "aa"}, {6, 2, "bb"}, {2, 4, "cc"}}
	if len(out.emits) != len(want) {
		t.Fatalf("got %d emits, want %d", len(out.emits), len(want))
	}
	for i, e := range want {
		if out.emits[i] != e {
			t.Errorf("emit %d = %+v, want %+v", i, out.emits[i], e)
		}
	}
	if out.syncs != 1 {
		t.Errorf("flush synced %d times, want 1", out.syncs)
	}

	out.reset()
	s.DrawDeferred(maze.Point{X: 0, Y: 0}, "aa")
	s.DrawDeferred(maze.Point{X: 3, Y: 2}, "dd")
	s.Flush()
	if len(out.emits) != 1 || out.emits[0] != (emit{6, 2, "dd"}) {
		t.Errorf("second flush emitted %+v", out.emits)
	}
}

func TestDrawImmediateAlwaysEmits(t *testing.T) {
	out := &recorder{}
	s := NewScreen(3, 3, out)
	p := maze.Point{X: 1, Y: 1}

	s.DrawImmediate(p, "xx")
	s.DrawImmediate(p, "xx")
	if len(out.emits) != 2 || out.syncs != 2 {
		t.Errorf("immediate draws: %d emits %d syncs, want 2 and 2", len(out.emits), out.syncs)
	}
	if s.Glyph(p) != "xx" {
		t.Errorf("glyph = %q", s.Glyph(p))
	}

	// Immediate output satisfies a pending deferred mark
	s.DrawDeferred(p, "yy")
	s.DrawImmediate(p, "zz")
	out.reset()
	s.Flush()
	if len(out.emits) != 0 {
		t.Errorf("flush re-emitted an immediately drawn pixel: %+v", out.emits)
	}
}

func TestScreenOutOfBoundsPanics(t *testing.T) {
	s := NewScreen(2, 2, &recorder{})
	for _, p := range []maze.Point{{X: -1, Y: 0}, {X: 2, Y: 0}, {X: 0, Y: 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("draw at %v did not panic", p)
				}
			}()
			s.DrawDeferred(p, "..")
		}()
	}
}

func generated(t *testing.T, w, h int, seed uint64) *maze.Grid {
	t.Helper()
	g, err := maze.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	maze.NewGenerator(maze.GeneratorConfig{Seed: seed}).Generate(g, maze.Point{}, maze.Point{X: w - 1, Y: h - 1})
	return g
}

func TestRenderMazeLayout(t *testing.T) {
	g := generated(t, 2, 1, 1)
	out := &recorder{}
	v := NewMazeView(g, DefaultGlyphs, out)
	v.RenderMaze()

	wall, road := DefaultGlyphs.Wall, DefaultGlyphs.Passage
	rows := [][]string{
		{wall, wall, wall, wall, wall},
		{wall, DefaultGlyphs.Player, road, DefaultGlyphs.Goal, wall},
		{wall, wall, wall, wall, wall},
	}
	s := v.Screen()
	for y, row := range rows {
		for x, want := range row {
			if got := s.Glyph(maze.Point{X: x, Y: y}); got != want {
				t.Errorf("unit (%d,%d) = %q, want %q", x, y, got, want)
			}
		}
	}
	if out.syncs != 1 {
		t.Errorf("RenderMaze synced %d times, want 1", out.syncs)
	}

	out.reset()
	v.RenderMaze()
	if len(out.emits) != 0 {
		t.Errorf("unchanged maze re-emitted %d glyphs", len(out.emits))
	}
}

func TestRenderCellPriority(t *testing.T) {
	g := generated(t, 3, 1, 4)
	v := NewMazeView(g, DefaultGlyphs, &recorder{})
	center := func(x int) string { return v.Screen().Glyph(maze.Point{X: 2*x + 1, Y: 1}) }

	g.Start = maze.Point{X: 0}
	g.Goal = maze.Point{X: 2}
	g.Player = maze.Point{X: 1}
	v.RenderMaze()
	if center(0) != DefaultGlyphs.Start || center(1) != DefaultGlyphs.Player || center(2) != DefaultGlyphs.Goal {
		t.Errorf("centers %q %q %q", center(0), center(1), center(2))
	}

	g.Player = g.Goal
	v.RenderCell(maze.Point{X: 2}, Immediate)
	if center(2) != DefaultGlyphs.Player {
		t.Errorf("player on goal drawn as %q", center(2))
	}

	g.Goal = g.Start
	g.Player = maze.Point{X: 1}
	v.RenderCell(maze.Point{X: 0}, Immediate)
	if center(0) != DefaultGlyphs.Goal {
		t.Errorf("goal on start drawn as %q", center(0))
	}
}

func TestRenderClosedCellIsWall(t *testing.T) {
	g, _ := maze.New(1, 1)
	v := NewMazeView(g, DefaultGlyphs, &recorder{})
	v.RenderMaze()
	if got := v.Screen().Glyph(maze.Point{X: 1, Y: 1}); got != DefaultGlyphs.Wall {
		t.Errorf("closed cell drawn as %q", got)
	}
}

func TestRenderCellImmediate(t *testing.T) {
	g := generated(t, 2, 2, 8)
	out := &recorder{}
	v := NewMazeView(g, DefaultGlyphs, out)
	v.RenderMaze()

	out.reset()
	v.RenderCell(maze.Point{X: 1, Y: 1}, Immediate)
	if len(out.emits) != 4 || out.syncs != 4 {
		t.Errorf("immediate cell: %d emits %d syncs, want 4 and 4", len(out.emits), out.syncs)
	}
	if v.Screen().NeedsFlush() {
		t.Error("immediate draw left a pending flush")
	}
}

func TestMessagePadAndTruncate(t *testing.T) {
	g := generated(t, 2, 2, 2)
	out := &recorder{}
	v := NewMazeView(g, DefaultGlyphs, out)
	row := 2*g.Height + 2

	tests := []struct {
		name, text, want string
	}{
		{"Short", "Hi!", "Hi!" + strings.Repeat(" ", MessageWidth-3)},
		{"Empty", "", strings.Repeat(" ", MessageWidth)},
		{"Long", strings.Repeat("x", 40), strings.Repeat("x", MessageWidth)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.reset()
			v.Message(tt.text)

			var line strings.Builder
			for i, e := range out.emits {
				if e.row != row || e.col != i*ColumnsPerUnit {
					t.Fatalf("emit %d at (%d,%d)", i, e.col, e.row)
				}
				line.WriteString(e.glyph)
			}
			if line.String() != tt.want {
				t.Errorf("message line %q, want %q", line.String(), tt.want)
			}
		})
	}
}

func TestRebindResizes(t *testing.T) {
	v := NewMazeView(generated(t, 2, 2, 1), DefaultGlyphs, &recorder{})
	v.Rebind(generated(t, 20, 12, 1))
	w, h := v.Screen().Size()
	if w != 41 || h != 27 {
		t.Errorf("screen %dx%d after rebind, want 41x27", w, h)
	}
}

func TestTextCanvas(t *testing.T) {
	grid, err := maze.New(2, 1)
	if err != nil {
		t.Fatal(err)
	}
	grid.SetCell(maze.Point{X: 0, Y: 0}, maze.Cell{Visited: true, Directions: maze.Right})
	grid.SetCell(maze.Point{X: 1, Y: 0}, maze.Cell{Visited: true, Directions: maze.Left})
	grid.Goal = maze.Point{X: 1, Y: 0}

	canvas := &TextCanvas{}
	NewMazeView(grid, DefaultGlyphs, canvas).RenderMaze()

	want := "██████████\n" +
		"██@@  []██\n" +
		"██████████\n"
	if got := canvas.String(); got != want {
		t.Errorf("canvas:\n%s\nwant:\n%s", got, want)
	}
	if canvas.syncs != 1 {
		t.Errorf("syncs = %d, want 1", canvas.syncs)
	}
}
