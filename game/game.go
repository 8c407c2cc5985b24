// Package game runs one maze session: generation with carve animation,
// player movement and snapshot save/load.
package game

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lixenwraith/mazegen/audio"
	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/render"
	"github.com/lixenwraith/mazegen/status"
	"github.com/lixenwraith/mazegen/store"
	"github.com/lixenwraith/mazegen/terminal"
)

// Message line texts
const (
	MsgFindExit  = "Find the exit."
	MsgCleared   = "Cleared!"
	MsgSaved     = "Maze saved."
	MsgSaveError = "Save failed."
	MsgLoaded    = "Maze loaded."
	MsgNoSave    = "No saved maze."
	MsgCorrupt   = "Saved maze is corrupt."
	MsgLoadError = "Load failed."
)

// Session counter keys
const (
	StatGenerated  = "generated"
	StatMoves      = "moves"
	StatBlocked    = "blocked"
	StatCleared    = "cleared"
	StatSaves      = "saves"
	StatSaveErrors = "save_errors"
	StatLoads      = "loads"
	StatLoadErrors = "load_errors"
)

// Output is the part of a terminal surface a session draws on
type Output interface {
	render.Output
	Clear()
	Drain()
}

type Options struct {
	Width, Height int
	Seed          uint64
	Delay         time.Duration
	Glyphs        render.Glyphs
}

// Game owns the grid and everything that reads or mutates it.
// All methods must be called from a single goroutine.
type Game struct {
	opts  Options
	grid  *maze.Grid
	gen   *maze.Generator
	view  *render.MazeView
	store store.Store
	sound *audio.Player
	out   Output
	stats *status.Counters
}

// New validates the dimensions and wires the session. st and sound may be nil.
func New(opts Options, st store.Store, sound *audio.Player, out Output) (*Game, error) {
	grid, err := maze.New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	g := &Game{
		opts:  opts,
		grid:  grid,
		store: st,
		sound: sound,
		out:   out,
		stats: status.NewCounters(),
	}
	g.view = render.NewMazeView(grid, opts.Glyphs, out)
	g.gen = maze.NewGenerator(maze.GeneratorConfig{
		Seed:    opts.Seed,
		Delay:   opts.Delay,
		OnCarve: g.animate,
	})
	return g, nil
}

func (g *Game) Grid() *maze.Grid {
	return g.grid
}

func (g *Game) View() *render.MazeView {
	return g.view
}

func (g *Game) Stats() *status.Counters {
	return g.stats
}

// Start restores the saved maze or, failing that, generates a new one.
// The maze is fully drawn when Start returns.
func (g *Game) Start(ctx context.Context) error {
	if err := g.restore(ctx); err != nil {
		log.Printf("No snapshot restored: %v", err)
		g.view.Message(loadFailureText(err))
		return g.generate()
	}
	g.view.Message(MsgLoaded)
	return nil
}

// Handle applies one command. It returns false when the session should end.
func (g *Game) Handle(ctx context.Context, cmd terminal.Command) bool {
	switch cmd {
	case terminal.CmdUp:
		g.move(maze.Up)
	case terminal.CmdDown:
		g.move(maze.Down)
	case terminal.CmdLeft:
		g.move(maze.Left)
	case terminal.CmdRight:
		g.move(maze.Right)
	case terminal.CmdSave:
		g.save(ctx)
	case terminal.CmdLoad:
		g.load(ctx)
	case terminal.CmdNew:
		if err := g.generate(); err != nil {
			log.Printf("Generation failed: %v", err)
		}
	case terminal.CmdQuit:
		return false
	}

	// Keys pressed while a move was rendering are discarded, not queued
	if cmd.IsMove() {
		g.out.Drain()
	}
	return true
}

func (g *Game) move(d maze.Direction) {
	res, ok := g.grid.Move(d)
	if !ok {
		g.stats.Inc(StatBlocked)
		return
	}
	g.stats.Inc(StatMoves)
	g.view.RenderCell(res.From, render.Immediate)
	g.view.RenderCell(res.To, render.Immediate)

	if res.AtGoal {
		g.complete()
	}
}

func (g *Game) complete() {
	g.stats.Inc(StatCleared)
	g.view.Message(MsgCleared)
	g.sound.Play(audio.CueGoal)
}

// generate carves a fresh maze over a solid block of wall
func (g *Game) generate() error {
	prevW, prevH := g.grid.Width, g.grid.Height
	if err := g.grid.Initialize(g.opts.Width, g.opts.Height); err != nil {
		return err
	}
	g.rebind(prevW, prevH)
	g.view.RenderMaze()

	start := maze.Point{}
	goal := maze.Point{X: g.grid.Width - 1, Y: g.grid.Height - 1}
	began := time.Now()
	g.gen.Generate(g.grid, start, goal)
	g.stats.Inc(StatGenerated)

	log.Printf("Generated %dx%d maze %s (seed %d, %d passages) in %v",
		g.grid.Width, g.grid.Height, g.grid.ID, g.gen.Seed(), g.grid.Passages(), time.Since(began))

	g.view.RenderMaze()
	if g.grid.Player == g.grid.Goal {
		g.complete()
	} else {
		g.view.Message(MsgFindExit)
	}
	return nil
}

// animate draws both ends of a freshly carved passage
func (g *Game) animate(from, to maze.Point) {
	g.view.RenderCell(from, render.Immediate)
	g.view.RenderCell(to, render.Immediate)
}

func (g *Game) save(ctx context.Context) {
	if g.store == nil {
		g.stats.Inc(StatSaveErrors)
		g.view.Message(MsgSaveError)
		return
	}
	if err := g.store.Save(ctx, g.grid); err != nil {
		log.Printf("Save failed: %v", err)
		g.stats.Inc(StatSaveErrors)
		g.view.Message(MsgSaveError)
		return
	}
	g.stats.Inc(StatSaves)
	log.Printf("Saved maze %s", g.grid.ID)
	g.view.Message(MsgSaved)
	g.sound.Play(audio.CueSaved)
}

// load replaces the current maze with the snapshot; on failure the maze in
// play is kept as is
func (g *Game) load(ctx context.Context) {
	if err := g.restore(ctx); err != nil {
		log.Printf("Load failed: %v", err)
		g.stats.Inc(StatLoadErrors)
		g.view.Message(loadFailureText(err))
		return
	}
	g.stats.Inc(StatLoads)
	g.view.Message(MsgLoaded)
	g.sound.Play(audio.CueLoaded)
}

// restore reads the snapshot into the grid and repaints it
func (g *Game) restore(ctx context.Context) error {
	if g.store == nil {
		return store.ErrNoSnapshot
	}
	prevW, prevH := g.grid.Width, g.grid.Height
	if err := g.store.Load(ctx, g.grid); err != nil {
		return err
	}
	log.Printf("Restored %dx%d maze %s", g.grid.Width, g.grid.Height, g.grid.ID)

	g.rebind(prevW, prevH)
	g.view.RenderMaze()
	return nil
}

// rebind gives the view a blank screen so the next RenderMaze repaints every
// pixel. The terminal is cleared only when the footprint changed.
func (g *Game) rebind(prevW, prevH int) {
	if g.grid.Width != prevW || g.grid.Height != prevH {
		g.out.Clear()
	}
	g.view.Rebind(g.grid)
}

func loadFailureText(err error) string {
	switch {
	case errors.Is(err, store.ErrNoSnapshot):
		return MsgNoSave
	case errors.Is(err, store.ErrCorrupt):
		return MsgCorrupt
	}
	return MsgLoadError
}
