package render

import (
	"github.com/lixenwraith/mazegen/maze"
)

// Glyphs are the two-column tiles a maze is drawn with
type Glyphs struct {
	Wall    string
	Passage string
	Start   string
	Goal    string
	Player  string
}

var DefaultGlyphs = Glyphs{
	Wall:    "██",
	Passage: "  ",
	Start:   "<>",
	Goal:    "[]",
	Player:  "@@",
}

// DrawMode selects between batched and synchronous drawing
type DrawMode uint8

const (
	Deferred DrawMode = iota
	Immediate
)

// MessageWidth is the character capacity of the message line
const MessageWidth = 30

// MazeView maps grid state onto a Screen.
// Cell (x, y) occupies the 2x2 unit block whose top-left is (2x+1, 2y+1);
// row 0 and column 0 form the outer frame.
type MazeView struct {
	grid   *maze.Grid
	glyphs Glyphs
	out    Output
	screen *Screen
}

func NewMazeView(grid *maze.Grid, glyphs Glyphs, out Output) *MazeView {
	v := &MazeView{glyphs: glyphs, out: out}
	v.Rebind(grid)
	return v
}

// Rebind attaches a grid and resizes the screen to fit it.
// The new screen starts blank, so the next RenderMaze repaints everything.
func (v *MazeView) Rebind(grid *maze.Grid) {
	v.grid = grid
	width := 2*grid.Width + 1
	if units := MessageWidth / ColumnsPerUnit; width < units {
		width = units
	}
	// Maze rows, one spacer row, one message row
	height := 2*grid.Height + 3
	v.screen = NewScreen(width, height, v.out)
}

func (v *MazeView) Screen() *Screen {
	return v.screen
}

// RenderCell draws the center of p and its right, bottom and corner units
func (v *MazeView) RenderCell(p maze.Point, mode DrawMode) {
	cell := v.grid.Cell(p)
	x, y := 2*p.X+1, 2*p.Y+1

	v.draw(maze.Point{X: x, Y: y}, v.centerGlyph(p, cell), mode)
	v.draw(maze.Point{X: x + 1, Y: y + 1}, v.glyphs.Wall, mode)
	v.draw(maze.Point{X: x + 1, Y: y}, v.openGlyph(cell, maze.Right), mode)
	v.draw(maze.Point{X: x, Y: y + 1}, v.openGlyph(cell, maze.Down), mode)
}

// RenderMaze draws the frame and every cell deferred, then flushes once
func (v *MazeView) RenderMaze() {
	v.RenderFrame()
	for y := 0; y < v.grid.Height; y++ {
		for x := 0; x < v.grid.Width; x++ {
			v.RenderCell(maze.Point{X: x, Y: y}, Deferred)
		}
	}
	v.screen.Flush()
}

// RenderFrame queues the top row and left column of the outer wall
func (v *MazeView) RenderFrame() {
	for x := 0; x < 2*v.grid.Width+1; x++ {
		v.screen.DrawDeferred(maze.Point{X: x, Y: 0}, v.glyphs.Wall)
	}
	for y := 0; y < 2*v.grid.Height+1; y++ {
		v.screen.DrawDeferred(maze.Point{X: 0, Y: y}, v.glyphs.Wall)
	}
}

// Message replaces the message line below the maze.
// Text beyond MessageWidth characters is cut, shorter text is space padded.
func (v *MazeView) Message(text string) {
	runes := []rune(text)
	row := 2*v.grid.Height + 2
	buf := make([]rune, ColumnsPerUnit)

	for unit := 0; unit < MessageWidth/ColumnsPerUnit; unit++ {
		for i := range buf {
			idx := unit*ColumnsPerUnit + i
			if idx < len(runes) {
				buf[i] = runes[idx]
			} else {
				buf[i] = ' '
			}
		}
		v.screen.DrawImmediate(maze.Point{X: unit, Y: row}, string(buf))
	}
}

// Player outranks goal, goal outranks start, so a player on the goal shows as player
func (v *MazeView) centerGlyph(p maze.Point, cell maze.Cell) string {
	if cell.Directions == 0 {
		return v.glyphs.Wall
	}
	switch p {
	case v.grid.Player:
		return v.glyphs.Player
	case v.grid.Goal:
		return v.glyphs.Goal
	case v.grid.Start:
		return v.glyphs.Start
	}
	return v.glyphs.Passage
}

func (v *MazeView) openGlyph(cell maze.Cell, d maze.Direction) string {
	if cell.Open(d) {
		return v.glyphs.Passage
	}
	return v.glyphs.Wall
}

func (v *MazeView) draw(p maze.Point, glyph string, mode DrawMode) {
	if mode == Immediate {
		v.screen.DrawImmediate(p, glyph)
		return
	}
	v.screen.DrawDeferred(p, glyph)
}
