package render

import (
	"fmt"

	"github.com/lixenwraith/mazegen/maze"
)

// Output is the character surface a Screen paints on
type Output interface {
	// Emit writes glyph starting at the given character column and row
	Emit(col, row int, glyph string)

	// Sync pushes emitted glyphs to the device
	Sync()
}

// ColumnsPerUnit is the number of character columns one screen unit spans
const ColumnsPerUnit = 2

// Pixel is one screen unit holding a two-column glyph
type Pixel struct {
	Glyph string
	X, Y  int
	Dirty bool
}

// Screen tracks the glyph assigned to each unit and emits only changes.
// Deferred draws are batched until Flush; immediate draws go out at once.
type Screen struct {
	width, height int
	pixels        []Pixel
	needsFlush    bool
	out           Output
}

// NewScreen creates a blank screen of width x height units
func NewScreen(width, height int, out Output) *Screen {
	s := &Screen{
		width:  width,
		height: height,
		pixels: make([]Pixel, width*height),
		out:    out,
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := &s.pixels[y*width+x]
			p.X = x
			p.Y = y
		}
	}
	return s
}

func (s *Screen) Size() (width, height int) {
	return s.width, s.height
}

// DrawDeferred assigns glyph to p, marking it for the next Flush if it changed
func (s *Screen) DrawDeferred(p maze.Point, glyph string) {
	px := s.pixel(p)
	if px.Glyph == glyph {
		return
	}
	px.Glyph = glyph
	px.Dirty = true
	s.needsFlush = true
}

// Flush emits every dirty pixel in row-major order and clears the marks
func (s *Screen) Flush() {
	if !s.needsFlush {
		return
	}
	for i := range s.pixels {
		px := &s.pixels[i]
		if !px.Dirty {
			continue
		}
		s.out.Emit(px.X*ColumnsPerUnit, px.Y, px.Glyph)
		px.Dirty = false
	}
	s.needsFlush = false
	s.out.Sync()
}

// DrawImmediate assigns and emits glyph regardless of what p held
func (s *Screen) DrawImmediate(p maze.Point, glyph string) {
	px := s.pixel(p)
	px.Glyph = glyph
	px.Dirty = false
	s.out.Emit(px.X*ColumnsPerUnit, px.Y, px.Glyph)
	s.out.Sync()
}

// Glyph returns the glyph currently assigned to p
func (s *Screen) Glyph(p maze.Point) string {
	return s.pixel(p).Glyph
}

// Dirty reports whether p is waiting for a Flush
func (s *Screen) Dirty(p maze.Point) bool {
	return s.pixel(p).Dirty
}

func (s *Screen) NeedsFlush() bool {
	return s.needsFlush
}

func (s *Screen) pixel(p maze.Point) *Pixel {
	if p.X < 0 || p.Y < 0 || p.X >= s.width || p.Y >= s.height {
		panic(fmt.Sprintf("render: point %v outside %dx%d screen", p, s.width, s.height))
	}
	return &s.pixels[p.Y*s.width+p.X]
}
