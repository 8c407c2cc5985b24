package maze

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// MaxSize bounds both grid dimensions; cell storage is allocated at this size
const MaxSize = 100

// ErrSize is returned for dimensions outside [1, MaxSize]
var ErrSize = errors.New("maze: size out of range")

type Point struct {
	X, Y int
}

func (p Point) Add(o Point) Point {
	return Point{p.X + o.X, p.Y + o.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cell holds the carving state of one grid position.
// A zero Directions mask means the cell is solid wall.
type Cell struct {
	Visited    bool
	Directions Direction
}

// Open reports whether the passage in d is carved
func (c Cell) Open(d Direction) bool {
	return c.Directions&d != 0
}

// Grid is a fixed-capacity maze with start, goal and player markers.
// Only the Width x Height corner of the backing array is in use.
type Grid struct {
	ID     uuid.UUID
	Width  int
	Height int

	Start  Point
	Goal   Point
	Player Point

	cells [MaxSize][MaxSize]Cell
}

// New allocates a grid and initializes it to width x height
func New(width, height int) (*Grid, error) {
	g := &Grid{}
	if err := g.Initialize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Initialize zero-fills every cell and resets markers to the origin.
// On a size error the grid is left as it was.
func (g *Grid) Initialize(width, height int) error {
	if err := CheckSize(width, height); err != nil {
		return err
	}
	g.cells = [MaxSize][MaxSize]Cell{}
	g.Width = width
	g.Height = height
	g.Start = Point{}
	g.Goal = Point{}
	g.Player = Point{}
	g.ID = uuid.New()
	return nil
}

// CheckSize validates dimensions against the fixed capacity
func CheckSize(width, height int) error {
	if width < 1 || height < 1 || width > MaxSize || height > MaxSize {
		return fmt.Errorf("%w: %dx%d (max %dx%d)", ErrSize, width, height, MaxSize, MaxSize)
	}
	return nil
}

func (g *Grid) InBounds(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// Cell returns the cell at p; p must be in bounds
func (g *Grid) Cell(p Point) Cell {
	return *g.at(p)
}

// SetCell overwrites the cell at p; p must be in bounds
func (g *Grid) SetCell(p Point, c Cell) {
	*g.at(p) = c
}

func (g *Grid) at(p Point) *Cell {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("maze: point %v outside %dx%d grid", p, g.Width, g.Height))
	}
	return &g.cells[p.Y][p.X]
}

// Passages counts carved passages, each shared pair counted once
func (g *Grid) Passages() int {
	n := 0
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.cells[y][x]
			// Right and Down only, so each pair is seen from one side
			if c.Open(Right) {
				n++
			}
			if c.Open(Down) {
				n++
			}
		}
	}
	return n
}

// Reachable counts cells connected to from through passages open on both sides
func (g *Grid) Reachable(from Point) int {
	if !g.InBounds(from) {
		return 0
	}
	var seen [MaxSize][MaxSize]bool
	stack := []Point{from}
	seen[from.Y][from.X] = true
	count := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		count++

		for _, d := range [4]Direction{Up, Down, Right, Left} {
			if !g.CanMove(p, d) {
				continue
			}
			n := p.Add(d.Delta())
			if seen[n.Y][n.X] {
				continue
			}
			seen[n.Y][n.X] = true
			stack = append(stack, n)
		}
	}
	return count
}
