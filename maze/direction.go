package maze

import (
	"fmt"
	"math/rand/v2"
)

// Direction is a single passage bit. Values are pairwise disjoint so a cell
// mask can hold any combination, and they are stored as-is in snapshots.
type Direction uint8

const (
	Up    Direction = 1 << 0
	Down  Direction = 1 << 1
	Right Direction = 1 << 2
	Left  Direction = 1 << 3
)

// AllDirections is the mask with every passage open
const AllDirections = Up | Down | Right | Left

// Rows grow downward: Up decreases Y, Down increases it
var deltas = [...]Point{
	Up:    {0, -1},
	Down:  {0, 1},
	Right: {1, 0},
	Left:  {-1, 0},
}

// Opposite returns the direction pointing back
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Right:
		return Left
	case Left:
		return Right
	}
	panic(fmt.Sprintf("maze: opposite of invalid direction %d", uint8(d)))
}

// Delta returns the unit offset of one step in d
func (d Direction) Delta() Point {
	if !d.Valid() {
		panic(fmt.Sprintf("maze: delta of invalid direction %d", uint8(d)))
	}
	return deltas[d]
}

// Valid reports whether d is exactly one of the four direction bits
func (d Direction) Valid() bool {
	return d == Up || d == Down || d == Right || d == Left
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Right:
		return "right"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// Shuffle returns the four directions in carving order.
// Each slot i is swapped with a uniformly chosen slot, starting from a fixed
// base order, so a seeded source reproduces the same maze.
func Shuffle(r *rand.Rand) [4]Direction {
	dirs := [4]Direction{Up, Right, Left, Down}
	for i := range dirs {
		j := r.IntN(len(dirs))
		dirs[i], dirs[j] = dirs[j], dirs[i]
	}
	return dirs
}
