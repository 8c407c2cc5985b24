// Package store persists and restores whole maze grids.
//
// Every backend stores the same fixed-size binary image, so a snapshot
// written by one backend can be read by any other.
package store

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/lixenwraith/mazegen/maze"
)

var (
	// ErrNoSnapshot means nothing has been saved yet
	ErrNoSnapshot = errors.New("store: no saved maze")

	// ErrCorrupt means a stored image could not be decoded
	ErrCorrupt = errors.New("store: corrupt snapshot")
)

// Store saves and restores a grid as one opaque block
type Store interface {
	Save(ctx context.Context, g *maze.Grid) error

	// Load overwrites g with the saved grid. On error g is unchanged.
	Load(ctx context.Context, g *maze.Grid) error
}

const snapshotVersion = 1

var snapshotMagic = [4]byte{'M', 'Z', 'G', 'N'}

type cellImage struct {
	Visited    uint8
	Directions uint8
}

// image is the on-disk layout; all fields are fixed size for encoding/binary
type image struct {
	Magic   [4]byte
	Version uint16
	ID      [16]byte
	Width   int32
	Height  int32
	Start   [2]int32
	Goal    [2]int32
	Player  [2]int32
	Cells   [maze.MaxSize * maze.MaxSize]cellImage
}

// SnapshotSize is the exact byte length of every encoded grid
var SnapshotSize = binary.Size(image{})

// Encode serializes g. Capacity beyond Width x Height is written as zero cells.
func Encode(g *maze.Grid) []byte {
	img := &image{
		Magic:   snapshotMagic,
		Version: snapshotVersion,
		ID:      g.ID,
		Width:   int32(g.Width),
		Height:  int32(g.Height),
		Start:   pointImage(g.Start),
		Goal:    pointImage(g.Goal),
		Player:  pointImage(g.Player),
	}
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			c := g.Cell(maze.Point{X: x, Y: y})
			ci := &img.Cells[y*maze.MaxSize+x]
			if c.Visited {
				ci.Visited = 1
			}
			ci.Directions = uint8(c.Directions)
		}
	}

	var buf bytes.Buffer
	buf.Grow(SnapshotSize)
	// Writes to a bytes.Buffer of a fixed-size value cannot fail
	_ = binary.Write(&buf, binary.LittleEndian, img)
	return buf.Bytes()
}

// Decode restores data into g. g is only written once the whole image validates.
func Decode(data []byte, g *maze.Grid) error {
	if len(data) != SnapshotSize {
		return fmt.Errorf("%w: %d bytes, want %d", ErrCorrupt, len(data), SnapshotSize)
	}

	img := &image{}
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, img); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if img.Magic != snapshotMagic {
		return fmt.Errorf("%w: bad magic %q", ErrCorrupt, img.Magic[:])
	}
	if img.Version != snapshotVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrCorrupt, img.Version)
	}

	restored, err := maze.New(int(img.Width), int(img.Height))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	restored.ID = img.ID

	markers := []struct {
		name string
		src  [2]int32
		dst  *maze.Point
	}{
		{"start", img.Start, &restored.Start},
		{"goal", img.Goal, &restored.Goal},
		{"player", img.Player, &restored.Player},
	}
	for _, m := range markers {
		p := maze.Point{X: int(m.src[0]), Y: int(m.src[1])}
		if !restored.InBounds(p) {
			return fmt.Errorf("%w: %s %v outside %dx%d", ErrCorrupt, m.name, p, restored.Width, restored.Height)
		}
		*m.dst = p
	}

	for y := 0; y < restored.Height; y++ {
		for x := 0; x < restored.Width; x++ {
			ci := img.Cells[y*maze.MaxSize+x]
			if ci.Visited > 1 || maze.Direction(ci.Directions)&^maze.AllDirections != 0 {
				return fmt.Errorf("%w: cell (%d,%d) holds %+v", ErrCorrupt, x, y, ci)
			}
			restored.SetCell(maze.Point{X: x, Y: y}, maze.Cell{
				Visited:    ci.Visited == 1,
				Directions: maze.Direction(ci.Directions),
			})
		}
	}

	if err := checkPassages(restored); err != nil {
		return err
	}

	*g = *restored
	return nil
}

// checkPassages rejects passages that leave the grid or lack the matching
// bit on the neighbor
func checkPassages(g *maze.Grid) error {
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			p := maze.Point{X: x, Y: y}
			cell := g.Cell(p)
			for _, d := range [4]maze.Direction{maze.Up, maze.Down, maze.Right, maze.Left} {
				if !cell.Open(d) {
					continue
				}
				next := p.Add(d.Delta())
				if !g.InBounds(next) {
					return fmt.Errorf("%w: cell %v opens %v off the grid", ErrCorrupt, p, d)
				}
				if !g.Cell(next).Open(d.Opposite()) {
					return fmt.Errorf("%w: cell %v opens %v but %v has no way back", ErrCorrupt, p, d, next)
				}
			}
		}
	}
	return nil
}

func pointImage(p maze.Point) [2]int32 {
	return [2]int32{int32(p.X), int32(p.Y)}
}
