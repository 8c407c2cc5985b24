package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lixenwraith/mazegen/maze"
	"github.com/lixenwraith/mazegen/render"
	"github.com/lixenwraith/mazegen/store"
)

func main() {
	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Println("\n=== PERFECT MAZE GENERATOR ===")

		w := getInt(reader, fmt.Sprintf("Width [1-%d] (default 20): ", maze.MaxSize), 20)
		h := getInt(reader, fmt.Sprintf("Height [1-%d] (default 12): ", maze.MaxSize), 12)
		seed := getUint(reader, "Seed [0 = random] (default 0): ", 0)

		grid, err := maze.New(w, h)
		if err != nil {
			fmt.Printf("Invalid size: %v\n", err)
			continue
		}

		gen := maze.NewGenerator(maze.GeneratorConfig{Seed: seed})

		fmt.Println("\nGenerating...")
		startT := time.Now()
		gen.Generate(grid, maze.Point{}, maze.Point{X: w - 1, Y: h - 1})
		dur := time.Since(startT)

		fmt.Printf("Done in %v\n", dur)
		fmt.Printf("Maze %s, seed %d\n", grid.ID, gen.Seed())
		fmt.Printf("Passages: %d, reachable cells: %d of %d\n", grid.Passages(), grid.Reachable(grid.Start), w*h)

		canvas := &render.TextCanvas{}
		render.NewMazeView(grid, render.DefaultGlyphs, canvas).RenderMaze()
		fmt.Print(canvas.String())

		fmt.Printf("\nSave snapshot to %s? [y/N]: ", store.DefaultFileName)
		if yes(reader) {
			fs := store.NewFileStore(store.DefaultFileName)
			if err := fs.Save(context.Background(), grid); err != nil {
				fmt.Printf("Save failed: %v\n", err)
			} else {
				fmt.Printf("Saved %s\n", fs.Path())
			}
		}

		fmt.Print("\nGenerate another? [Y/n]: ")
		cont, err := reader.ReadString('\n')
		if err != nil || strings.ToLower(strings.TrimSpace(cont)) == "n" {
			break
		}
	}
}

// --- Input Helpers ---

func getInt(r *bufio.Reader, prompt string, def int) int {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

func getUint(r *bufio.Reader, prompt string, def uint64) uint64 {
	fmt.Print(prompt)
	s, _ := r.ReadString('\n')
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return def
	}
	return v
}

func yes(r *bufio.Reader) bool {
	s, _ := r.ReadString('\n')
	return strings.ToLower(strings.TrimSpace(s)) == "y"
}
