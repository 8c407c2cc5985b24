package maze

import (
	"math/rand/v2"
	"time"
)

type GeneratorConfig struct {
	Seed uint64 // Optional (0 = Random)

	// Delay is slept after every carve step, for animation pacing only
	Delay time.Duration

	// OnCarve is called after each passage is opened between from and to
	OnCarve func(from, to Point)
}

// Generator carves perfect mazes with a randomized depth-first backtracker.
// The random source lives for the lifetime of the generator, so successive
// mazes from one generator differ while a fixed seed reproduces the sequence.
type Generator struct {
	cfg   GeneratorConfig
	seed  uint64
	rng   *rand.Rand
	sleep func(time.Duration)
}

func NewGenerator(cfg GeneratorConfig) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		cfg:   cfg,
		seed:  seed,
		rng:   rand.New(rand.NewPCG(seed, 0)),
		sleep: time.Sleep,
	}
}

// Seed returns the seed actually in use
func (g *Generator) Seed() uint64 {
	return g.seed
}

// Generate places the markers and carves the whole grid from start
func (g *Generator) Generate(grid *Grid, start, goal Point) {
	grid.Start = start
	grid.Goal = goal
	grid.Player = start
	g.Carve(grid, start)
}

// frame is one level of the depth-first walk
type frame struct {
	at    Point
	order [4]Direction
	next  int
}

// Carve opens passages depth-first from origin until every reachable
// unvisited cell has been entered. Each entered cell gets a fresh shuffle,
// and a branch is fully explored before its parent tries the next direction.
func (g *Generator) Carve(grid *Grid, origin Point) {
	stack := []frame{{at: origin, order: Shuffle(g.rng)}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.order) {
			// Dead end, backtrack
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.order[top.next]
		top.next++
		from := top.at

		if !canGoThrough(grid, from, d) {
			continue
		}
		to := goThrough(grid, from, d)

		if g.cfg.Delay > 0 {
			g.sleep(g.cfg.Delay)
		}
		if g.cfg.OnCarve != nil {
			g.cfg.OnCarve(from, to)
		}

		stack = append(stack, frame{at: to, order: Shuffle(g.rng)})
	}
}

// canGoThrough reports whether the neighbor in d is in bounds and unvisited
func canGoThrough(grid *Grid, origin Point, d Direction) bool {
	next := origin.Add(d.Delta())
	if !grid.InBounds(next) {
		return false
	}
	return !grid.at(next).Visited
}

// goThrough is the only place passages are opened; both sides are set together
func goThrough(grid *Grid, origin Point, d Direction) Point {
	next := origin.Add(d.Delta())

	from := grid.at(origin)
	from.Visited = true
	from.Directions |= d

	to := grid.at(next)
	to.Visited = true
	to.Directions |= d.Opposite()

	return next
}
