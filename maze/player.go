package maze

// MoveResult describes an applied player move
type MoveResult struct {
	From, To Point
	AtGoal   bool
}

// CanMove reports whether a passage in d leads out of origin.
// Both sides of the passage are checked, not only origin's mask.
func (g *Grid) CanMove(origin Point, d Direction) bool {
	if !g.at(origin).Open(d) {
		return false
	}
	next := origin.Add(d.Delta())
	if !g.InBounds(next) {
		return false
	}
	return g.at(next).Open(d.Opposite())
}

// Move steps the player in d. Blocked moves leave the grid untouched and
// return false. Reaching the goal does not stop further movement.
func (g *Grid) Move(d Direction) (MoveResult, bool) {
	origin := g.Player
	if !g.CanMove(origin, d) {
		return MoveResult{}, false
	}
	g.Player = origin.Add(d.Delta())
	return MoveResult{
		From:   origin,
		To:     g.Player,
		AtGoal: g.Player == g.Goal,
	}, true
}
