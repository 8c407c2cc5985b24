// Package terminal provides the character surfaces the maze is drawn on and
// decodes key presses into game commands.
//
// Two surfaces exist:
//   - tcell (default): terminfo-aware output with styled glyphs
//   - ansi: raw mode and direct CSI cursor positioning, no terminfo lookup
//
// Both satisfy render.Output, so the render package never sees which one runs.
package terminal
