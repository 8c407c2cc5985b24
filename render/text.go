package render

import (
	"strings"
)

// TextCanvas is an Output that records emitted glyphs into lines of text,
// for printing a maze outside a terminal session
type TextCanvas struct {
	lines [][]rune
	syncs int
}

func (c *TextCanvas) Emit(col, row int, glyph string) {
	for len(c.lines) <= row {
		c.lines = append(c.lines, nil)
	}
	line := c.lines[row]
	for _, r := range glyph {
		for len(line) <= col {
			line = append(line, ' ')
		}
		line[col] = r
		col++
	}
	c.lines[row] = line
}

func (c *TextCanvas) Sync() {
	c.syncs++
}

// String returns the canvas with trailing blanks and empty rows removed
func (c *TextCanvas) String() string {
	var b strings.Builder
	last := len(c.lines) - 1
	for last >= 0 && strings.TrimSpace(string(c.lines[last])) == "" {
		last--
	}
	for i := 0; i <= last; i++ {
		b.WriteString(strings.TrimRight(string(c.lines[i]), " "))
		b.WriteByte('\n')
	}
	return b.String()
}
