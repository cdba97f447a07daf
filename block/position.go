package block

import (
	"log/slog"
	"strconv"
)

// Position is a location in source text. Line and Column are 1-based; the
// zero value means the location is unknown.
type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether p refers to a known location.
func (p Position) IsValid() bool { return p.Line > 0 }

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}

	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Add returns the absolute position of p, a position relative to origin.
// Only the first line of p is shifted by origin's column.
func (p Position) Add(origin Position) Position {
	if !p.IsValid() || !origin.IsValid() {
		return p
	}

	q := Position{
		Offset: origin.Offset + p.Offset,
		Line:   origin.Line + p.Line - 1,
		Column: p.Column,
	}

	if p.Line == 1 {
		q.Column = origin.Column + p.Column - 1
	}

	return q
}

// LogValue implements slog.LogValuer.
func (p Position) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("line", p.Line),
		slog.Int("column", p.Column),
		slog.Int("offset", p.Offset),
	)
}
