package lower

import (
	"log/slog"
	"strconv"

	"github.com/pfgray/ecma-proposal-chainable-do-syntax/block"
)

// Node is a lowered expression: an [*Expr], an [*Invoke] or a [*Closure].
type Node interface {
	// Position returns where the node's source begins.
	Position() block.Position

	node()
}

// Method names the chainable operation an [Invoke] calls.
type Method uint8

const (
	// Map transforms the wrapped value; used by the last bind step.
	Map Method = iota
	// Chain flattens a callback that returns another chainable.
	Chain
)

func (m Method) String() string {
	switch m {
	case Map:
		return "map"
	case Chain:
		return "chain"
	default:
		return "Method(" + strconv.Itoa(int(m)) + ")"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// Expr passes a host expression through unchanged.
type Expr struct {
	block.Expr
}

// Invoke calls Method on the value of Receiver with Callback.
type Invoke struct {
	Receiver *Expr
	Method   Method
	Callback *Closure
}

// Closure is a one-parameter callback. Body is an [*Invoke] or the tail
// [*Expr].
type Closure struct {
	Param block.Pattern
	Body  Node
}

func (e *Expr) Position() block.Position    { return e.Pos }
func (i *Invoke) Position() block.Position  { return i.Receiver.Pos }
func (c *Closure) Position() block.Position { return c.Param.Pos }

func (*Expr) node()    {}
func (*Invoke) node()  {}
func (*Closure) node() {}

// LogValue implements slog.LogValuer.
func (i *Invoke) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("receiver", i.Receiver.Source),
		slog.String("method", i.Method.String()),
		slog.String("param", i.Callback.Param.String()),
	)
}
