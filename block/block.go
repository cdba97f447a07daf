package block

import (
	"log/slog"
	"strings"
)

// BindStep binds the value carried by Source to Pattern for every step and
// the tail that follow it.
type BindStep struct {
	Pattern Pattern
	Source  Expr
}

// Bind returns the step "pattern <- source".
func Bind(pattern Pattern, source string) BindStep {
	return BindStep{Pattern: pattern, Source: NewExpr(source)}
}

func (s BindStep) String() string {
	return s.Pattern.String() + " <- " + s.Source.Source
}

// DoBlock is an ordered sequence of bind steps followed by a tail expression.
type DoBlock struct {
	Steps []BindStep
	Tail  Expr
	Pos   Position
}

// Option configures a [DoBlock] built by [New].
type Option func(*DoBlock)

// At records the position of the block in its source.
func At(pos Position) Option {
	return func(b *DoBlock) { b.Pos = pos }
}

// New returns a validated DoBlock. Every failure is an [ErrMalformedBlock]
// wrapping the specific cause.
func New(steps []BindStep, tail Expr, opts ...Option) (*DoBlock, error) {
	b := &DoBlock{
		Steps: make([]BindStep, len(steps)),
		Tail:  tail,
	}

	for i, s := range steps {
		b.Steps[i] = BindStep{Pattern: s.Pattern.Clone(), Source: s.Source}
	}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate reports the first structural problem with b, if any.
func (b *DoBlock) Validate() error {
	for i, s := range b.Steps {
		if err := s.Pattern.Validate(); err != nil {
			return ErrMalformedBlock.At(b.Pos).With(
				slog.Int("step", i),
				slog.String("pattern", s.Pattern.String()),
			).Wrap(err)
		}

		if s.Source.IsBlank() {
			return ErrMalformedBlock.At(b.Pos).With(
				slog.Int("step", i),
				slog.String("pattern", s.Pattern.String()),
			).Wrap(ErrMissingSource.At(s.Source.Pos))
		}
	}

	if b.Tail.IsBlank() {
		return ErrMalformedBlock.At(b.Pos).Wrap(ErrMissingTail.At(b.Tail.Pos))
	}

	return nil
}

// IsEmpty reports whether b has no bind steps.
func (b *DoBlock) IsEmpty() bool { return len(b.Steps) == 0 }

// Len returns the number of bind steps.
func (b *DoBlock) Len() int { return len(b.Steps) }

// Names returns the names bound by b, in binding order. A name rebound by a
// later step appears once per binding.
func (b *DoBlock) Names() []string {
	var names []string

	for _, s := range b.Steps {
		names = append(names, s.Pattern.Names()...)
	}

	return names
}

// String renders b in do-block surface syntax on a single line.
func (b *DoBlock) String() string {
	var sb strings.Builder

	sb.WriteString("do { ")

	for _, s := range b.Steps {
		sb.WriteString(s.String())
		sb.WriteString("; ")
	}

	sb.WriteString(b.Tail.Source)
	sb.WriteString(" }")

	return sb.String()
}

// LogValue implements slog.LogValuer.
func (b *DoBlock) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("steps", len(b.Steps)),
		slog.String("tail", b.Tail.Source),
		slog.String("at", b.Pos.String()),
	)
}
