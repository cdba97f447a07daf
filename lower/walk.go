package lower

// Walk calls fn for node and its descendants in pre-order: an [Invoke]
// before its receiver, then its callback, and a [Closure] before its body.
// Descent into a node stops when fn returns false.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Invoke:
		Walk(n.Receiver, fn)
		Walk(n.Callback, fn)
	case *Closure:
		Walk(n.Body, fn)
	}
}

// Invocations returns every [Invoke] under node, outermost first. This is
// the order in which the receivers are evaluated.
func Invocations(node Node) []*Invoke {
	var out []*Invoke

	Walk(node, func(n Node) bool {
		if inv, ok := n.(*Invoke); ok {
			out = append(out, inv)
		}

		return true
	})

	return out
}

// Tail returns the innermost body reached by following callbacks, which is
// the lowered block's tail expression.
func Tail(node Node) *Expr {
	for {
		switch n := node.(type) {
		case *Expr:
			return n
		case *Invoke:
			node = n.Callback
		case *Closure:
			node = n.Body
		default:
			return nil
		}
	}
}

// Equal reports whether a and b are structurally identical, comparing
// source text, methods and parameters but not positions.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case nil:
		return b == nil

	case *Expr:
		y, ok := b.(*Expr)

		return ok && (x == nil) == (y == nil) && (x == nil || x.Source == y.Source)

	case *Invoke:
		y, ok := b.(*Invoke)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}

		return x.Method == y.Method &&
			Equal(x.Receiver, y.Receiver) &&
			Equal(x.Callback, y.Callback)

	case *Closure:
		y, ok := b.(*Closure)
		if !ok || x == nil || y == nil {
			return ok && x == y
		}

		return x.Param.String() == y.Param.String() && Equal(x.Body, y.Body)

	default:
		return false
	}
}

// Scopes calls fn for every [Expr] under node with the names visible to it,
// outermost binding first. A receiver sees the names bound by enclosing
// callbacks only; the tail sees every binding.
func Scopes(node Node, fn func(e *Expr, visible []string)) {
	scopes(node, nil, fn)
}

func scopes(node Node, visible []string, fn func(*Expr, []string)) {
	switch n := node.(type) {
	case *Expr:
		fn(n, visible[:len(visible):len(visible)])
	case *Invoke:
		scopes(n.Receiver, visible, fn)
		scopes(n.Callback, visible, fn)
	case *Closure:
		scopes(n.Body, append(visible[:len(visible):len(visible)], n.Param.Names()...), fn)
	}
}
