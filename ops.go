package tally

// BinOp is the combining capability between two payload types, producing a
// third. Combinators take it explicitly rather than relying on any implicit
// operator resolution.
type BinOp[T, U, R any] func(T, U) R

// Operator node labels.
const (
	addLabel = "(add)"
	subLabel = "(sub)"
	mulLabel = "(mul)"
	divLabel = "(div)"
	mapLabel = "(map)"
)

// Add combines two nodes with op under the "(add)" label. The operands'
// rendered documents become siblings in the result's provenance; the
// operands themselves are consumed. Fails only if rendering an operand fails.
func Add[T, U, R any](lhs Node[T], rhs Node[U], op BinOp[T, U, R]) (Node[R], error) {
	return combine(addLabel, lhs, rhs, op)
}

// Sub combines two nodes with op under the "(sub)" label.
func Sub[T, U, R any](lhs Node[T], rhs Node[U], op BinOp[T, U, R]) (Node[R], error) {
	return combine(subLabel, lhs, rhs, op)
}

// Mul combines two nodes with op under the "(mul)" label.
func Mul[T, U, R any](lhs Node[T], rhs Node[U], op BinOp[T, U, R]) (Node[R], error) {
	return combine(mulLabel, lhs, rhs, op)
}

// Div combines two nodes with op under the "(div)" label.
func Div[T, U, R any](lhs Node[T], rhs Node[U], op BinOp[T, U, R]) (Node[R], error) {
	return combine(divLabel, lhs, rhs, op)
}

func combine[T, U, R any](label string, lhs Node[T], rhs Node[U], op BinOp[T, U, R]) (Node[R], error) {
	left, err := lhs.Render()
	if err != nil {
		return Node[R]{}, err
	}
	right, err := rhs.Render()
	if err != nil {
		return Node[R]{}, err
	}
	return Derive(label, op(lhs.value, rhs.value), left+","+right), nil
}

// Plus adds two nodes of the same built-in numeric payload type.
func Plus[T Real](a, b Node[T]) (Node[T], error) {
	return Add(a, b, func(x, y T) T { return x + y })
}

// Minus subtracts b from a for built-in numeric payloads.
func Minus[T Real](a, b Node[T]) (Node[T], error) {
	return Sub(a, b, func(x, y T) T { return x - y })
}

// Times multiplies two nodes of the same built-in numeric payload type.
func Times[T Real](a, b Node[T]) (Node[T], error) {
	return Mul(a, b, func(x, y T) T { return x * y })
}

// Over divides a by b for built-in numeric payloads.
func Over[T Real](a, b Node[T]) (Node[T], error) {
	return Div(a, b, func(x, y T) T { return x / y })
}

// Map applies f to the payload, producing a "(map)" node of the mapped type.
// Unlike the pairwise combinators, the entire pre-map node's rendered
// document is nested as the single child in the result's provenance.
func Map[T, U any](n Node[T], f func(T) U) (Node[U], error) {
	doc, err := n.Render()
	if err != nil {
		return Node[U]{}, err
	}
	return Derive(mapLabel, f(n.value), doc), nil
}

// With applies f to the payload and returns the raw result, bypassing node
// wrapping. Useful for inline inspection without producing provenance.
func With[T, U any](n Node[T], f func(T) U) U {
	return f(n.value)
}
