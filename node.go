package tally

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Node is an immutable labeled value carrying an optional provenance
// document. Leaf nodes built through the builder have no provenance; nodes
// produced by combinators, folds and transforms always do.
//
// Node has value semantics. Operations never mutate a node in place; they
// return new nodes, and the provenance captured at creation time is flattened
// text with no live reference back to the operands.
type Node[T any] struct {
	label   string
	value   T
	prev    string
	hasPrev bool
}

// Derive constructs a derived node with pre-rendered provenance text. It is
// the constructor used by combinators, folds and the interchange decoder.
// End users building leaves should use Leaf instead. An empty provenance
// yields a leaf.
func Derive[T any](label string, value T, provenance string) Node[T] {
	return Node[T]{
		label:   label,
		value:   value,
		prev:    provenance,
		hasPrev: provenance != "",
	}
}

// Quantity returns the payload value.
func (n Node[T]) Quantity() T {
	return n.value
}

// Name returns the node's label.
func (n Node[T]) Name() string {
	return n.label
}

// Provenance returns the node's provenance text and whether any is present.
// Leaves report false.
func (n Node[T]) Provenance() (string, bool) {
	return n.prev, n.hasPrev
}

// Relabel returns a copy of the node under a new name. Value and provenance
// are unchanged.
func (n Node[T]) Relabel(name string) Node[T] {
	n.label = name
	return n
}

// Equal reports whether two nodes carry the same label, value and provenance
// text. Values are compared with reflect.DeepEqual.
func (n Node[T]) Equal(other Node[T]) bool {
	return n.label == other.label &&
		n.prev == other.prev &&
		n.hasPrev == other.hasPrev &&
		reflect.DeepEqual(n.value, other.value)
}

// Compare orders two nodes by their payloads using the supplied ordering
// capability. The second result is false when the payloads have no defined
// order.
func (n Node[T]) Compare(other Node[T], order Ordering[T]) (int, bool) {
	return order(n.value, other.value)
}

// Satisfies evaluates the predicate against the payload without consuming
// the node.
func (n Node[T]) Satisfies(pred func(T) bool) bool {
	return pred(n.value)
}

// Render produces the node's provenance document: a JSON object with keys
// label, value and unit, plus subexpr when the node has provenance. The
// subexpr entries are the operands' own rendered documents spliced in
// verbatim. Field order and key names are part of the contract for
// downstream consumers.
//
// Render fails if quantity introspection cannot decompose the payload's
// rendering; the error surfaces the offending text.
func (n Node[T]) Render() (string, error) {
	m, err := Measure(n.value)
	if err != nil {
		return "", err
	}

	label, err := json.Marshal(n.label)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", n.label, err)
	}
	value, err := json.Marshal(m.Magnitude)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", n.label, err)
	}
	unit, err := json.Marshal(m.Symbol)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", n.label, err)
	}

	var b bytes.Buffer
	b.WriteString(`{"label":`)
	b.Write(label)
	b.WriteString(`,"value":`)
	b.Write(value)
	b.WriteString(`,"unit":`)
	b.Write(unit)
	if n.hasPrev {
		b.WriteString(`,"subexpr":[`)
		b.WriteString(n.prev)
		b.WriteString(`]`)
	}
	b.WriteString(`}`)
	return b.String(), nil
}
