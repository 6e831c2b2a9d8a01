package tally

import (
	"fmt"
	"strings"
)

// FoldLabel is the label of nodes produced by Accumulator.Finish. Callers
// wanting a different name relabel the result.
const FoldLabel = "foldl"

// OrderingError reports a min/max fold step whose operands have no defined
// order. The fold never invents a tie-break: an undefined relation between
// the running value and the next operand is an explicit failure, since a
// silent choice would corrupt the meaning of minimum and maximum.
type OrderingError struct {
	// Label names the operand that could not be ordered against the
	// running value.
	Label string
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("no ordering between running value and operand %q", e.Label)
}

// Accumulator pairs a running combined value with the rendered document of
// every operand folded so far. Operands are retained individually, never
// reduced pairwise, so Finish produces a flat multi-child provenance record.
//
// An accumulator is consumed by each step; do not reuse one after passing it
// to Then, ThenMin or ThenMax.
type Accumulator[T any] struct {
	value T
	items []string
}

// Begin seeds an accumulator with the first operand's value and its rendered
// document.
func Begin[T any](first Node[T]) (Accumulator[T], error) {
	doc, err := first.Render()
	if err != nil {
		return Accumulator[T]{}, err
	}
	return Accumulator[T]{value: first.value, items: []string{doc}}, nil
}

// Then folds the next operand into the accumulator using op. Successive
// steps may change the running value's type, which gives left-associative
// heterogeneous folding.
func Then[T, U, R any](acc Accumulator[T], next Node[U], op BinOp[T, U, R]) (Accumulator[R], error) {
	doc, err := next.Render()
	if err != nil {
		return Accumulator[R]{}, err
	}
	return Accumulator[R]{
		value: op(acc.value, next.value),
		items: append(acc.items, doc),
	}, nil
}

// ThenMin folds the next operand by partial ordering, keeping the lesser of
// the running value and the operand. Ties keep the running (left) value.
// Fails with an OrderingError when the two are unordered.
func ThenMin[T any](acc Accumulator[T], next Node[T], order Ordering[T]) (Accumulator[T], error) {
	return thenOrdered(acc, next, order, false)
}

// ThenMax folds the next operand by partial ordering, keeping the greater of
// the running value and the operand. Ties keep the running (left) value.
// Fails with an OrderingError when the two are unordered.
func ThenMax[T any](acc Accumulator[T], next Node[T], order Ordering[T]) (Accumulator[T], error) {
	return thenOrdered(acc, next, order, true)
}

func thenOrdered[T any](acc Accumulator[T], next Node[T], order Ordering[T], wantGreater bool) (Accumulator[T], error) {
	doc, err := next.Render()
	if err != nil {
		return Accumulator[T]{}, err
	}
	c, ok := order(acc.value, next.value)
	if !ok {
		return Accumulator[T]{}, &OrderingError{Label: next.label}
	}
	value := acc.value
	if (wantGreater && c < 0) || (!wantGreater && c > 0) {
		value = next.value
	}
	return Accumulator[T]{value: value, items: append(acc.items, doc)}, nil
}

// Finish consumes the accumulator into a single node labeled FoldLabel whose
// provenance lists every retained operand as a sibling.
func (a Accumulator[T]) Finish() Node[T] {
	return Derive(FoldLabel, a.value, strings.Join(a.items, ","))
}

// ReduceAll left-folds two or more nodes with op into one flat-provenance
// node.
func ReduceAll[T any](op BinOp[T, T, T], first, second Node[T], rest ...Node[T]) (Node[T], error) {
	acc, err := Begin(first)
	if err != nil {
		return Node[T]{}, err
	}
	for _, n := range prepend(second, rest) {
		acc, err = Then(acc, n, op)
		if err != nil {
			return Node[T]{}, err
		}
	}
	return acc.Finish(), nil
}

// SumAll sums two or more built-in numeric nodes.
func SumAll[T Real](first, second Node[T], rest ...Node[T]) (Node[T], error) {
	return ReduceAll(func(x, y T) T { return x + y }, first, second, rest...)
}

// ProdAll multiplies two or more built-in numeric nodes.
func ProdAll[T Real](first, second Node[T], rest ...Node[T]) (Node[T], error) {
	return ReduceAll(func(x, y T) T { return x * y }, first, second, rest...)
}

// MinimumBy folds two or more nodes to their minimum under the given
// ordering. First-seen wins on ties.
func MinimumBy[T any](order Ordering[T], first, second Node[T], rest ...Node[T]) (Node[T], error) {
	return foldOrdered(order, first, second, rest, false)
}

// MaximumBy folds two or more nodes to their maximum under the given
// ordering. First-seen wins on ties.
func MaximumBy[T any](order Ordering[T], first, second Node[T], rest ...Node[T]) (Node[T], error) {
	return foldOrdered(order, first, second, rest, true)
}

// Minimum folds two or more built-in numeric nodes to their minimum.
func Minimum[T Real](first, second Node[T], rest ...Node[T]) (Node[T], error) {
	return MinimumBy(NumericOrder[T], first, second, rest...)
}

// Maximum folds two or more built-in numeric nodes to their maximum.
func Maximum[T Real](first, second Node[T], rest ...Node[T]) (Node[T], error) {
	return MaximumBy(NumericOrder[T], first, second, rest...)
}

func foldOrdered[T any](order Ordering[T], first, second Node[T], rest []Node[T], wantGreater bool) (Node[T], error) {
	acc, err := Begin(first)
	if err != nil {
		return Node[T]{}, err
	}
	for _, n := range prepend(second, rest) {
		acc, err = thenOrdered(acc, n, order, wantGreater)
		if err != nil {
			return Node[T]{}, err
		}
	}
	return acc.Finish(), nil
}

func prepend[T any](head Node[T], tail []Node[T]) []Node[T] {
	out := make([]Node[T], 0, len(tail)+1)
	out = append(out, head)
	return append(out, tail...)
}
