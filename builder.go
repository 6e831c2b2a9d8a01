package tally

// Leaf starts staged construction of a leaf node. Name and Value may be
// called in either order; Build only becomes available once both are set,
// so an incomplete node cannot be constructed.
func Leaf[T any]() Builder[T] {
	return Builder[T]{}
}

// Builder is the empty construction state: neither name nor value set.
type Builder[T any] struct{}

// Name sets the node's label.
func (Builder[T]) Name(name string) NamedBuilder[T] {
	return NamedBuilder[T]{label: name}
}

// Value sets the node's payload.
func (Builder[T]) Value(v T) ValuedBuilder[T] {
	return ValuedBuilder[T]{value: v}
}

// NamedBuilder has a label but no payload yet.
type NamedBuilder[T any] struct {
	label string
}

// Value supplies the payload, completing the builder.
func (b NamedBuilder[T]) Value(v T) ReadyBuilder[T] {
	return ReadyBuilder[T]{label: b.label, value: v}
}

// ValuedBuilder has a payload but no label yet.
type ValuedBuilder[T any] struct {
	value T
}

// Name supplies the label, completing the builder.
func (b ValuedBuilder[T]) Name(name string) ReadyBuilder[T] {
	return ReadyBuilder[T]{label: name, value: b.value}
}

// ReadyBuilder has both label and payload set and can build the node.
type ReadyBuilder[T any] struct {
	label string
	value T
}

// Build yields the leaf node. Leaves never carry provenance.
func (b ReadyBuilder[T]) Build() Node[T] {
	return Node[T]{label: b.label, value: b.value}
}
