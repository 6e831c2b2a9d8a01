package tally

import (
	"fmt"
	"slices"
	"strings"
)

// Violation is the failure outcome of a resolved validation chain. It
// bundles the node's label, every failed predicate's message in call order,
// and the node's rendered provenance document at resolution time.
type Violation struct {
	Label    string
	Messages []string
	Document string
}

func (e *Violation) Error() string {
	return fmt.Sprintf("validation of %q failed: %s", e.Label, strings.Join(e.Messages, "; "))
}

// Equivalent reports whether two violations carry the same label and
// messages. The rendered document is ignored, so violations from equal nodes
// compare equal regardless of provenance depth.
func (e *Violation) Equivalent(other *Violation) bool {
	if other == nil {
		return false
	}
	return e.Label == other.Label && slices.Equal(e.Messages, other.Messages)
}

// Chain accumulates failed-predicate messages against one node. Every
// chained predicate runs; nothing short-circuits, so a resolved failure
// lists every violated constraint rather than just the first. The node
// carried by the chain never changes.
type Chain[T any] struct {
	node     Node[T]
	messages []string
}

// Validate starts a validation chain against the node's payload. A failing
// predicate records its message; a passing one records nothing.
func (n Node[T]) Validate(msg string, pred func(T) bool) *Chain[T] {
	c := &Chain[T]{node: n}
	return c.Validate(msg, pred)
}

// Validate evaluates another predicate against the chained node's payload,
// appending msg on failure.
func (c *Chain[T]) Validate(msg string, pred func(T) bool) *Chain[T] {
	if !pred(c.node.value) {
		c.messages = append(c.messages, msg)
	}
	return c
}

// Resolve terminates the chain. With no recorded messages it returns the
// original node; otherwise it returns a Violation. Rendering the document
// for a failing node is best effort: if the payload itself cannot be
// rendered, the violation records the render failure text instead.
func (c *Chain[T]) Resolve() (Node[T], error) {
	if len(c.messages) == 0 {
		return c.node, nil
	}
	doc, err := c.node.Render()
	if err != nil {
		doc = fmt.Sprintf("unrenderable: %v", err)
	}
	return Node[T]{}, &Violation{
		Label:    c.node.label,
		Messages: slices.Clone(c.messages),
		Document: doc,
	}
}
