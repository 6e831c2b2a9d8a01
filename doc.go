// Package tally wraps ordinary values in labeled nodes that accumulate a
// provenance trail as they are combined, so a computation produces both its
// result and an auditable explanation of how the result was derived.
//
// # Nodes
//
// A Node pairs a payload value with a human-readable label and, for derived
// nodes, a provenance document describing the operands that produced it.
// Nodes are immutable values: every operation consumes its inputs and returns
// a new node. Leaf nodes are built through a staged builder that only exposes
// Build once both the name and the value have been supplied:
//
//	x := tally.Leaf[float64]().Name("x").Value(2.0).Build()
//	y := tally.Leaf[float64]().Value(3.0).Name("y").Build()
//
// # Combining
//
// Pairwise combinators accept an explicit combining capability, which lets
// the two operands carry different payload types:
//
//	sum, err := tally.Add(x, y, func(a, b float64) float64 { return a + b })
//
// For built-in numeric payloads the Plus, Minus, Times and Over shorthands
// supply the capability. Folds reduce any number of nodes while keeping every
// operand visible as a sibling in the result's provenance:
//
//	total, err := tally.SumAll(a, b, c, d)
//
// # Provenance
//
// Render produces a JSON document {label, value, unit, subexpr} where subexpr
// holds the operands' own documents spliced in verbatim. Provenance is
// write-once text: it is wrapped by later operations but never parsed back
// into nodes. The magnitude and unit in the document come from quantity
// introspection (see Measure), which payload types can serve directly by
// implementing Measurable.
//
// # Validation
//
// A validation chain runs every predicate against a node's payload and
// resolves to the node itself or to a Violation listing every failed
// predicate's message in call order:
//
//	node, err := total.
//		Validate("must be positive", func(v float64) bool { return v > 0 }).
//		Validate("must be finite", func(v float64) bool { return !math.IsInf(v, 0) }).
//		Resolve()
//
// The core performs no I/O; persistence and shipping of rendered documents
// live in the audit and interchange subpackages.
package tally
