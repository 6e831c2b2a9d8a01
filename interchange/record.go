// Package interchange converts tally nodes to and from the three-field
// structured record {label, value, previous} used for storage and transport.
// Records travel as structpb values, so any protobuf- or JSON-speaking
// consumer can ingest them without generated code.
package interchange

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tallyworks/tally"
)

// Field names of the interchange record. The record's previous field holds
// the node's provenance text as an opaque string; it is distinct from the
// display document produced by Render.
const (
	FieldLabel    = "label"
	FieldValue    = "value"
	FieldPrevious = "previous"
)

// ErrNilRecord is returned by Decode for a nil record.
var ErrNilRecord = errors.New("nil interchange record")

// Encode serializes a node as an interchange record. The record's value is
// the node's introspected magnitude; leaves omit the previous field.
func Encode[T any](n tally.Node[T]) (*structpb.Struct, error) {
	mag, err := tally.Magnitude(n.Quantity())
	if err != nil {
		return nil, err
	}

	fields := map[string]*structpb.Value{
		FieldLabel: structpb.NewStringValue(n.Name()),
		FieldValue: structpb.NewNumberValue(mag),
	}
	if prev, ok := n.Provenance(); ok {
		fields[FieldPrevious] = structpb.NewStringValue(prev)
	}
	return &structpb.Struct{Fields: fields}, nil
}

// Decode reconstructs a node from an interchange record. The payload type
// degrades to the record's numeric value; provenance text round-trips
// verbatim and stays opaque.
func Decode(rec *structpb.Struct) (tally.Node[float64], error) {
	var zero tally.Node[float64]
	if rec == nil {
		return zero, ErrNilRecord
	}

	labelField, ok := rec.Fields[FieldLabel]
	if !ok {
		return zero, fmt.Errorf("record missing field %q", FieldLabel)
	}
	label, ok := labelField.Kind.(*structpb.Value_StringValue)
	if !ok {
		return zero, fmt.Errorf("record field %q is not a string", FieldLabel)
	}

	valueField, ok := rec.Fields[FieldValue]
	if !ok {
		return zero, fmt.Errorf("record missing field %q", FieldValue)
	}
	value, ok := valueField.Kind.(*structpb.Value_NumberValue)
	if !ok {
		return zero, fmt.Errorf("record field %q is not a number", FieldValue)
	}

	if prevField, exists := rec.Fields[FieldPrevious]; exists {
		prev, ok := prevField.Kind.(*structpb.Value_StringValue)
		if !ok {
			return zero, fmt.Errorf("record field %q is not a string", FieldPrevious)
		}
		return tally.Derive(label.StringValue, value.NumberValue, prev.StringValue), nil
	}

	return tally.Leaf[float64]().Name(label.StringValue).Value(value.NumberValue).Build(), nil
}
