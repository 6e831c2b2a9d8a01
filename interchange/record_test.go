package interchange_test

import (
	"errors"
	"testing"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/tallyworks/tally"
	"github.com/tallyworks/tally/interchange"
	"github.com/tallyworks/tally/measure"
)

func TestEncode_Leaf(t *testing.T) {
	n := tally.Leaf[float64]().Name("x").Value(2).Build()

	rec, err := interchange.Encode(n)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	if got := rec.Fields[interchange.FieldLabel].GetStringValue(); got != "x" {
		t.Errorf("label = %q, want %q", got, "x")
	}
	if got := rec.Fields[interchange.FieldValue].GetNumberValue(); got != 2 {
		t.Errorf("value = %v, want 2", got)
	}
	if _, exists := rec.Fields[interchange.FieldPrevious]; exists {
		t.Error("leaf record should omit the previous field")
	}
}

func TestEncode_DerivedCarriesPrevious(t *testing.T) {
	a := tally.Leaf[float64]().Name("a").Value(2).Build()
	b := tally.Leaf[float64]().Name("b").Value(3).Build()
	sum, err := tally.Plus(a, b)
	if err != nil {
		t.Fatalf("Plus error: %v", err)
	}
	wantPrev, _ := sum.Provenance()

	rec, err := interchange.Encode(sum)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if got := rec.Fields[interchange.FieldPrevious].GetStringValue(); got != wantPrev {
		t.Errorf("previous = %q, want %q", got, wantPrev)
	}
}

func TestEncode_QuantityPayload(t *testing.T) {
	n := tally.Leaf[measure.Quantity]().Name("area").Value(measure.New(8, "m^2")).Build()

	rec, err := interchange.Encode(n)
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}
	if got := rec.Fields[interchange.FieldValue].GetNumberValue(); got != 8 {
		t.Errorf("value = %v, want 8", got)
	}
}

func TestDecode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node tally.Node[float64]
	}{
		{name: "leaf", node: tally.Leaf[float64]().Name("x").Value(2).Build()},
		{name: "derived", node: tally.Derive("(add)", 5.0, `{"label":"a","value":2,"unit":"dimensionless"},{"label":"b","value":3,"unit":"dimensionless"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := interchange.Encode(tt.node)
			if err != nil {
				t.Fatalf("Encode error: %v", err)
			}
			got, err := interchange.Decode(rec)
			if err != nil {
				t.Fatalf("Decode error: %v", err)
			}
			if !got.Equal(tt.node) {
				t.Errorf("round trip changed node: got %+v", got)
			}
		})
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		rec  *structpb.Struct
	}{
		{name: "nil record", rec: nil},
		{name: "missing label", rec: &structpb.Struct{Fields: map[string]*structpb.Value{
			interchange.FieldValue: structpb.NewNumberValue(1),
		}}},
		{name: "missing value", rec: &structpb.Struct{Fields: map[string]*structpb.Value{
			interchange.FieldLabel: structpb.NewStringValue("x"),
		}}},
		{name: "label wrong type", rec: &structpb.Struct{Fields: map[string]*structpb.Value{
			interchange.FieldLabel: structpb.NewNumberValue(1),
			interchange.FieldValue: structpb.NewNumberValue(1),
		}}},
		{name: "previous wrong type", rec: &structpb.Struct{Fields: map[string]*structpb.Value{
			interchange.FieldLabel:    structpb.NewStringValue("x"),
			interchange.FieldValue:    structpb.NewNumberValue(1),
			interchange.FieldPrevious: structpb.NewBoolValue(true),
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := interchange.Decode(tt.rec); err == nil {
				t.Error("Decode should fail")
			}
		})
	}

	if _, err := interchange.Decode(nil); !errors.Is(err, interchange.ErrNilRecord) {
		t.Errorf("Decode(nil) error = %v, want ErrNilRecord", err)
	}
}

func TestParseDocument(t *testing.T) {
	a := tally.Leaf[float64]().Name("a").Value(2).Build()
	b := tally.Leaf[measure.Quantity]().Name("b").Value(measure.New(3, "m")).Build()
	res, err := tally.Mul(a, b, func(k float64, q measure.Quantity) measure.Quantity { return q.Scale(k) })
	if err != nil {
		t.Fatalf("Mul error: %v", err)
	}
	rendered, err := res.Render()
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}

	doc, err := interchange.ParseDocument(rendered)
	if err != nil {
		t.Fatalf("ParseDocument error: %v", err)
	}

	fields := doc.GetStructValue().GetFields()
	if got := fields["label"].GetStringValue(); got != "(mul)" {
		t.Errorf("label = %q, want %q", got, "(mul)")
	}
	if got := fields["value"].GetNumberValue(); got != 6 {
		t.Errorf("value = %v, want 6", got)
	}
	subexpr := fields["subexpr"].GetListValue().GetValues()
	if len(subexpr) != 2 {
		t.Fatalf("subexpr has %d entries, want 2", len(subexpr))
	}
	if got := subexpr[1].GetStructValue().GetFields()["unit"].GetStringValue(); got != "m^1" {
		t.Errorf("second sibling unit = %q, want %q", got, "m^1")
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	if _, err := interchange.ParseDocument("{not json"); err == nil {
		t.Error("ParseDocument should fail on malformed text")
	}
}
