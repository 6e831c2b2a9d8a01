package interchange

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// ParseDocument exposes a rendered provenance document as a structpb value:
// a tagged union discriminated as string, number, object or list, with
// subexpr entries appearing as nested values of the same shape. It gives
// downstream consumers (audit ingestion, report generation) a structural
// view of the document without string manipulation.
//
// The result is display structure only. Provenance stays write-once: a
// parsed document carries no payload types and cannot be turned back into
// nodes.
func ParseDocument(rendered string) (*structpb.Value, error) {
	v := &structpb.Value{}
	if err := v.UnmarshalJSON([]byte(rendered)); err != nil {
		return nil, fmt.Errorf("parse provenance document: %w", err)
	}
	return v, nil
}
