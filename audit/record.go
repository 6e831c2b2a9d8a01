package audit

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

// Record is one captured provenance document: the rendered JSON text of a
// node at a point in time, under a stable identity for storage and
// ingestion.
type Record struct {
	ID       string    `json:"id"`
	Label    string    `json:"label"`
	Document string    `json:"document"`
	Captured time.Time `json:"captured"`
}

func newRecordID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// ToStruct serializes the record as a structpb payload for transport.
func (r Record) ToStruct() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"id":       structpb.NewStringValue(r.ID),
		"label":    structpb.NewStringValue(r.Label),
		"document": structpb.NewStringValue(r.Document),
		"captured": structpb.NewStringValue(r.Captured.UTC().Format(time.RFC3339Nano)),
	}}
}

// RecordFromStruct deserializes a transported record payload. ID and
// document are required; a missing timestamp leaves Captured zero.
func RecordFromStruct(s *structpb.Struct) (Record, error) {
	if s == nil {
		return Record{}, errors.New("nil record payload")
	}

	rec := Record{
		ID:       s.Fields["id"].GetStringValue(),
		Label:    s.Fields["label"].GetStringValue(),
		Document: s.Fields["document"].GetStringValue(),
	}
	if rec.ID == "" {
		return Record{}, errors.New("record payload missing id")
	}
	if rec.Document == "" {
		return Record{}, errors.New("record payload missing document")
	}

	if ts := s.Fields["captured"].GetStringValue(); ts != "" {
		captured, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return Record{}, fmt.Errorf("record payload has bad captured timestamp: %w", err)
		}
		rec.Captured = captured
	}
	return rec, nil
}
