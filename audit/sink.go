package audit

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/structpb"
)

// IngestProcedure is the Connect RPC procedure audit records are shipped to.
const IngestProcedure = "/tally.audit.v1.AuditService/Ingest"

// Sink ships audit records to a remote ingestion endpoint over Connect.
// Records travel as schema-free structpb payloads, so neither side needs
// generated client or server stubs.
type Sink struct {
	client *connect.Client[structpb.Struct, structpb.Struct]
}

// NewSink creates a Sink posting to baseURL+IngestProcedure through
// httpClient (typically *http.Client).
func NewSink(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *Sink {
	return &Sink{
		client: connect.NewClient[structpb.Struct, structpb.Struct](
			httpClient,
			baseURL+IngestProcedure,
			opts...,
		),
	}
}

// Ship sends one record to the ingestion endpoint.
func (s *Sink) Ship(ctx context.Context, rec Record) error {
	_, err := s.client.CallUnary(ctx, connect.NewRequest(rec.ToStruct()))
	return err
}

// NewIngestHandler returns the route and handler for receiving shipped
// records. The ingest callback is invoked once per well-formed record;
// malformed payloads are rejected with CodeInvalidArgument and callback
// errors surface as CodeInternal.
//
// Example:
//
//	mux := http.NewServeMux()
//	mux.Handle(audit.NewIngestHandler(func(ctx context.Context, rec audit.Record) error {
//	    return store.Save(ctx, rec)
//	}))
func NewIngestHandler(ingest func(ctx context.Context, rec Record) error, opts ...connect.HandlerOption) (string, http.Handler) {
	handler := connect.NewUnaryHandler(
		IngestProcedure,
		func(ctx context.Context, req *connect.Request[structpb.Struct]) (*connect.Response[structpb.Struct], error) {
			rec, err := RecordFromStruct(req.Msg)
			if err != nil {
				return nil, connect.NewError(connect.CodeInvalidArgument, err)
			}
			if err := ingest(ctx, rec); err != nil {
				return nil, connect.NewError(connect.CodeInternal, err)
			}
			return connect.NewResponse(&structpb.Struct{}), nil
		},
		opts...,
	)
	return IngestProcedure, handler
}
