package audit

import (
	"net/http"

	"github.com/tallyworks/tally/observability"
)

// Config holds audit subsystem initialization parameters.
type Config struct {
	Path     string `json:"path,omitempty"`     // FileStore root; empty selects Store instead.
	Store    string `json:"store,omitempty"`    // Named store from the registry; empty means "memory".
	Observer string `json:"observer,omitempty"` // Named observer; empty means "noop".
	SinkURL  string `json:"sink_url,omitempty"` // Ingestion endpoint base URL; empty disables shipping.
}

// DefaultConfig returns the default audit configuration: in-memory store, no
// observer, no shipping.
func DefaultConfig() Config {
	return Config{}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.Path != "" {
		c.Path = source.Path
	}
	if source.Store != "" {
		c.Store = source.Store
	}
	if source.Observer != "" {
		c.Observer = source.Observer
	}
	if source.SinkURL != "" {
		c.SinkURL = source.SinkURL
	}
}

// NewRecorderFromConfig resolves the configuration into a Recorder. Path
// takes precedence over Store; shipping uses http.DefaultClient.
func NewRecorderFromConfig(cfg *Config) (*Recorder, error) {
	var store Store
	switch {
	case cfg.Path != "":
		store = NewFileStore(cfg.Path)
	case cfg.Store != "":
		named, err := GetStore(cfg.Store)
		if err != nil {
			return nil, err
		}
		store = named
	default:
		store, _ = GetStore("memory")
	}

	observerName := cfg.Observer
	if observerName == "" {
		observerName = "noop"
	}
	observer, err := observability.GetObserver(observerName)
	if err != nil {
		return nil, err
	}

	var sink *Sink
	if cfg.SinkURL != "" {
		sink = NewSink(http.DefaultClient, cfg.SinkURL)
	}

	return NewRecorder(store, observer, sink), nil
}
