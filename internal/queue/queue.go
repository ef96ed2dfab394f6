// Package queue carries ingestion candidates between the scraper and the worker over Kafka.
package queue

import (
	"context"

	"github.com/VictorSaf/ainvestfeed/internal/ingestion"
)

// Publisher emits candidates for asynchronous ingestion.
type Publisher interface {
	Publish(ctx context.Context, c ingestion.Candidate) error
	// Close releases resources. Safe to call if already closed.
	Close() error
}

// HandlerFunc processes one decoded candidate. A returned error is logged; the message is still committed.
type HandlerFunc func(ctx context.Context, c ingestion.Candidate) error
