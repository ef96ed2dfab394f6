package otel

import (
	"context"
	"time"

	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

const eventScope = "ainvestfeed.ingest"

// IngestEvent describes one processed candidate.
type IngestEvent struct {
	NewsID    string
	SourceURL string
	Source    string // api, worker, scraper
	Outcome   string // created, duplicate, error
	At        time.Time
}

// EventEmitter records ingestion events as OTel log records.
type EventEmitter interface {
	EmitIngest(ctx context.Context, ev IngestEvent)
}

// recordEmitter is the subset of otellog.Logger used here.
type recordEmitter interface {
	Emit(ctx context.Context, rec otellog.Record)
}

// NewEventEmitter returns an emitter backed by provider. A nil provider yields a no-op emitter.
func NewEventEmitter(provider *sdklog.LoggerProvider) EventEmitter {
	if provider == nil {
		return noopEmitter{}
	}
	return &logEmitter{logger: provider.Logger(eventScope)}
}

type noopEmitter struct{}

func (noopEmitter) EmitIngest(context.Context, IngestEvent) {}

type logEmitter struct {
	logger recordEmitter
}

func (e *logEmitter) EmitIngest(ctx context.Context, ev IngestEvent) {
	var rec otellog.Record
	at := ev.At
	if at.IsZero() {
		at = time.Now()
	}
	rec.SetTimestamp(at.UTC())
	rec.SetBody(otellog.StringValue(ev.Outcome))
	if ev.Outcome == "error" {
		rec.SetSeverity(otellog.SeverityError)
	} else {
		rec.SetSeverity(otellog.SeverityInfo)
	}
	rec.AddAttributes(
		otellog.String("event", "news.ingest"),
		otellog.String("outcome", ev.Outcome),
	)
	if ev.NewsID != "" {
		rec.AddAttributes(otellog.String("news_id", ev.NewsID))
	}
	if ev.SourceURL != "" {
		rec.AddAttributes(otellog.String("source_url", ev.SourceURL))
	}
	if ev.Source != "" {
		rec.AddAttributes(otellog.String("source", ev.Source))
	}
	e.logger.Emit(ctx, rec)
}
