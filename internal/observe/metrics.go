// Package observe provides the OpenTelemetry metric instruments of the tutor
// backend and the Prometheus bridge that exposes them on /metrics.
//
// Tests should build [Metrics] with [NewMetrics] over their own
// [metric.MeterProvider] (for example a ManualReader) to avoid cross-test
// pollution.
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/heartmarshall/lingua-tutor-backend"

// Metrics holds all metric instruments. All fields are safe for concurrent use.
type Metrics struct {
	// TurnDuration tracks end-to-end turn latency. Attributes: kind, outcome.
	TurnDuration metric.Float64Histogram

	// UpstreamDuration tracks model and transcription calls. Attributes:
	// kind (chat|stt), status (ok|error).
	UpstreamDuration metric.Float64Histogram

	// ParseStages counts which fallback stage produced each response.
	ParseStages metric.Int64Counter

	// VocabAdmitted counts candidates that passed extraction.
	VocabAdmitted metric.Int64Counter

	// VocabRejected counts dropped candidates by reason.
	VocabRejected metric.Int64Counter

	// WordWrites counts word bank upserts. Attributes: signal (seen|used), status.
	WordWrites metric.Int64Counter

	// HTTPRequestDuration tracks HTTP handling time. Attributes: method, path, status.
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets are tuned for hosted LLM round trips.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2, 4, 8, 15, 30,
}

// NewMetrics creates all instruments on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.TurnDuration, err = m.Float64Histogram("tutor.turn.duration",
		metric.WithDescription("Latency of a full conversation turn."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.UpstreamDuration, err = m.Float64Histogram("tutor.upstream.duration",
		metric.WithDescription("Latency of model and transcription calls."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ParseStages, err = m.Int64Counter("tutor.parse.stages",
		metric.WithDescription("Model completions by the parse stage that recovered them."),
	); err != nil {
		return nil, err
	}
	if met.VocabAdmitted, err = m.Int64Counter("tutor.vocab.admitted",
		metric.WithDescription("Vocabulary candidates admitted by the extractor."),
	); err != nil {
		return nil, err
	}
	if met.VocabRejected, err = m.Int64Counter("tutor.vocab.rejected",
		metric.WithDescription("Vocabulary candidates dropped, by reason."),
	); err != nil {
		return nil, err
	}
	if met.WordWrites, err = m.Int64Counter("tutor.wordbank.writes",
		metric.WithDescription("Word bank upserts by signal and status."),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("tutor.http.request.duration",
		metric.WithDescription("HTTP request latency by method, path and status."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// Noop returns Metrics whose instruments discard every observation.
func Noop() *Metrics {
	m, err := NewMetrics(noop.NewMeterProvider())
	if err != nil {
		panic("observe: noop metrics: " + err.Error())
	}
	return m
}

// RecordTurn records one finished turn.
func (m *Metrics) RecordTurn(ctx context.Context, kind, outcome string, d time.Duration) {
	m.TurnDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("outcome", outcome),
		),
	)
}

// RecordUpstream records one model boundary call.
func (m *Metrics) RecordUpstream(ctx context.Context, kind, status string, d time.Duration) {
	m.UpstreamDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(
			attribute.String("kind", kind),
			attribute.String("status", status),
		),
	)
}

// RecordParse counts a completion recovered at stage.
func (m *Metrics) RecordParse(ctx context.Context, stage string) {
	m.ParseStages.Add(ctx, 1, metric.WithAttributes(attribute.String("stage", stage)))
}

// RecordVocab counts admitted candidates and one rejection per reason entry.
func (m *Metrics) RecordVocab(ctx context.Context, admitted int, rejectReasons []string) {
	if admitted > 0 {
		m.VocabAdmitted.Add(ctx, int64(admitted))
	}
	for _, r := range rejectReasons {
		m.VocabRejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", r)))
	}
}

// RecordWordWrite counts one word bank upsert.
func (m *Metrics) RecordWordWrite(ctx context.Context, signal, status string) {
	m.WordWrites.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("signal", signal),
			attribute.String("status", status),
		),
	)
}
