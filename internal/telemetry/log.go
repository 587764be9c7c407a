package telemetry

import (
	"context"

	"go.uber.org/zap"
)

// Log writes events and errors as structured log entries.
type Log struct {
	logger *zap.SugaredLogger
}

// NewLog returns a sink and reporter backed by logger.
func NewLog(logger *zap.SugaredLogger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Capture(_ context.Context, event Event) {
	l.logger.Infow("telemetry event",
		"event", event.Name,
		"properties", event.Properties,
		"timestamp", event.Timestamp,
	)
}

func (l *Log) Report(_ context.Context, err error, tags map[string]string) {
	kv := make([]interface{}, 0, 2+2*len(tags))
	kv = append(kv, "error", err)
	for k, v := range tags {
		kv = append(kv, k, v)
	}
	l.logger.Errorw("unexpected error", kv...)
}
