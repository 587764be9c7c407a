package main

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/piyush-pb/Personal-Finance-Tracker/internal/config"
	"github.com/piyush-pb/Personal-Finance-Tracker/internal/telemetry"
)

// telemetryStack is the sink and reporter chosen by configuration, plus
// whatever needs releasing on shutdown.
type telemetryStack struct {
	Events   telemetry.Sink
	Reporter telemetry.Reporter
	closers  []func()
}

func newTelemetry(cfg *config.Config, log *zap.SugaredLogger) (*telemetryStack, error) {
	logSink := telemetry.NewLog(log)
	ts := &telemetryStack{Events: telemetry.Nop{}, Reporter: logSink}

	sinks := []telemetry.Sink{}
	switch cfg.TelemetrySink {
	case config.SinkLog:
		sinks = append(sinks, logSink)
	case config.SinkAMQP:
		publisher, err := telemetry.NewAMQP(cfg.AMQPURL, cfg.AMQPExchange, log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, publisher)
		ts.closers = append(ts.closers, func() { _ = publisher.Close() })
	}

	if cfg.SentryDSN != "" {
		s, err := telemetry.NewSentry(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.Env,
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s)
		ts.Reporter = telemetry.MultiReporter(logSink, s)
		ts.closers = append(ts.closers, func() { s.Flush(2 * time.Second) })
	}

	if len(sinks) > 0 {
		ts.Events = telemetry.Multi(sinks...)
	}
	return ts, nil
}

// Close flushes and releases every backend.
func (t *telemetryStack) Close() {
	for _, c := range t.closers {
		c()
	}
}
