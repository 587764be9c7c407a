// Package telemetry carries product analytics events and error reports.
// Sinks are plain values handed to the components that emit events, so
// tests and alternate deployments swap them without touching globals.
package telemetry

import (
	"context"
	"time"
)

// Event names emitted by the API and the dashboard.
const (
	EventTransactionAdded   = "transaction_added"
	EventTransactionUpdated = "transaction_updated"
	EventTransactionDeleted = "transaction_deleted"
	EventBudgetAdded        = "budget_added"
	EventBudgetUpdated      = "budget_updated"
	EventBudgetDeleted      = "budget_deleted"
	EventDashboardViewed    = "dashboard_viewed"
)

// Event is one analytics occurrence.
type Event struct {
	Name       string                 `json:"name"`
	Properties map[string]interface{} `json:"properties,omitempty"`
	Timestamp  time.Time              `json:"timestamp"`
}

// NewEvent returns an event stamped with the current time.
func NewEvent(name string, props map[string]interface{}) Event {
	return Event{Name: name, Properties: props, Timestamp: time.Now().UTC()}
}

// Sink receives events. Capture must not block the caller for long and
// never fails the operation that emitted the event.
type Sink interface {
	Capture(ctx context.Context, event Event)
}

// Reporter receives unexpected errors together with request tags.
type Reporter interface {
	Report(ctx context.Context, err error, tags map[string]string)
}

// Nop discards everything.
type Nop struct{}

func (Nop) Capture(context.Context, Event) {}

func (Nop) Report(context.Context, error, map[string]string) {}

type multiSink []Sink

// Multi fans an event out to every sink in order.
func Multi(sinks ...Sink) Sink {
	return multiSink(sinks)
}

func (m multiSink) Capture(ctx context.Context, event Event) {
	for _, s := range m {
		s.Capture(ctx, event)
	}
}

type multiReporter []Reporter

// MultiReporter fans an error out to every reporter in order.
func MultiReporter(reporters ...Reporter) Reporter {
	return multiReporter(reporters)
}

func (m multiReporter) Report(ctx context.Context, err error, tags map[string]string) {
	for _, r := range m {
		r.Report(ctx, err, tags)
	}
}
