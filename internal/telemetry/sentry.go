package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

// Sentry reports errors to Sentry and records events as breadcrumbs so a
// later error carries the user's recent actions. It owns its hub and
// never touches the package-level Sentry client.
type Sentry struct {
	hub *sentry.Hub
}

// NewSentry creates a Sentry client from opts.
func NewSentry(opts sentry.ClientOptions) (*Sentry, error) {
	if opts.Environment == "" {
		opts.Environment = "production"
	}
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("init sentry: %w", err)
	}
	return &Sentry{hub: sentry.NewHub(client, sentry.NewScope())}, nil
}

func (s *Sentry) Capture(_ context.Context, event Event) {
	s.hub.AddBreadcrumb(&sentry.Breadcrumb{
		Category:  "telemetry",
		Message:   event.Name,
		Data:      event.Properties,
		Level:     sentry.LevelInfo,
		Timestamp: event.Timestamp,
	}, nil)
}

func (s *Sentry) Report(_ context.Context, err error, tags map[string]string) {
	hub := s.hub.Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
	hub.CaptureException(err)
}

// Flush waits for buffered events to be sent.
func (s *Sentry) Flush(timeout time.Duration) bool {
	return s.hub.Flush(timeout)
}
