// Package analytics forwards product usage events to PostHog. Without an API key every call is a no-op.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// Tracker is a PostHog client that may be disabled.
type Tracker struct {
	client posthog.Client
	logger *slog.Logger
}

// NewTracker creates a tracker for apiKey. An empty key yields a disabled tracker.
func NewTracker(apiKey, endpoint string, logger *slog.Logger) (*Tracker, error) {
	if apiKey == "" {
		logger.Info("PostHog API key is empty, usage analytics disabled.")
		return &Tracker{logger: logger}, nil
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		return nil, err
	}
	logger.Info("Usage analytics enabled", slog.String("endpoint", endpoint))
	return &Tracker{client: client, logger: logger}, nil
}

// Enabled reports whether events are actually sent.
func (t *Tracker) Enabled() bool {
	return t != nil && t.client != nil
}

// Track enqueues an event attributed to distinctID. Delivery happens in the background.
func (t *Tracker) Track(distinctID, event string, properties map[string]any) {
	if !t.Enabled() {
		return
	}
	err := t.client.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		t.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes pending events.
func (t *Tracker) Close() {
	if !t.Enabled() {
		return
	}
	if err := t.client.Close(); err != nil {
		t.logger.Warn("Failed to flush analytics events", slog.String("error", err.Error()))
	}
}
