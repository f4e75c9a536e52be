// Package telegraph delivers mission lifecycle notifications to chat
// platforms (Slack, Discord, etc.).
package telegraph

import (
	"context"
	"errors"
)

// Notifier is the interface platform-specific implementations satisfy. Each
// notifier owns one outbound channel to a single chat platform.
type Notifier interface {
	// Notify delivers a formatted event to the platform.
	Notify(ctx context.Context, evt FormattedEvent) error

	// Close releases the platform connection.
	Close() error
}

// FormattedEvent is a mission event formatted for display in chat.
type FormattedEvent struct {
	Title    string  // event headline (e.g. "Mission completed: Review contract")
	Body     string  // detail text
	Severity string  // "info", "warning", "error", "success"
	Color    string  // sidebar color hint (e.g. "#36a64f" for success)
	Fields   []Field // key-value metadata pairs
}

// Field is a key-value pair displayed in an event attachment.
type Field struct {
	Name  string
	Value string
	Short bool // hint: render side-by-side with another field
}

// Multi fans one notification out to several platforms. Delivery failures
// are collected; one platform failing never blocks the others.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, evt FormattedEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, evt); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close implements Notifier.
func (m Multi) Close() error {
	var errs []error
	for _, n := range m {
		if err := n.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
