package events

import (
	"context"
	"time"
)

// Event names, appended to the configured subject prefix.
const (
	DocumentUploaded = "document.uploaded"
	DocumentRenamed  = "document.renamed"
	DocumentDeleted  = "document.deleted"
	DisplaySelected  = "display.selected"
	SettingsUpdated  = "settings.updated"
	RetentionSwept   = "retention.swept"
)

// Envelope is the JSON body of every published event.
type Envelope struct {
	Event      string    `json:"event"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

// Publisher announces domain changes to interested subscribers.
// Implementations must not block the caller for long; delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, event string, data any) error
	Close() error
}

// Nop discards every event. It is used when no event bus is configured.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
