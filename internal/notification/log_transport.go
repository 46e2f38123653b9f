package notification

import (
	"context"
	"log/slog"
)

// LogTransport writes events to the structured log. It is the transport when
// no broker is configured.
type LogTransport struct {
	logger *slog.Logger
}

func NewLogTransport(logger *slog.Logger) *LogTransport {
	return &LogTransport{logger: logger}
}

func (t *LogTransport) Send(ctx context.Context, event Event) error {
	attrs := []any{
		"event_id", event.ID,
		"kind", string(event.Kind),
		"pack_id", event.PackID.String(),
		"occurred_at", event.OccurredAt,
	}
	if !event.Recipient.IsNil() {
		attrs = append(attrs, "recipient", event.Recipient.String())
	}
	for k, v := range event.Attributes {
		attrs = append(attrs, "attr_"+k, v)
	}
	t.logger.InfoContext(ctx, "notification", attrs...)
	return nil
}
