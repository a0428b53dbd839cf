// Package notify delivers operator-facing notices. Shoppers only ever see a
// rate list; configuration problems (missing credentials, carrier rate
// limiting) are raised to the store owner through a Notifier so they surface
// without affecting checkout.
package notify

import (
	"context"

	"shipping-rates/pkg/logger"
)

// Notifier sends a notice to the store operator. Implementations are
// fire-and-forget from the caller's point of view: a failed notice is logged
// and never fails the surrounding rate calculation.
type Notifier interface {
	Notify(ctx context.Context, subject, message string) error
}

// LogNotifier writes notices to the structured log. It is the default when
// no email delivery is configured.
type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, subject, message string) error {
	n.log.Warn("operator notice", "subject", subject, "message", message)
	return nil
}
