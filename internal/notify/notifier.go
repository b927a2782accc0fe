// Package notify delivers the internal summary of a finished intake
// conversation to the business, once and on a best-effort basis.
package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"cleaning-intake/internal/metrics"
)

// Subject is used for every notification.
const Subject = "Neue Gebäudereinigungs-Anfrage"

var ErrNoRecipient = errors.New("no notification recipient configured")

// Notification is built once per qualifying reply and handed to a Transport.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
}

// Transport performs one delivery attempt.
type Transport interface {
	Send(ctx context.Context, from string, n Notification) error
}

type Notifier struct {
	transport Transport
	from      string
	recipient string
	logger    *zap.Logger
	metrics   *metrics.Metrics

	wg sync.WaitGroup
}

// New returns a Notifier. With an empty recipient or a nil transport every
// call is a no-op. m may be nil.
func New(t Transport, from, recipient string, logger *zap.Logger, m *metrics.Metrics) *Notifier {
	if t == nil {
		recipient = ""
	}
	return &Notifier{
		transport: t,
		from:      from,
		recipient: recipient,
		logger:    logger,
		metrics:   m,
	}
}

// Enabled reports whether notifications will be attempted.
func (n *Notifier) Enabled() bool {
	return n.recipient != ""
}

// Notify makes exactly one delivery attempt and returns its outcome.
func (n *Notifier) Notify(ctx context.Context, body string) error {
	if !n.Enabled() {
		return ErrNoRecipient
	}
	err := n.transport.Send(ctx, n.from, Notification{
		Recipient: n.recipient,
		Subject:   Subject,
		Body:      body,
	})
	if err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

// Dispatch starts delivery in the background and returns immediately. The
// outcome only reaches the log and the metrics.
func (n *Notifier) Dispatch(body string) {
	if !n.Enabled() {
		n.logger.Debug("notification skipped, no recipient configured")
		n.record("skipped")
		return
	}

	n.wg.Add(1)
	if n.metrics != nil {
		n.metrics.NotificationsInFlight.Inc()
	}
	go func() {
		defer n.wg.Done()
		if n.metrics != nil {
			defer n.metrics.NotificationsInFlight.Dec()
		}
		defer func() {
			if r := recover(); r != nil {
				n.logger.Error("notification transport panicked", zap.Any("panic", r))
				n.record("failed")
			}
		}()

		if err := n.Notify(context.Background(), body); err != nil {
			n.logger.Error("failed to send summary notification",
				zap.String("recipient", n.recipient),
				zap.Error(err),
			)
			n.record("failed")
			return
		}
		n.logger.Info("summary notification sent", zap.String("recipient", n.recipient))
		n.record("sent")
	}()
}

// Wait blocks until every dispatched notification has finished. It is only
// used on shutdown.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) record(outcome string) {
	if n.metrics != nil {
		n.metrics.RecordNotification(outcome)
	}
}
