package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
)

// SMTPTransport sends plain-text mail through a relay using STARTTLS when the
// server offers it.
type SMTPTransport struct {
	host string
	opts []mail.Option
}

func NewSMTPTransport(host string, port int, user, pass string) (*SMTPTransport, error) {
	if host == "" {
		return nil, fmt.Errorf("smtp host is not set")
	}
	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if user != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(user),
			mail.WithPassword(pass),
		)
	}
	return &SMTPTransport{host: host, opts: opts}, nil
}

// Send dials a fresh connection per message; dispatches run concurrently and
// a mail.Client holds per-connection state.
func (t *SMTPTransport) Send(ctx context.Context, from string, n Notification) error {
	msg, err := buildMessage(from, n)
	if err != nil {
		return err
	}
	client, err := mail.NewClient(t.host, t.opts...)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

func buildMessage(from string, n Notification) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", from, err)
	}
	if err := msg.To(n.Recipient); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", n.Recipient, err)
	}
	msg.Subject(n.Subject)
	msg.SetBodyString(mail.TypeTextPlain, n.Body)
	return msg, nil
}
