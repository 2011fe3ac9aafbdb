// Package dispatch emails a rendered offer with the PDF attached.
package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/marinv/contractor-pm/config"
	"github.com/marinv/contractor-pm/pkg/logging"
)

// Offer is one outgoing email. Cc may be empty.
type Offer struct {
	To       string
	Cc       string
	Subject  string
	HTMLBody string
	Filename string
	PDF      []byte
}

// Sender submits composed messages. *mail.Client satisfies it.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SenderFactory builds a Sender for a configuration known to be complete.
type SenderFactory func(cfg config.SMTPConfig) (Sender, error)

type Dispatcher struct {
	cfg       config.SMTPConfig
	newSender SenderFactory
}

func New(cfg config.SMTPConfig) *Dispatcher {
	return NewWithSender(cfg, NewSMTPClient)
}

// NewWithSender swaps the transport, mainly for tests.
func NewWithSender(cfg config.SMTPConfig, f SenderFactory) *Dispatcher {
	return &Dispatcher{cfg: cfg, newSender: f}
}

// Configured reports whether Send can attempt a delivery at all.
func (d *Dispatcher) Configured() bool {
	return d.cfg.Configured()
}

// Send composes and submits o. It returns ErrNotConfigured without touching
// the network when SMTP is not set up, and a *DeliveryError for anything else.
func (d *Dispatcher) Send(ctx context.Context, o Offer) error {
	if !d.cfg.Configured() {
		return ErrNotConfigured
	}
	if len(o.PDF) == 0 {
		return deliveryErr("compose", errors.New("empty attachment"))
	}

	msg, err := compose(d.cfg.From(), o)
	if err != nil {
		return err
	}

	sender, err := d.newSender(d.cfg)
	if err != nil {
		return deliveryErr("connect", err)
	}

	log := logging.FromContext(ctx)
	start := time.Now()
	if err := sender.DialAndSendWithContext(ctx, msg); err != nil {
		log.Warn("offer delivery failed", slog.String("to", o.To), slog.Any("error", err))
		return deliveryErr("send", err)
	}
	log.Info("offer delivered", slog.String("to", o.To), slog.String("cc", o.Cc),
		slog.String("filename", o.Filename), slog.Duration("took", time.Since(start)))
	return nil
}

func compose(from string, o Offer) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, deliveryErr("from address", err)
	}
	if err := m.To(o.To); err != nil {
		return nil, deliveryErr("to address", err)
	}
	if o.Cc != "" {
		if err := m.Cc(o.Cc); err != nil {
			return nil, deliveryErr("cc address", err)
		}
	}
	m.Subject(o.Subject)
	m.SetDate()
	m.SetBodyString(mail.TypeTextHTML, o.HTMLBody)
	if err := m.AttachReader(o.Filename, bytes.NewReader(o.PDF), mail.WithFileContentType(mail.ContentType("application/pdf"))); err != nil {
		return nil, deliveryErr("attach", err)
	}
	return m, nil
}
