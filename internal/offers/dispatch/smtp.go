package dispatch

import (
	"time"

	"github.com/wneessen/go-mail"

	"github.com/marinv/contractor-pm/config"
)

// NewSMTPClient builds a go-mail client. UseTLS selects STARTTLS;
// otherwise the connection uses implicit TLS from the first byte.
func NewSMTPClient(cfg config.SMTPConfig) (Sender, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.User),
		mail.WithPassword(cfg.Password),
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, mail.WithTimeout(time.Duration(cfg.TimeoutSeconds)*time.Second))
	}
	if cfg.UseTLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
	} else {
		opts = append(opts, mail.WithSSL())
	}
	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}
	return client, nil
}
