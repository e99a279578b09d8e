package infra

import (
	"fmt"
	"net/smtp"

	"github.com/Bojom/Warehouse/internal/config"

	"github.com/jordan-wright/email"
)

// Mailer sends plain-text notifications over SMTP. Sends go through a circuit
// breaker so an unreachable server fails fast after repeated errors.
type Mailer struct {
	host     string
	user     string
	password string
	from     string
	addr     string
	breaker  *CircuitBreaker
	send     func(e *email.Email, addr string, auth smtp.Auth) error
}

// NewMailer returns nil when SMTP is not configured.
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SMTPHost == "" {
		return nil
	}
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	if from == "" {
		from = "warehouse@" + cfg.SMTPHost
	}
	return &Mailer{
		from:     from,
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		breaker:  NewCircuitBreaker(CircuitBreakerConfig{}),
		send:     func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
	}
}

// Send delivers a plain-text email.
func (m *Mailer) Send(to, subject, body string) error {
	e := email.NewEmail()
	e.From = m.from
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	err := m.breaker.Execute(func() error { return m.send(e, m.addr, auth) })
	if err != nil {
		return fmt.Errorf("mailer: send to %s: %w", to, err)
	}
	return nil
}

// BreakerState reports the SMTP circuit breaker state.
func (m *Mailer) BreakerState() CBState { return m.breaker.State() }
