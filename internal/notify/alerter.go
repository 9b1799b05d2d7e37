package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/justiceplatform/courtnotify/internal/commandbus"
)

// alertSubjectPrefix is prepended to every admin alert subject.
const alertSubjectPrefix = "Courtnotify Alert - "

// SMTPConfig holds connection parameters for the admin alert mailer.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromAddr   string
	ToAddrs    string
	Encryption string // "none", "starttls", "ssl_tls"
}

// AlertSettings controls the admin alerting observer. Disabled by default.
type AlertSettings struct {
	Enabled bool
	SMTP    SMTPConfig
}

// Alerter emails administrative staff about commands issued on the bus.
// It is an observer outside the dispatch path: its own failures are logged,
// never propagated, and never affect the dispatch outcome.
type Alerter struct {
	settings AlertSettings
	logger   *slog.Logger
}

// NewAlerter creates an Alerter with the given settings.
func NewAlerter(settings AlertSettings, logger *slog.Logger) *Alerter {
	return &Alerter{settings: settings, logger: logger}
}

// Handle is the command-bus listener. It formats a summary of the command
// and mails it to the configured administrative staff addresses.
func (a *Alerter) Handle(cmd commandbus.Command) {
	if !a.settings.Enabled {
		return
	}

	subject := alertSubjectPrefix + humanSubject(cmd.Type)
	body := formatCommandBody(cmd)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.send(ctx, subject, body); err != nil {
		a.logger.Error("admin alert delivery failed",
			"command_type", cmd.Type,
			"correlation_id", cmd.CorrelationID,
			"error", err)
	}
}

// humanSubject returns a readable subject for known command types; unknown
// types fall back to the raw type string.
func humanSubject(commandType string) string {
	switch commandType {
	case commandbus.CommandPrintLetter:
		return "Boxwork Letter Sent To Print"
	}
	return commandType
}

func formatCommandBody(cmd commandbus.Command) string {
	keys := make([]string, 0, len(cmd.Payload))
	for k := range cmd.Payload {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{
		fmt.Sprintf("command: %s", cmd.Type),
		fmt.Sprintf("correlationId: %s", cmd.CorrelationID),
		fmt.Sprintf("issuedAt: %s", cmd.IssuedAt.Format(time.RFC3339)),
	}
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, cmd.Payload[k]))
	}
	return strings.Join(lines, "\n")
}

func (a *Alerter) send(ctx context.Context, subject, body string) error {
	cfg := a.settings.SMTP

	m := mail.NewMsg()
	if err := m.From(cfg.FromAddr); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	for _, r := range strings.Split(cfg.ToAddrs, ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if err := m.To(r); err != nil {
			return fmt.Errorf("invalid recipient %q: %w", r, err)
		}
	}

	m.Subject(subject)
	m.SetBodyString(mail.TypeTextPlain, body)

	c, err := mail.NewClient(cfg.Host,
		mail.WithPort(cfg.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.Username),
		mail.WithPassword(cfg.Password),
		mail.WithTLSPolicy(tlsPolicyFromEncryption(cfg.Encryption)),
	)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}
	return c.DialAndSendWithContext(ctx, m)
}

// tlsPolicyFromEncryption converts the encryption string to a go-mail TLSPolicy.
func tlsPolicyFromEncryption(enc string) mail.TLSPolicy {
	switch enc {
	case "ssl_tls":
		return mail.TLSMandatory
	case "starttls":
		return mail.TLSOpportunistic
	default:
		return mail.NoTLS
	}
}
