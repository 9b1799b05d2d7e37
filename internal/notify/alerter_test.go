package notify_test

import (
	"log/slog"
	"testing"

	"github.com/justiceplatform/courtnotify/internal/commandbus"
	"github.com/justiceplatform/courtnotify/internal/notify"
)

func TestAlerter_DisabledIsNoop(t *testing.T) {
	a := notify.NewAlerter(notify.AlertSettings{Enabled: false}, slog.Default())
	// Must return without attempting any SMTP connection.
	a.Handle(commandbus.Command{Type: commandbus.CommandPrintLetter})
}

func TestAlerter_SendFailureDoesNotPanic(t *testing.T) {
	// Unreachable SMTP host: the alerter logs the failure and carries on.
	a := notify.NewAlerter(notify.AlertSettings{
		Enabled: true,
		SMTP: notify.SMTPConfig{
			Host:     "localhost",
			Port:     1, // nothing listens here
			FromAddr: "alerts@example.com",
			ToAddrs:  "staff@example.com",
		},
	}, slog.Default())

	a.Handle(commandbus.Command{
		Type:          commandbus.CommandPrintLetter,
		CorrelationID: "corr-1",
		Payload:       map[string]string{"notificationId": "n-1"},
	})
}
