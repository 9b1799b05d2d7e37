package commandbus

import "time"

// Command types emitted by the notification dispatcher.
const (
	CommandPrintLetter = "notify.print_letter"
)

// Command is a typed outbound command envelope. CorrelationID is copied
// verbatim from the triggering inbound event so downstream consumers can
// join the event→command chain.
type Command struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	CorrelationID string            `json:"correlationId"`
	IssuedAt      time.Time         `json:"issuedAt"`
	Payload       map[string]string `json:"payload"`
}

// Listener is a function that handles a dispatched command.
type Listener func(Command)

// Sender is the emission capability consumed by the dispatcher. Sends do
// not wait for downstream acknowledgement, but a failure to enqueue is
// reported so the caller can fail its own action loudly.
type Sender interface {
	SendAsAdmin(cmd Command) error
}
