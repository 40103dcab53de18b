package notification

import "time"

const (
	StatusPending = "pending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

// Event is one row of the notification outbox. Rows are written in the same
// database as the state they describe and shipped to Kafka by the worker, so
// a crash between commit and publish loses nothing.
type Event struct {
	ID          string
	RequestID   string
	EventType   string
	Topic       string
	Recipient   string
	Payload     []byte
	Status      string
	RetryCount  int
	NextRetryAt time.Time
}
