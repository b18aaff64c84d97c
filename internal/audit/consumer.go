package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	"loginattendance/internal/queue"
)

// LoginEvent is the body of a login message.
type LoginEvent struct {
	RecordID  string `json:"record_id"`
	Username  string `json:"username"`
	Timestamp string `json:"timestamp"`
}

// ExportEvent is the body of an export message.
type ExportEvent struct {
	Records int `json:"records"`
}

// Consumer writes one audit line per attendance event.
type Consumer struct {
	q   queue.Queue
	out *log.Logger
}

// NewConsumer writes to w with the standard log flags.
func NewConsumer(q queue.Queue, w io.Writer) *Consumer {
	return &Consumer{q: q, out: log.New(w, "audit: ", log.LstdFlags|log.Lmsgprefix)}
}

// Run drains the queue until ctx is done. It returns the number of events
// handled.
func (c *Consumer) Run(ctx context.Context) (int, error) {
	messages, err := c.q.Consume(ctx)
	if err != nil {
		return 0, fmt.Errorf("consume: %w", err)
	}
	n := 0
	for msg := range messages {
		if line, ok := Describe(msg); ok {
			c.out.Println(line)
			n++
		}
	}
	return n, nil
}

// Describe renders a message as an audit line. Unknown or malformed
// messages are skipped.
func Describe(msg queue.Message) (string, bool) {
	switch msg.Type {
	case queue.TypeLogin:
		var evt LoginEvent
		if err := json.Unmarshal(msg.Body, &evt); err != nil {
			log.Printf("audit: bad login event: %v", err)
			return "", false
		}
		return fmt.Sprintf("login user=%s at=%q record=%s", evt.Username, evt.Timestamp, evt.RecordID), true
	case queue.TypeExport:
		var evt ExportEvent
		if err := json.Unmarshal(msg.Body, &evt); err != nil {
			log.Printf("audit: bad export event: %v", err)
			return "", false
		}
		return fmt.Sprintf("export records=%d", evt.Records), true
	default:
		return "", false
	}
}
