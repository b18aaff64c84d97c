package attendance

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultLayout renders timestamps like a US-English toLocaleString.
const DefaultLayout = "1/2/2006, 3:04:05 PM"

// Record is one successful login.
type Record struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Timestamp string    `json:"timestamp"`
	At        time.Time `json:"at"`
}

// NewRecord builds a record for username at the given instant, formatting the
// timestamp with layout in the instant's location.
func NewRecord(username string, at time.Time, layout string) Record {
	if layout == "" {
		layout = DefaultLayout
	}
	return Record{
		ID:        uuid.NewString(),
		Username:  username,
		Timestamp: at.Format(layout),
		At:        at,
	}
}

// Log is an append-only, ordered list of records held in memory.
type Log struct {
	mu      sync.RWMutex
	records []Record
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds a record at the end of the log.
func (l *Log) Append(rec Record) {
	l.mu.Lock()
	l.records = append(l.records, rec)
	l.mu.Unlock()
}

// All returns a snapshot of the records in insertion order.
func (l *Log) All() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

// IsEmpty reports whether no login has been recorded yet.
func (l *Log) IsEmpty() bool {
	return l.Len() == 0
}
