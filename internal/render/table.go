package render

import (
	"bytes"
	"html/template"
	"log"
	"sync"

	"loginattendance/internal/attendance"
)

// EventTable is the live event carrying a redrawn table body.
const EventTable = "table"

var rowsTmpl = template.Must(template.New("rows").Parse(
	`{{range .}}<tr data-id="{{.ID}}"><td>{{.Username}}</td><td>{{.LoginTime}}</td></tr>{{end}}`,
))

// Row is one displayed table row.
type Row struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	LoginTime string `json:"login_time"`
}

// Table is the display surface the renderer draws into.
type Table struct {
	mu   sync.RWMutex
	rows []Row
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{}
}

// Rows returns a copy of the displayed rows.
func (t *Table) Rows() []Row {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// HTML returns the table body markup.
func (t *Table) HTML() template.HTML {
	rows := t.Rows()
	var buf bytes.Buffer
	if err := rowsTmpl.Execute(&buf, rows); err != nil {
		log.Printf("render table rows: %v", err)
		return ""
	}
	return template.HTML(buf.String())
}

func (t *Table) replace(rows []Row) {
	t.mu.Lock()
	t.rows = rows
	t.mu.Unlock()
}

// Publisher pushes events to live viewers.
type Publisher interface {
	Publish(eventType string, payload any)
}

// Renderer projects attendance records onto a Table.
type Renderer struct {
	surface *Table
	pub     Publisher
}

// New creates a renderer. Either argument may be nil.
func New(surface *Table, pub Publisher) *Renderer {
	return &Renderer{surface: surface, pub: pub}
}

// Render clears the table and draws one row per record, in order.
// Without a surface it does nothing.
func (r *Renderer) Render(records []attendance.Record) {
	if r == nil || r.surface == nil {
		return
	}
	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, Row{ID: rec.ID, Username: rec.Username, LoginTime: rec.Timestamp})
	}
	r.surface.replace(rows)

	if r.pub != nil {
		r.pub.Publish(EventTable, map[string]any{
			"html": string(r.surface.HTML()),
			"rows": rows,
		})
	}
}
