package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventView is the live event carrying the current View.
const EventView = "view"

// DefaultClearAfter is how long a flashed status stays visible.
const DefaultClearAfter = 3 * time.Second

// Tone colors a status message.
type Tone string

const (
	ToneSuccess Tone = "success"
	ToneError   Tone = "error"
)

// Status is the transient message region.
type Status struct {
	Text    string `json:"text"`
	Tone    Tone   `json:"tone"`
	Visible bool   `json:"visible"`
}

// Inputs mirrors the login form fields.
type Inputs struct {
	Username string `json:"username"`
	Password string `json:"-"`
}

// View is everything on the page except the attendance table.
type View struct {
	Status           Status `json:"status"`
	LoginTime        string `json:"login_time"`
	AttendanceStatus string `json:"attendance_status"`
	Inputs           Inputs `json:"inputs"`
	ShowDownload     bool   `json:"show_download"`
	ShowLogout       bool   `json:"show_logout"`
}

// Scheduler runs f once after d without blocking the caller.
type Scheduler func(d time.Duration, f func())

// AfterFunc schedules with time.AfterFunc.
func AfterFunc(d time.Duration, f func()) {
	time.AfterFunc(d, f)
}

// Publisher pushes events to live viewers. Publish is called with the board
// locked and must not block or call back into the board.
type Publisher interface {
	Publish(eventType string, payload any)
}

// Board holds the transient UI state. Each flashed status carries a token;
// a later flash or a reset replaces the token so older clears do nothing.
type Board struct {
	mu         sync.Mutex
	view       View
	token      string
	clearAfter time.Duration
	schedule   Scheduler
	pub        Publisher
}

// NewBoard creates a board. A nil scheduler uses AfterFunc; a non-positive
// clearAfter uses DefaultClearAfter.
func NewBoard(clearAfter time.Duration, schedule Scheduler, pub Publisher) *Board {
	if clearAfter <= 0 {
		clearAfter = DefaultClearAfter
	}
	if schedule == nil {
		schedule = AfterFunc
	}
	return &Board{clearAfter: clearAfter, schedule: schedule, pub: pub}
}

// View returns the current state.
func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

// Flash shows text and schedules it to be hidden. It returns the token of
// the scheduled clear.
func (b *Board) Flash(text string, tone Tone) string {
	token := uuid.NewString()
	b.mu.Lock()
	b.view.Status = Status{Text: text, Tone: tone, Visible: true}
	b.token = token
	b.publish(b.view)
	b.mu.Unlock()

	b.schedule(b.clearAfter, func() { b.clear(token) })
	return token
}

// Update applies fn to the view.
func (b *Board) Update(fn func(v *View)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.view)
	b.publish(b.view)
}

// Reset hides the status, empties the login time, attendance status and
// input fields, and hides the logout control.
func (b *Board) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.view.Status.Visible = false
	b.view.LoginTime = ""
	b.view.AttendanceStatus = ""
	b.view.Inputs = Inputs{}
	b.view.ShowLogout = false
	b.token = ""
	b.publish(b.view)
}

func (b *Board) clear(token string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if token != b.token {
		return
	}
	b.view.Status.Visible = false
	b.token = ""
	b.publish(b.view)
}

// publish must be called with b.mu held so viewers receive views in the
// order the board applied them.
func (b *Board) publish(v View) {
	if b.pub != nil {
		b.pub.Publish(EventView, v)
	}
}
