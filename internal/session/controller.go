package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"loginattendance/internal/attendance"
)

// User-visible messages.
const (
	MsgInvalidCredentials = "Incorrect username or password!"
	MsgRecorded           = "Attendance recorded successfully."
	LoginTimePrefix       = "Login Time: "
)

// ErrInvalidCredentials reports a failed login attempt.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Outcome tags a LoginResult.
type Outcome int

const (
	Failure Outcome = iota
	Success
)

func (o Outcome) String() string {
	if o == Success {
		return "success"
	}
	return "failure"
}

// LoginResult is the result of one attempt. Username, Timestamp and Record
// are set only on success.
type LoginResult struct {
	Outcome   Outcome
	Username  string
	Timestamp string
	Record    attendance.Record
}

// OK reports whether the attempt succeeded.
func (r LoginResult) OK() bool { return r.Outcome == Success }

// Err returns ErrInvalidCredentials for failed attempts.
func (r LoginResult) Err() error {
	if r.OK() {
		return nil
	}
	return ErrInvalidCredentials
}

// WelcomeMessage is the status shown after a successful login.
func WelcomeMessage(username string) string {
	return fmt.Sprintf("Welcome, %s!", username)
}

// CredentialChecker validates a username/password pair.
type CredentialChecker interface {
	IsValid(username, password string) bool
}

// TableRenderer redraws the attendance table.
type TableRenderer interface {
	Render(records []attendance.Record)
}

// Alerter plays the failed-login alert.
type Alerter interface {
	Alert()
}

// Options tune a Controller. Zero values pick defaults.
type Options struct {
	Now      func() time.Time
	Layout   string
	Location *time.Location
	Alerter  Alerter
}

// Controller handles login attempts and logout resets.
type Controller struct {
	mu       sync.Mutex
	creds    CredentialChecker
	log      *attendance.Log
	renderer TableRenderer
	board    *Board
	alert    Alerter
	now      func() time.Time
	layout   string
	loc      *time.Location
}

// NewController wires a controller. renderer and opts.Alerter may be nil.
func NewController(creds CredentialChecker, log *attendance.Log, renderer TableRenderer, board *Board, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Layout == "" {
		opts.Layout = attendance.DefaultLayout
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Controller{
		creds:    creds,
		log:      log,
		renderer: renderer,
		board:    board,
		alert:    opts.Alerter,
		now:      opts.Now,
		layout:   opts.Layout,
		loc:      opts.Location,
	}
}

// AttemptLogin checks the credentials. On success it appends a record,
// redraws the table and updates the page; on failure it flashes an error
// and sounds the alert. Attempts are processed one at a time.
func (c *Controller) AttemptLogin(username, password string) LoginResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.board.Update(func(v *View) {
		v.Inputs = Inputs{Username: username, Password: password}
	})

	if !c.creds.IsValid(username, password) {
		c.board.Flash(MsgInvalidCredentials, ToneError)
		if c.alert != nil {
			c.alert.Alert()
		}
		return LoginResult{Outcome: Failure}
	}

	rec := attendance.NewRecord(username, c.now().In(c.loc), c.layout)
	c.log.Append(rec)

	c.board.Flash(WelcomeMessage(username), ToneSuccess)
	c.board.Update(func(v *View) {
		v.LoginTime = LoginTimePrefix + rec.Timestamp
		v.AttendanceStatus = MsgRecorded
		v.ShowDownload = true
		v.ShowLogout = true
	})

	if c.renderer != nil {
		c.renderer.Render(c.log.All())
	}

	return LoginResult{
		Outcome:   Success,
		Username:  username,
		Timestamp: rec.Timestamp,
		Record:    rec,
	}
}

// Reset clears the transient page state. The attendance log is untouched.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.board.Reset()
}

// Records returns a snapshot of the attendance log.
func (c *Controller) Records() []attendance.Record {
	return c.log.All()
}

// Len returns the number of attendance records.
func (c *Controller) Len() int {
	return c.log.Len()
}

// View returns the current page state.
func (c *Controller) View() View {
	return c.board.View()
}
