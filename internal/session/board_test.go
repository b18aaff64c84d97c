package session_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"loginattendance/internal/session"
)

type viewRecorder struct {
	mu    sync.Mutex
	views []session.View
}

func (r *viewRecorder) Publish(eventType string, payload any) {
	if eventType != session.EventView {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views = append(r.views, payload.(session.View))
}

func (r *viewRecorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.views)
}

func TestBoard_FlashPublishesView(t *testing.T) {
	rec := &viewRecorder{}
	board := session.NewBoard(time.Hour, func(time.Duration, func()) {}, rec)

	token := board.Flash("hello", session.ToneSuccess)

	assert.NotEmpty(t, token)
	assert.Equal(t, 1, rec.len())
	assert.Equal(t, "hello", rec.views[0].Status.Text)
}

func TestBoard_FlashReturnsFreshTokens(t *testing.T) {
	board := session.NewBoard(time.Hour, func(time.Duration, func()) {}, nil)

	assert.NotEqual(t, board.Flash("a", session.ToneError), board.Flash("b", session.ToneError))
}

func TestBoard_ClearsWithRealTimer(t *testing.T) {
	rec := &viewRecorder{}
	board := session.NewBoard(10*time.Millisecond, nil, rec)

	board.Flash("bye", session.ToneError)
	assert.True(t, board.View().Status.Visible)

	assert.Eventually(t, func() bool {
		return !board.View().Status.Visible
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 2, rec.len())
}

func TestBoard_UpdateAndReset(t *testing.T) {
	board := session.NewBoard(0, func(time.Duration, func()) {}, nil)
	board.Update(func(v *session.View) {
		v.LoginTime = "Login Time: x"
		v.ShowDownload = true
		v.ShowLogout = true
		v.Inputs = session.Inputs{Username: "admin", Password: "1234"}
	})

	board.Reset()

	v := board.View()
	assert.Empty(t, v.LoginTime)
	assert.Empty(t, v.Inputs.Password)
	assert.True(t, v.ShowDownload)
	assert.False(t, v.ShowLogout)
}

// gatedPublisher parks the first hidden-status publish until hold is closed.
type gatedPublisher struct {
	mu     sync.Mutex
	views  []session.View
	parked bool
	held   chan struct{}
	hold   chan struct{}
}

func (p *gatedPublisher) Publish(eventType string, payload any) {
	if eventType != session.EventView {
		return
	}
	v := payload.(session.View)
	p.mu.Lock()
	park := !v.Status.Visible && !p.parked
	p.parked = p.parked || park
	p.mu.Unlock()
	if park {
		close(p.held)
		<-p.hold
	}
	p.mu.Lock()
	p.views = append(p.views, v)
	p.mu.Unlock()
}

func (p *gatedPublisher) last() session.View {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.views[len(p.views)-1]
}

func TestBoard_ViewersNeverSeeStaleClearAfterNewerFlash(t *testing.T) {
	pub := &gatedPublisher{held: make(chan struct{}), hold: make(chan struct{})}
	sched := &manualScheduler{}
	board := session.NewBoard(time.Hour, sched.schedule, pub)

	board.Flash("first", session.ToneSuccess)
	go sched.fire(0)
	<-pub.held

	flashed := make(chan struct{})
	go func() {
		board.Flash("second", session.ToneSuccess)
		close(flashed)
	}()

	time.Sleep(20 * time.Millisecond)
	close(pub.hold)

	select {
	case <-flashed:
	case <-time.After(time.Second):
		t.Fatal("second flash did not complete")
	}

	current := board.View()
	assert.Equal(t, session.Status{Text: "second", Tone: session.ToneSuccess, Visible: true}, current.Status)
	assert.Equal(t, current, pub.last())
}
