package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock records sleeps and can hold a sleeper until released.
type fakeClock struct {
	now     time.Time
	entered chan struct{}
	release chan struct{}

	mu     sync.Mutex
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func newBlockingClock() *fakeClock {
	c := newFakeClock()
	c.entered = make(chan struct{}, 1)
	c.release = make(chan struct{})
	return c
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(d time.Duration) {
	c.mu.Lock()
	c.sleeps = append(c.sleeps, d)
	c.mu.Unlock()

	if c.entered != nil {
		c.entered <- struct{}{}
		<-c.release
	}
}

type staticMemories struct {
	items []core.Memory
	err   error
}

func (s *staticMemories) All(ctx context.Context) ([]core.Memory, error) {
	return s.items, s.err
}

type firstPicker struct{}

func (firstPicker) Intn(int) int { return 0 }

type panickingComposer struct{}

func (panickingComposer) Compose(string, []core.Memory, int) string {
	panic("template pool exhausted")
}

type recordingPresenter struct {
	mu    sync.Mutex
	ids   []string
	turns []core.Turn
	err   error
}

func (r *recordingPresenter) Present(ctx context.Context, sessionID string, turn core.Turn) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, sessionID)
	r.turns = append(r.turns, turn)
	return r.err
}

var noDelay = Delay{}

func TestSubmit_RepliesWithMatchedMemory(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock()
	presenter := &recordingPresenter{}
	mems := &staticMemories{items: []core.Memory{{ID: 1, Text: "I love trekking in Colorado"}}}
	s := NewSession("s1", mems, reply.NewComposer(firstPicker{}), clock, noDelay, presenter)

	got, err := s.Submit(ctx, "  my Colorado trip  ")
	require.NoError(t, err)

	assert.Contains(t, got, `I remember you telling me: "I love trekking in Colorado"`)
	require.Len(t, presenter.turns, 2)
	assert.Equal(t, core.Turn{Sender: core.SenderUser, Text: "my Colorado trip", Timestamp: clock.now}, presenter.turns[0])
	assert.Equal(t, core.Turn{Sender: core.SenderBot, Text: got, Timestamp: clock.now}, presenter.turns[1])
	assert.Equal(t, []string{"s1", "s1"}, presenter.ids)
	assert.Equal(t, presenter.turns, s.Transcript())
	assert.False(t, s.Busy())
}

func TestSubmit_EmptyInput(t *testing.T) {
	presenter := &recordingPresenter{}
	s := NewSession("s1", &staticMemories{}, reply.NewComposer(firstPicker{}), newFakeClock(), noDelay, presenter)

	for _, q := range []string{"", "   ", "\t\n"} {
		_, err := s.Submit(context.Background(), q)
		assert.ErrorIs(t, err, core.ErrEmptyInput)
	}
	assert.Empty(t, presenter.turns)
	assert.Empty(t, s.Transcript())
}

func TestSubmit_SingleFlight(t *testing.T) {
	ctx := context.Background()
	clock := newBlockingClock()
	presenter := &recordingPresenter{}
	s := NewSession("s1", &staticMemories{}, reply.NewComposer(firstPicker{}), clock, noDelay, presenter)

	done := make(chan string, 1)
	go func() {
		r, err := s.Submit(ctx, "ping")
		assert.NoError(t, err)
		done <- r
	}()

	<-clock.entered
	assert.True(t, s.Busy())

	_, err := s.Submit(ctx, "pong")
	assert.ErrorIs(t, err, core.ErrBusy)

	close(clock.release)
	first := <-done

	assert.NotEmpty(t, first)
	assert.False(t, s.Busy())

	transcript := s.Transcript()
	require.Len(t, transcript, 2)
	assert.Equal(t, "ping", transcript[0].Text)
	assert.Equal(t, first, transcript[1].Text)
	for _, turn := range presenter.turns {
		assert.NotEqual(t, "pong", turn.Text)
	}
}

func TestSubmit_AcceptsAgainAfterCompletion(t *testing.T) {
	ctx := context.Background()
	s := NewSession("s1", &staticMemories{}, reply.NewComposer(firstPicker{}), newFakeClock(), noDelay)

	_, err := s.Submit(ctx, "first")
	require.NoError(t, err)
	_, err = s.Submit(ctx, "second")
	require.NoError(t, err)

	transcript := s.Transcript()
	require.Len(t, transcript, 4)
	assert.Equal(t, "first", transcript[0].Text)
	assert.Equal(t, "second", transcript[2].Text)
}

func TestSubmit_FallbackOnMemoryError(t *testing.T) {
	s := NewSession("s1", &staticMemories{err: errors.New("storage offline")}, reply.NewComposer(firstPicker{}), newFakeClock(), noDelay)

	got, err := s.Submit(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, got)
	assert.False(t, s.Busy())
}

func TestSubmit_FallbackOnPanic(t *testing.T) {
	presenter := &recordingPresenter{}
	s := NewSession("s1", &staticMemories{}, panickingComposer{}, newFakeClock(), noDelay, presenter)

	got, err := s.Submit(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, FallbackReply, got)
	assert.False(t, s.Busy())

	require.Len(t, presenter.turns, 2)
	assert.Equal(t, FallbackReply, presenter.turns[1].Text)

	// busy flag was released, so the next query is accepted
	_, err = s.Submit(context.Background(), "again")
	assert.NoError(t, err)
}

func TestSubmit_PresenterErrorDoesNotFail(t *testing.T) {
	presenter := &recordingPresenter{err: errors.New("closed")}
	s := NewSession("s1", &staticMemories{}, reply.NewComposer(firstPicker{}), newFakeClock(), noDelay, presenter)

	got, err := s.Submit(context.Background(), "help")
	require.NoError(t, err)
	assert.Equal(t, reply.HelpReply, got)
}

func TestSubmit_LatencyWithinRange(t *testing.T) {
	clock := newFakeClock()
	delay := Delay{Min: time.Second, Max: 3 * time.Second}
	s := NewSession("s1", &staticMemories{}, reply.NewComposer(firstPicker{}), clock, delay)

	for i := 0; i < 20; i++ {
		_, err := s.Submit(context.Background(), "zzz")
		require.NoError(t, err)
	}

	require.Len(t, clock.sleeps, 20)
	for _, d := range clock.sleeps {
		assert.GreaterOrEqual(t, d, delay.Min)
		assert.LessOrEqual(t, d, delay.Max)
	}
}

func TestSubmit_FixedLatency(t *testing.T) {
	clock := newFakeClock()
	s := NewSession("s1", &staticMemories{}, reply.NewComposer(firstPicker{}), clock, Delay{Min: 2 * time.Second, Max: 2 * time.Second})

	_, err := s.Submit(context.Background(), "zzz")
	require.NoError(t, err)
	assert.Equal(t, []time.Duration{2 * time.Second}, clock.sleeps)
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	clock := newBlockingClock()
	busy := NewSession("a", &staticMemories{}, reply.NewComposer(firstPicker{}), clock, noDelay)
	idle := NewSession("b", &staticMemories{}, reply.NewComposer(firstPicker{}), newFakeClock(), noDelay)

	done := make(chan struct{})
	go func() {
		_, _ = busy.Submit(ctx, "ping")
		close(done)
	}()
	<-clock.entered

	_, err := idle.Submit(ctx, "pong")
	assert.NoError(t, err)

	close(clock.release)
	<-done
}
