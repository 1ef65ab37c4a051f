package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSession struct {
	queries []string
	err     error
}

func (s *stubSession) ID() string { return "cli-test" }

func (s *stubSession) Submit(ctx context.Context, query string) (string, error) {
	s.queries = append(s.queries, query)
	return "ok", s.err
}

type stubRouter struct {
	inputs []string
}

func (r *stubRouter) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if !strings.HasPrefix(input, "/") {
		return "", false
	}
	r.inputs = append(r.inputs, sessionID+" "+input)
	return "command output", true
}

func (r *stubRouter) ListCommands() []core.Command { return nil }

func newTestReadLine() (*ReadLine, *stubSession, *stubRouter, *bytes.Buffer) {
	s := &stubSession{}
	router := &stubRouter{}
	out := &bytes.Buffer{}
	return &ReadLine{router: router, session: s, out: out}, s, router, out
}

func TestHandleLine(t *testing.T) {
	ctx := context.Background()
	r, s, router, out := newTestReadLine()

	assert.False(t, r.handleLine(ctx, "   "))
	assert.Empty(t, s.queries)
	assert.Empty(t, out.String())

	assert.False(t, r.handleLine(ctx, "  tell me about my cat  "))
	assert.Equal(t, []string{"tell me about my cat"}, s.queries)
	assert.Contains(t, out.String(), "Bot is thinking...")

	out.Reset()
	assert.False(t, r.handleLine(ctx, "/memories"))
	assert.Equal(t, []string{"cli-test /memories"}, router.inputs)
	assert.Equal(t, "command output\n", out.String())
	assert.Len(t, s.queries, 1)

	assert.True(t, r.handleLine(ctx, " exit "))
}

func TestHandleLine_BusyIsSilent(t *testing.T) {
	r, s, _, out := newTestReadLine()
	s.err = core.ErrBusy

	assert.False(t, r.handleLine(context.Background(), "hello"))
	assert.Equal(t, 1, strings.Count(out.String(), "\n"))
}

func TestPrinter(t *testing.T) {
	out := &bytes.Buffer{}
	p := NewPrinter(out)
	ts := time.Date(2024, 1, 1, 9, 5, 7, 0, time.Local)

	require.NoError(t, p.Present(context.Background(), "s", core.Turn{Sender: core.SenderUser, Text: "hi there", Timestamp: ts}))
	require.NoError(t, p.Present(context.Background(), "s", core.Turn{Sender: core.SenderBot, Text: "Hello! How can I help you today?", Timestamp: ts}))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "[USER] 09:05:07")
	assert.True(t, strings.HasSuffix(lines[0], " hi there"))
	assert.Contains(t, lines[1], "[BOT] 09:05:07")
	assert.True(t, strings.HasSuffix(lines[1], " Hello! How can I help you today?"))
}
