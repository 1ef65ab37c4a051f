package session

import (
	"context"
	"math/rand"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/internal/service/memory"
	"github.com/sandevgo/memobot/pkg/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const FallbackReply = "Sorry, I encountered an error processing your message."

var tracer = otel.Tracer("github.com/sandevgo/memobot/internal/service/session")

type MemorySource interface {
	All(ctx context.Context) ([]core.Memory, error)
}

type Composer interface {
	Compose(query string, matches []core.Memory, total int) string
}

// Session answers one query at a time. A Submit arriving while another is
// in flight is dropped with core.ErrBusy.
type Session struct {
	id         string
	memories   MemorySource
	composer   Composer
	clock      Clock
	delay      Delay
	presenters []core.Presenter

	busy atomic.Bool
	// only touched while busy is held
	rnd *rand.Rand

	mu         sync.Mutex
	transcript []core.Turn
}

func NewSession(
	id string,
	memories MemorySource,
	composer Composer,
	clock Clock,
	delay Delay,
	presenters ...core.Presenter,
) *Session {
	return &Session{
		id:         id,
		memories:   memories,
		composer:   composer,
		clock:      clock,
		delay:      delay,
		presenters: presenters,
		rnd:        rand.New(rand.NewSource(clock.Now().UnixNano())),
	}
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) Busy() bool {
	return s.busy.Load()
}

// Submit answers query. It returns core.ErrEmptyInput for a blank query and
// core.ErrBusy while another query is being answered; in both cases nothing
// is emitted. Once accepted the query cannot be cancelled and always yields
// a reply, FallbackReply if composing it failed.
func (s *Session) Submit(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", core.ErrEmptyInput
	}

	if !s.busy.CompareAndSwap(false, true) {
		log.FromCtx(ctx).Debug().Str("session", s.id).Msg("dropping query, session busy")
		return "", core.ErrBusy
	}
	defer s.busy.Store(false)

	ctx, span := tracer.Start(ctx, "session.submit", trace.WithAttributes(
		attribute.String("session.id", s.id),
		attribute.Int("query.length", len(query)),
	))
	defer span.End()

	s.emit(ctx, core.SenderUser, query)

	reply, err := s.respond(ctx, query)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Str("session", s.id).Msg("failed to compose reply")
		span.RecordError(err)
		span.SetStatus(codes.Error, "fallback reply")
		reply = FallbackReply
	}

	s.emit(ctx, core.SenderBot, reply)
	return reply, nil
}

func (s *Session) respond(ctx context.Context, query string) (reply string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &panicError{value: r}
		}
	}()

	s.clock.Sleep(s.latency())

	all, err := s.memories.All(ctx)
	if err != nil {
		return "", err
	}

	matches := memory.FindRelevant(query, all)
	log.FromCtx(ctx).Debug().
		Str("session", s.id).
		Int("matches", len(matches)).
		Int("total", len(all)).
		Msg("relevant memories selected")

	return s.composer.Compose(query, matches, len(all)), nil
}

func (s *Session) latency() time.Duration {
	spread := s.delay.Max - s.delay.Min
	if spread <= 0 {
		return s.delay.Min
	}
	return s.delay.Min + time.Duration(s.rnd.Int63n(int64(spread)+1))
}

func (s *Session) emit(ctx context.Context, sender core.Sender, text string) {
	turn := core.Turn{Sender: sender, Text: text, Timestamp: s.clock.Now()}

	s.mu.Lock()
	s.transcript = append(s.transcript, turn)
	s.mu.Unlock()

	for _, p := range s.presenters {
		if err := p.Present(ctx, s.id, turn); err != nil {
			log.FromCtx(ctx).Warn().Err(err).Str("session", s.id).Msgf("%T failed to present turn", p)
		}
	}
}

// Transcript returns a copy of every turn emitted so far.
func (s *Session) Transcript() []core.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]core.Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}
