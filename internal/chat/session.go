// Package chat models a single visitor's conversation with the park assistant.
package chat

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

const (
	DefaultMinDelay = 800 * time.Millisecond
	DefaultMaxDelay = 1500 * time.Millisecond
)

// Resolver maps a visitor query to the assistant's reply.
type Resolver interface {
	Resolve(query string) string
}

// Session is the chat widget state: an append-only message log plus the
// open and typing flags.
//
// Each SendMessage schedules its own reply. Replies are never cancelled:
// closing the widget (or dropping the session) while a reply is pending
// still lets it land in the log. Replies with different delays can arrive
// out of send order, and the first reply to land clears the typing flag.
type Session struct {
	mu       sync.Mutex
	id       string
	messages []domain.ChatMessage
	open     bool
	typing   bool
	seq      int
	lastSeen time.Time

	resolver Resolver
	clock    clock.Clock
	sched    clock.Scheduler
	minDelay time.Duration
	maxDelay time.Duration
	rng      *rand.Rand
	onChange func()
}

type Option func(*Session)

// WithDelay overrides the reply delay window [min, max).
func WithDelay(lo, hi time.Duration) Option {
	return func(s *Session) {
		if lo < 0 || hi < lo {
			return
		}
		s.minDelay = lo
		s.maxDelay = hi
	}
}

// WithRand sets the random source used to pick reply delays.
func WithRand(r *rand.Rand) Option {
	return func(s *Session) {
		if r != nil {
			s.rng = r
		}
	}
}

// WithOnChange registers a hook invoked after every state change, outside
// the session lock.
func WithOnChange(fn func()) Option {
	return func(s *Session) {
		s.onChange = fn
	}
}

// NewSession returns a closed session seeded with the greeting message.
func NewSession(id, greeting string, resolver Resolver, clk clock.Clock, sched clock.Scheduler, opts ...Option) *Session {
	s := &Session{
		id:       id,
		resolver: resolver,
		clock:    clk,
		sched:    sched,
		minDelay: DefaultMinDelay,
		maxDelay: DefaultMaxDelay,
		rng:      rand.New(rand.NewPCG(uint64(clk.Now().UnixNano()), 0x5eed)),
	}
	for _, opt := range opts {
		opt(s)
	}
	now := clk.Now()
	s.lastSeen = now
	if greeting != "" {
		s.messages = append(s.messages, s.newMessage(domain.ChatRoleBot, greeting, now))
	}
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Open shows the widget. Pending replies are unaffected.
func (s *Session) Open() {
	s.setOpen(true)
}

// Close hides the widget. Pending replies are not cancelled.
func (s *Session) Close() {
	s.setOpen(false)
}

func (s *Session) setOpen(open bool) {
	s.mu.Lock()
	s.open = open
	s.lastSeen = s.clock.Now()
	s.mu.Unlock()
	s.changed()
}

// SendMessage appends the visitor's message and schedules the assistant's
// reply. Blank input is ignored and reported as false.
func (s *Session) SendMessage(text string) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}

	s.mu.Lock()
	now := s.clock.Now()
	s.messages = append(s.messages, s.newMessage(domain.ChatRoleUser, text, now))
	s.typing = true
	s.lastSeen = now
	delay := s.nextDelay()
	s.mu.Unlock()
	s.changed()

	s.sched.AfterFunc(delay, func() {
		reply := s.resolver.Resolve(text)
		s.mu.Lock()
		s.typing = false
		s.messages = append(s.messages, s.newMessage(domain.ChatRoleBot, reply, s.clock.Now()))
		s.mu.Unlock()
		s.changed()
	})
	return true
}

// Snapshot is a consistent copy of the session state.
type Snapshot struct {
	ID       string
	Open     bool
	Typing   bool
	Messages []domain.ChatMessage
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		ID:       s.id,
		Open:     s.open,
		Typing:   s.typing,
		Messages: append([]domain.ChatMessage(nil), s.messages...),
	}
}

func (s *Session) Messages() []domain.ChatMessage {
	return s.Snapshot().Messages
}

func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Session) IsTyping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing
}

// LastSeen is the time of the last visitor interaction.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// nextDelay must be called with s.mu held.
func (s *Session) nextDelay() time.Duration {
	span := s.maxDelay - s.minDelay
	if span <= 0 {
		return s.minDelay
	}
	return s.minDelay + time.Duration(s.rng.Int64N(int64(span)))
}

// newMessage must be called with s.mu held. IDs are the millisecond
// timestamp plus a per-session sequence, so rapid sends stay unique.
func (s *Session) newMessage(role domain.ChatRole, content string, at time.Time) domain.ChatMessage {
	s.seq++
	return domain.ChatMessage{
		ID:        strconv.FormatInt(at.UnixMilli(), 10) + "-" + strconv.Itoa(s.seq),
		Role:      role,
		Content:   content,
		Timestamp: at,
	}
}

func (s *Session) changed() {
	if s.onChange != nil {
		s.onChange()
	}
}
