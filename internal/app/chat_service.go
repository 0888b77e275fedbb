package app

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/curiousguyinhis30s/themepark-website/internal/chat"
	"github.com/curiousguyinhis30s/themepark-website/internal/chatbot"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
	"github.com/curiousguyinhis30s/themepark-website/internal/metrics"
)

const defaultChatSessionTTL = 30 * time.Minute

// ChatService keeps one chat.Session per visitor, in memory.
type ChatService struct {
	kb     *chatbot.KnowledgeBase
	clock  clock.Clock
	sched  clock.Scheduler
	ttl    time.Duration
	opts   []chat.Option
	logger *slog.Logger

	mu       sync.Mutex
	sessions map[string]*chat.Session
}

type ChatServiceOption func(*ChatService)

// WithChatSessionTTL sets how long an idle session is kept.
func WithChatSessionTTL(d time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		if d > 0 {
			s.ttl = d
		}
	}
}

// WithChatDelay sets the reply delay window for new sessions.
func WithChatDelay(lo, hi time.Duration) ChatServiceOption {
	return func(s *ChatService) {
		s.opts = append(s.opts, chat.WithDelay(lo, hi))
	}
}

func WithChatLogger(l *slog.Logger) ChatServiceOption {
	return func(s *ChatService) {
		if l != nil {
			s.logger = l
		}
	}
}

func NewChatService(kb *chatbot.KnowledgeBase, clk clock.Clock, sched clock.Scheduler, opts ...ChatServiceOption) *ChatService {
	svc := &ChatService{
		kb:       kb,
		clock:    clk,
		sched:    sched,
		ttl:      defaultChatSessionTTL,
		logger:   slog.Default(),
		sessions: make(map[string]*chat.Session),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *ChatService) QuickActions() []chatbot.QuickAction {
	return chatbot.QuickActions()
}

// CreateSession starts a closed session holding only the greeting.
func (s *ChatService) CreateSession() chat.Snapshot {
	sess := chat.NewSession(uuid.NewString(), chatbot.Greeting, s.kb, s.clock, s.sched, s.opts...)

	s.mu.Lock()
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	metrics.ChatSessionsCreated.Inc()
	s.logger.Debug("chat session created", "session_id", sess.ID())
	return sess.Snapshot()
}

func (s *ChatService) Session(id string) (chat.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return chat.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

func (s *ChatService) Open(id string) (chat.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return chat.Snapshot{}, err
	}
	sess.Open()
	return sess.Snapshot(), nil
}

func (s *ChatService) Close(id string) (chat.Snapshot, error) {
	sess, err := s.get(id)
	if err != nil {
		return chat.Snapshot{}, err
	}
	sess.Close()
	return sess.Snapshot(), nil
}

// Send posts a visitor message. Blank text is accepted as a no-op and
// reported through the returned bool.
func (s *ChatService) Send(id, text string) (chat.Snapshot, bool, error) {
	sess, err := s.get(id)
	if err != nil {
		return chat.Snapshot{}, false, err
	}
	sent := sess.SendMessage(text)
	if sent {
		category, ok := s.kb.Match(text)
		if !ok {
			category = metrics.FallbackCategory
		}
		metrics.ChatMessages.WithLabelValues(category).Inc()
	}
	return sess.Snapshot(), sent, nil
}

// Sweep drops sessions idle since before now minus the TTL and reports how
// many were removed. Pending replies of dropped sessions still fire but
// are no longer observable.
func (s *ChatService) Sweep(now time.Time) int {
	cutoff := now.Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.sessions {
		if sess.LastSeen().Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *ChatService) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(s.clock.Now()); n > 0 {
				s.logger.Info("expired chat sessions", "count", n)
			}
		}
	}
}

func (s *ChatService) get(id string) (*chat.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}
