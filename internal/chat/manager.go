package chat

import (
	"context"
	"fmt"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/prompt"
)

const chatTemperature = 0.1

// Manager owns the open sessions.
type Manager struct {
	backend generation.Backend
	model   string
	log     logger.Logger
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(backend generation.Backend, model string, log logger.Logger) *Manager {
	if log == nil {
		log = logger.Nop()
	}
	return &Manager{
		backend:  backend,
		model:    model,
		log:      log.Component("chat"),
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Open starts a session about subject. The opening turn is initialPrompt when
// set, else the intro of subject; neither is shown as a user turn. Free chat
// opens with the greeting and makes no request. When the backend cannot open
// a conversation the session holds only MsgNotConfigured.
func (m *Manager) Open(ctx context.Context, subject domain.StudyContext, initialPrompt string, onChunk ChunkFunc) (*Session, error) {
	if subject == nil {
		subject = domain.FreeContext{}
	}
	id, err := gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	s := &Session{
		id:         id,
		subject:    subject,
		log:        m.log,
		now:        m.now,
		lastActive: m.now(),
	}

	chat, err := m.backend.NewChat(ctx, generation.ChatConfig{
		Model:             m.model,
		SystemInstruction: prompt.SystemInitial,
		Temperature:       chatTemperature,
		Search:            true,
	})
	if err != nil {
		m.log.Warn("failed to open chat", logger.String("session", id), logger.Error(err))
		s.messages = []Message{{Role: RoleModel, Text: MsgNotConfigured, IsError: true}}
		m.put(s)
		return s, nil
	}
	s.chat = chat
	m.put(s)

	m.log.Info("chat session opened",
		logger.String("session", id),
		logger.String("context", string(subject.Kind())),
		logger.String("ref_id", subject.RefID()),
	)

	opening := initialPrompt
	if opening == "" {
		opening, _ = prompt.Intro(subject)
	}
	if opening == "" {
		s.append(Message{Role: RoleModel, Text: prompt.Greeting})
		return s, nil
	}

	// A failed opening leaves the error message in the transcript.
	_, _ = s.send(ctx, opening, "", false, onChunk)
	return s, nil
}

func (m *Manager) put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, apperr.NotFoundf("chat session %q not found", id)
	}
	return s, nil
}

// Close forgets a session. Closing an unknown id is a no-op.
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes the sessions idle for longer than maxIdle and returns how many
// went. Sessions with a reply streaming are kept.
func (m *Manager) Sweep(now time.Time, maxIdle time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if s.Busy() || now.Sub(s.LastActive()) < maxIdle {
			continue
		}
		delete(m.sessions, id)
		removed++
	}
	return removed
}
