// Package chat keeps the multi-turn study conversations.
//
// A Session wraps one backend conversation together with the transcript the
// client renders. Each session runs one request at a time; the transcript is
// updated chunk by chunk while a reply streams in.
package chat

import (
	"context"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/prompt"
)

const (
	// MsgError replaces a reply that failed.
	MsgError = "I encountered an error retrieving that information. Please try again."
	// MsgNotConfigured is the only message of a session opened without a backend.
	MsgNotConfigured = "Error: Could not connect to the knowledge base. Please check your API key configuration."
)

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type Message struct {
	Role    Role                     `json:"role"`
	Text    string                   `json:"text"`
	Sources []domain.GroundingSource `json:"sources,omitempty"`
	IsError bool                     `json:"isError,omitempty"`
}

// ChunkFunc observes a reply while it streams. It receives the reply so far.
type ChunkFunc func(Message)

type Session struct {
	id      string
	subject domain.StudyContext
	// chat is nil when the backend could not open a conversation.
	chat generation.ChatSession
	log  logger.Logger
	now  func() time.Time

	busy atomic.Bool

	mu         sync.RWMutex
	messages   []Message
	lastActive time.Time
}

func (s *Session) ID() string { return s.id }

func (s *Session) Subject() domain.StudyContext { return s.subject }

// Messages returns a copy of the transcript.
func (s *Session) Messages() []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.messages)
}

func (s *Session) LastActive() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

// Busy reports whether a reply is streaming.
func (s *Session) Busy() bool { return s.busy.Load() }

// Connected is false for a session opened without a working backend.
func (s *Session) Connected() bool { return s.chat != nil }

// Send asks text and streams the reply into the transcript. The user turn
// shows display when it is set, text otherwise. On failure the error
// message is appended and returned along with the error.
func (s *Session) Send(ctx context.Context, text, display string, onChunk ChunkFunc) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, apperr.Validation("message is required")
	}
	if display == "" {
		display = text
	}
	return s.send(ctx, text, display, true, onChunk)
}

// NavigateTOC quotes one outline entry of the document in study. Only the
// reference is shown as the user turn.
func (s *Session) NavigateTOC(ctx context.Context, reference string, onChunk ChunkFunc) (Message, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return Message{}, apperr.Validation("reference is required")
	}
	return s.send(ctx, prompt.ConfessionVerbatim(reference), reference, true, onChunk)
}

func (s *Session) send(ctx context.Context, text, display string, visible bool, onChunk ChunkFunc) (Message, error) {
	if s.chat == nil {
		return Message{}, generation.ErrNotConfigured
	}
	if !s.busy.CompareAndSwap(false, true) {
		return Message{}, apperr.Busy("a reply is already streaming in this session")
	}
	defer s.busy.Store(false)

	if visible {
		s.append(Message{Role: RoleUser, Text: display})
	}
	s.append(Message{Role: RoleModel})

	var (
		full    strings.Builder
		sources []domain.GroundingSource
	)
	for chunk, err := range s.chat.SendStream(ctx, text) {
		if err != nil {
			s.log.Warn("chat reply failed", logger.String("session", s.id), logger.Error(err))
			return s.fail(), err
		}
		full.WriteString(chunk.Text)
		if len(chunk.Sources) > 0 {
			sources = chunk.Sources
		}
		msg := Message{Role: RoleModel, Text: full.String(), Sources: sources}
		s.replaceLast(msg)
		if onChunk != nil {
			onChunk(msg)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages[len(s.messages)-1], nil
}

// fail drops the reply if nothing arrived and appends the error message.
func (s *Session) fail() Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n := len(s.messages); n > 0 && s.messages[n-1].Role == RoleModel && s.messages[n-1].Text == "" {
		s.messages = s.messages[:n-1]
	}
	msg := Message{Role: RoleModel, Text: MsgError, IsError: true}
	s.messages = append(s.messages, msg)
	s.lastActive = s.now()
	return msg
}

func (s *Session) append(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, m)
	s.lastActive = s.now()
}

func (s *Session) replaceLast(m Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages[len(s.messages)-1] = m
	s.lastActive = s.now()
}
