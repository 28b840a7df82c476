// Package generation talks to the text generation service.
//
// A Backend is built once at startup and passed to whoever needs it.
// When no API key is configured the Unconfigured backend stands in and
// every call fails with ErrNotConfigured.
package generation

import (
	"context"
	"iter"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
)

// DefaultMaxOutputTokens bounds every response.
const DefaultMaxOutputTokens int32 = 8192

var ErrNotConfigured = apperr.NotConfigured("generation backend is not configured")

// Request is one single-turn generation.
type Request struct {
	Model             string
	Prompt            string
	SystemInstruction string
	Temperature       float32
	MaxOutputTokens   int32
	// JSON asks for an application/json response body.
	JSON bool
	// Search grounds the answer with web search.
	Search bool
}

type Response struct {
	Text    string
	Sources []domain.GroundingSource
}

// Chunk is one streamed fragment. Sources is set only on the chunks that carry grounding.
type Chunk struct {
	Text    string
	Sources []domain.GroundingSource
}

// ChatConfig opens a multi-turn conversation.
type ChatConfig struct {
	Model             string
	SystemInstruction string
	Temperature       float32
	Search            bool
}

// ChatSession keeps the conversation history on the backend side.
type ChatSession interface {
	SendStream(ctx context.Context, text string) iter.Seq2[Chunk, error]
}

type Backend interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	NewChat(ctx context.Context, cfg ChatConfig) (ChatSession, error)
	// Configured is false for the stand-in backend.
	Configured() bool
}

// Unconfigured is the backend used when no API key is set.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, Request) (*Response, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) NewChat(context.Context, ChatConfig) (ChatSession, error) {
	return nil, ErrNotConfigured
}

func (Unconfigured) Configured() bool { return false }
