package generation

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/logger"
)

func TestUnconfigured(t *testing.T) {
	var b Backend = Unconfigured{}
	ctx := context.Background()

	if b.Configured() {
		t.Error("Configured() = true, want false")
	}
	if _, err := b.Generate(ctx, Request{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Generate() error = %v, want ErrNotConfigured", err)
	}
	if _, err := b.NewChat(ctx, ChatConfig{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NewChat() error = %v, want ErrNotConfigured", err)
	}
	if apperr.CodeOf(ErrNotConfigured) != apperr.CodeNotConfigured {
		t.Errorf("CodeOf(ErrNotConfigured) = %s", apperr.CodeOf(ErrNotConfigured))
	}
}

func TestNewWithoutKey(t *testing.T) {
	b, err := New(context.Background(), "", logger.Nop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := b.(Unconfigured); !ok {
		t.Errorf("New(\"\") = %T, want Unconfigured", b)
	}
	if _, err := NewGenAI(context.Background(), "", logger.Nop()); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("NewGenAI(\"\") error = %v, want ErrNotConfigured", err)
	}
}

func TestContentConfig(t *testing.T) {
	cfg := contentConfig(Request{Temperature: 0.4, JSON: true, Search: true, SystemInstruction: "be brief"})

	if cfg.Temperature == nil || *cfg.Temperature != 0.4 {
		t.Errorf("Temperature = %v, want 0.4", cfg.Temperature)
	}
	if cfg.MaxOutputTokens != DefaultMaxOutputTokens {
		t.Errorf("MaxOutputTokens = %d, want %d", cfg.MaxOutputTokens, DefaultMaxOutputTokens)
	}
	if cfg.ResponseMIMEType != "application/json" {
		t.Errorf("ResponseMIMEType = %q, want application/json", cfg.ResponseMIMEType)
	}
	if len(cfg.Tools) != 1 || cfg.Tools[0].GoogleSearch == nil {
		t.Errorf("Tools = %+v, want google search", cfg.Tools)
	}
	if cfg.SystemInstruction == nil || cfg.SystemInstruction.Parts[0].Text != "be brief" {
		t.Errorf("SystemInstruction = %+v", cfg.SystemInstruction)
	}
	if len(cfg.SafetySettings) != 5 {
		t.Fatalf("SafetySettings = %d entries, want 5", len(cfg.SafetySettings))
	}
	for _, s := range cfg.SafetySettings {
		if s.Threshold != genai.HarmBlockThresholdBlockNone {
			t.Errorf("%s threshold = %s, want BLOCK_NONE", s.Category, s.Threshold)
		}
	}

	plain := contentConfig(Request{MaxOutputTokens: 100})
	if plain.ResponseMIMEType != "" || plain.Tools != nil || plain.SystemInstruction != nil {
		t.Errorf("plain config = %+v, want no JSON, tools or instruction", plain)
	}
	if plain.MaxOutputTokens != 100 {
		t.Errorf("MaxOutputTokens = %d, want 100", plain.MaxOutputTokens)
	}
}

func TestGroundingSources(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://ccel.org", Title: "CCEL"}},
					{Web: &genai.GroundingChunkWeb{}},
					{},
				},
			},
		}},
	}
	want := []domain.GroundingSource{{URI: "https://ccel.org", Title: "CCEL"}}
	if diff := cmp.Diff(want, groundingSources(resp)); diff != "" {
		t.Errorf("groundingSources() mismatch (-want +got):\n%s", diff)
	}
	if got := groundingSources(&genai.GenerateContentResponse{}); got != nil {
		t.Errorf("groundingSources(empty) = %v, want nil", got)
	}
}
