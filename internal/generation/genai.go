package generation

import (
	"context"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/logger"
)

// GenAI is the Backend over the Gemini API.
type GenAI struct {
	client *genai.Client
	log    logger.Logger
}

func NewGenAI(ctx context.Context, apiKey string, log logger.Logger) (*GenAI, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GenAI{client: client, log: log}, nil
}

// New returns the GenAI backend, or Unconfigured when apiKey is empty.
func New(ctx context.Context, apiKey string, log logger.Logger) (Backend, error) {
	if apiKey == "" {
		log.Warn("no API key configured, generation disabled")
		return Unconfigured{}, nil
	}
	return NewGenAI(ctx, apiKey, log)
}

func (g *GenAI) Configured() bool { return true }

func (g *GenAI) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, err := g.client.Models.GenerateContent(ctx, req.Model, genai.Text(req.Prompt), contentConfig(req))
	if err != nil {
		return nil, apperr.Upstream("generate content failed", err)
	}
	return &Response{Text: resp.Text(), Sources: groundingSources(resp)}, nil
}

func (g *GenAI) NewChat(ctx context.Context, cfg ChatConfig) (ChatSession, error) {
	chat, err := g.client.Chats.Create(ctx, cfg.Model, contentConfig(Request{
		SystemInstruction: cfg.SystemInstruction,
		Temperature:       cfg.Temperature,
		Search:            cfg.Search,
	}), nil)
	if err != nil {
		return nil, apperr.Upstream("create chat failed", err)
	}
	return &genaiChat{chat: chat}, nil
}

type genaiChat struct {
	chat *genai.Chat
}

func (c *genaiChat) SendStream(ctx context.Context, text string) iter.Seq2[Chunk, error] {
	return chunks(c.chat.SendMessageStream(ctx, genai.Part{Text: text}))
}

func chunks(stream iter.Seq2[*genai.GenerateContentResponse, error]) iter.Seq2[Chunk, error] {
	return func(yield func(Chunk, error) bool) {
		for resp, err := range stream {
			if err != nil {
				yield(Chunk{}, apperr.Upstream("stream failed", err))
				return
			}
			if !yield(Chunk{Text: resp.Text(), Sources: groundingSources(resp)}, nil) {
				return
			}
		}
	}
}

var harmCategories = []genai.HarmCategory{
	genai.HarmCategoryHateSpeech,
	genai.HarmCategoryHarassment,
	genai.HarmCategorySexuallyExplicit,
	genai.HarmCategoryDangerousContent,
	genai.HarmCategoryCivicIntegrity,
}

// safetySettings turns off blocking for every harm category.
func safetySettings() []*genai.SafetySetting {
	out := make([]*genai.SafetySetting, 0, len(harmCategories))
	for _, c := range harmCategories {
		out = append(out, &genai.SafetySetting{Category: c, Threshold: genai.HarmBlockThresholdBlockNone})
	}
	return out
}

func contentConfig(req Request) *genai.GenerateContentConfig {
	maxTokens := req.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxOutputTokens
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Temperature),
		MaxOutputTokens: maxTokens,
		SafetySettings:  safetySettings(),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}
	if req.JSON {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.Search {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

func groundingSources(resp *genai.GenerateContentResponse) []domain.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var out []domain.GroundingSource
	for _, ch := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if ch == nil || ch.Web == nil || ch.Web.URI == "" {
			continue
		}
		out = append(out, domain.GroundingSource{URI: ch.Web.URI, Title: ch.Web.Title})
	}
	return out
}
