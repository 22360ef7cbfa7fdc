// Package ai builds prompts for the career-guidance use cases, sends them to
// the configured language model and normalizes the replies. Every operation
// falls back to a schema-identical mock when the model is absent or fails.
package ai

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/fadilmartias/skillsync-api/internal/service"
	"go.uber.org/zap"
)

var (
	ErrNotConfigured         = errors.New("language model not configured")
	ErrEmbeddingsUnavailable = errors.New("embeddings not available")
	errEmptyReply            = errors.New("empty model reply")
)

// Config selects the model backend. A nil Client puts the gateway in mock
// mode for its whole lifetime.
type Config struct {
	Client   service.LLMClient
	Embedder service.Embedder
	Model    string
}

type Gateway struct {
	client   service.LLMClient
	embedder service.Embedder
	model    string
	log      *zap.Logger
}

func NewGateway(cfg Config, log *zap.Logger) *Gateway {
	if log == nil {
		log = zap.NewNop()
	}
	return &Gateway{
		client:   cfg.Client,
		embedder: cfg.Embedder,
		model:    cfg.Model,
		log:      log.Named("ai"),
	}
}

func (g *Gateway) Configured() bool {
	return g.client != nil
}

func (g *Gateway) CanEmbed() bool {
	return g.embedder != nil
}

// Provider names the backend for diagnostics, "mock" when unconfigured.
func (g *Gateway) Provider() string {
	if g.client == nil {
		return "mock"
	}
	return g.client.Name()
}

func (g *Gateway) AnalyzeAssessment(ctx context.Context, in AssessmentInput) Result[AssessmentAnalysis] {
	return generate(ctx, g, "assessment", AssessmentPrompt(in), mockAssessment)
}

func (g *Gateway) AnalyzeSkillGap(ctx context.Context, currentSkills []string, targetCareer string) Result[SkillGapAnalysis] {
	return generate(ctx, g, "skill_gap", SkillGapPrompt(currentSkills, targetCareer), func() SkillGapAnalysis {
		return mockSkillGap(currentSkills, targetCareer)
	})
}

func (g *Gateway) SuggestResumeImprovements(ctx context.Context, content json.RawMessage, targetRole string) Result[ResumeFeedback] {
	return generate(ctx, g, "resume", ResumePrompt(content, targetRole), mockResumeFeedback)
}

// Chat answers message given the prior turns of the conversation, oldest first.
func (g *Gateway) Chat(ctx context.Context, message string, history []ChatTurn) Result[string] {
	if g.client == nil {
		return Result[string]{Data: chatUnavailableReply, Degraded: true, Reason: ErrNotConfigured}
	}

	text, err := g.client.GenerateText(ctx, ChatPrompt(message, history))
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = errEmptyReply
		}
	}
	if err != nil {
		g.degraded("chat", err)
		return Result[string]{Data: chatFailureReply, Degraded: true, Reason: err}
	}
	return Result[string]{Data: text}
}

func (g *Gateway) Embed(ctx context.Context, text string) ([]float32, error) {
	if g.embedder == nil {
		return nil, ErrEmbeddingsUnavailable
	}
	return g.embedder.GenerateEmbedding(ctx, text)
}

func generate[T any](ctx context.Context, g *Gateway, op, prompt string, fallback func() T) Result[T] {
	if g.client == nil {
		return Result[T]{Data: fallback(), Degraded: true, Reason: ErrNotConfigured}
	}

	text, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		g.degraded(op, err)
		return Result[T]{Data: fallback(), Degraded: true, Reason: err}
	}

	data, err := Decode[T](text)
	if err != nil {
		g.degraded(op, err)
		return Result[T]{Data: fallback(), Degraded: true, Reason: err}
	}
	return Result[T]{Data: data}
}

func (g *Gateway) degraded(op string, err error) {
	g.log.Warn("model call degraded to mock",
		zap.String("op", op),
		zap.String("provider", g.client.Name()),
		zap.String("model", g.model),
		zap.Error(err))
}
