package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const GeminiEmbeddingModel = "gemini-embedding-001"

// maxEmbeddingInput bounds the text sent for a single embedding.
const maxEmbeddingInput = 10000

type GeminiService struct {
	Client         *genai.Client
	Model          string
	MaxRetries     int
	BaseDelay      time.Duration
	MaxDelay       time.Duration
	RequestTimeout time.Duration

	log               *zap.Logger
	now               func() time.Time
	mu                sync.Mutex
	consecutiveErrors int
	circuitBreakerMax int
	// After cooldown an open breaker lets a single trial call through.
	cooldown  time.Duration
	openedAt  time.Time
	trialOpen bool
}

func NewGeminiService(ctx context.Context, cfg *config.GeminiConfig, log *zap.Logger) (*GeminiService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:            client,
		Model:             cfg.Model,
		MaxRetries:        3,
		BaseDelay:         time.Second,
		MaxDelay:          30 * time.Second,
		RequestTimeout:    60 * time.Second,
		log:               log.Named("gemini"),
		now:               time.Now,
		circuitBreakerMax: 5,
		cooldown:          30 * time.Second,
	}, nil
}

func (s *GeminiService) Name() string {
	return "gemini"
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt cannot be empty")
	}

	var text string
	err := s.withRetry(ctx, "GenerateText", func(ctx context.Context) error {
		result, err := s.Client.Models.GenerateContent(ctx, s.Model, genai.Text(prompt), &genai.GenerateContentConfig{
			Temperature: genai.Ptr(float32(0.7)),
		})
		if err != nil {
			return err
		}
		if err := validateGenerateResponse(result); err != nil {
			return &permanentError{fmt.Errorf("invalid response: %w", err)}
		}
		text = result.Text()
		return nil
	})
	return text, err
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, errors.New("text for embedding cannot be empty")
	}
	if len(trimmed) > maxEmbeddingInput {
		s.log.Warn("embedding input truncated", zap.Int("length", len(trimmed)))
		trimmed = trimmed[:maxEmbeddingInput]
	}

	content := []*genai.Content{genai.NewContentFromText(trimmed, genai.RoleUser)}

	var embedding []float32
	err := s.withRetry(ctx, "GenerateEmbedding", func(ctx context.Context) error {
		result, err := s.Client.Models.EmbedContent(ctx, GeminiEmbeddingModel, content, nil)
		if err != nil {
			return err
		}
		values, err := validateEmbeddingResponse(result)
		if err != nil {
			return &permanentError{fmt.Errorf("invalid embedding response: %w", err)}
		}
		embedding = values
		return nil
	})
	return embedding, err
}

// permanentError marks a failure that a retry cannot fix.
type permanentError struct{ err error }

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func (s *GeminiService) withRetry(ctx context.Context, op string, call func(context.Context) error) error {
	if err := s.acquire(); err != nil {
		return err
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= s.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := s.calculateBackoff(attempt)
			s.log.Info("retrying model call",
				zap.String("op", op),
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay))

			select {
			case <-time.After(delay):
			case <-timeoutCtx.Done():
				s.recordFailure()
				return fmt.Errorf("context timeout during retry: %w", timeoutCtx.Err())
			}
		}

		err := call(timeoutCtx)
		if err == nil {
			s.recordSuccess()
			return nil
		}
		lastErr = err

		// The model answered, so the provider itself is healthy.
		var perm *permanentError
		if errors.As(err, &perm) {
			s.log.Warn("unusable model response", zap.String("op", op), zap.Error(err))
			s.recordSuccess()
			return fmt.Errorf("%s failed: %w", op, err)
		}
		if ctx.Err() != nil {
			s.releaseTrial()
			return fmt.Errorf("%s cancelled: %w", op, ctx.Err())
		}
		if !isRetryableError(err) {
			s.log.Warn("non-retryable model error", zap.String("op", op), zap.Error(err))
			s.recordFailure()
			return fmt.Errorf("%s failed: %w", op, err)
		}
		s.log.Warn("retryable model error", zap.String("op", op), zap.Int("attempt", attempt+1), zap.Error(err))
	}

	s.recordFailure()
	return fmt.Errorf("max retries (%d) exceeded for %s: %w", s.MaxRetries, op, lastErr)
}

func (s *GeminiService) calculateBackoff(attempt int) time.Duration {
	delay := s.BaseDelay * time.Duration(math.Pow(2, float64(attempt-1)))
	if delay > s.MaxDelay {
		delay = s.MaxDelay
	}
	return delay
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return isRetryableStatus(apiErr.Code)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return isRetryableStatus(apiErrPtr.Code)
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func isRetryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return errors.New("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return errors.New("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return errors.New("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return errors.New("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, errors.New("response is nil")
	}
	if len(resp.Embeddings) == 0 || resp.Embeddings[0] == nil {
		return nil, errors.New("no embeddings returned")
	}

	embedding := resp.Embeddings[0].Values
	if len(embedding) == 0 {
		return nil, errors.New("embedding vector is empty")
	}
	for i, val := range embedding {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embedding, nil
}

// acquire fails fast while the breaker is open. Once the cooldown has passed
// one caller is let through as a trial; its outcome closes or reopens the breaker.
func (s *GeminiService) acquire() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.consecutiveErrors < s.circuitBreakerMax {
		return nil
	}
	if s.trialOpen || s.clock().Sub(s.openedAt) < s.cooldown {
		return fmt.Errorf("circuit breaker open: too many consecutive errors (%d)", s.consecutiveErrors)
	}
	s.trialOpen = true
	s.log.Info("circuit breaker half-open, trying provider")
	return nil
}

func (s *GeminiService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *GeminiService) recordSuccess() {
	s.mu.Lock()
	s.consecutiveErrors = 0
	s.trialOpen = false
	s.mu.Unlock()
}

// releaseTrial gives up a trial slot without judging the provider.
func (s *GeminiService) releaseTrial() {
	s.mu.Lock()
	s.trialOpen = false
	s.mu.Unlock()
}

func (s *GeminiService) recordFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.consecutiveErrors++
	s.trialOpen = false
	if s.consecutiveErrors >= s.circuitBreakerMax {
		s.openedAt = s.clock()
	}
}

func (s *GeminiService) ResetCircuitBreaker() {
	s.recordSuccess()
	s.log.Info("circuit breaker reset")
}

// CircuitBreakerStatus reports the failure streak and whether calls are currently rejected.
func (s *GeminiService) CircuitBreakerStatus() (consecutiveErrors int, isOpen bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	open := s.consecutiveErrors >= s.circuitBreakerMax &&
		(s.trialOpen || s.clock().Sub(s.openedAt) < s.cooldown)
	return s.consecutiveErrors, open
}
