package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/skillsync-api/internal/config"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

const careerAdvisorSystemPrompt = "You are SkillSync AI, a career guidance assistant. Follow the output format the user asks for exactly."

type OpenRouterService struct {
	client *resty.Client
	model  string
}

func NewOpenRouterService(cfg *config.OpenRouterConfig) *OpenRouterService {
	return newOpenRouterService(cfg, openRouterBaseURL)
}

func newOpenRouterService(cfg *config.OpenRouterConfig, baseURL string) *OpenRouterService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetTimeout(60 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() == 429 || r.StatusCode() >= 500
		})
	return &OpenRouterService{client: client, model: cfg.Model}
}

func (s *OpenRouterService) Name() string {
	return "openrouter"
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", errors.New("prompt cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"model": s.model,
			"messages": []map[string]string{
				{"role": "system", "content": careerAdvisorSystemPrompt},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openrouter request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		return "", fmt.Errorf("openrouter status %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content").String()
	if text == "" {
		return "", errors.New("no response from LLM")
	}
	return text, nil
}
