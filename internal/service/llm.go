package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cardsight/internal/models"
	"cardsight/pkg/config"

	"github.com/Role1776/gigago"
	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ModelClient is the hosted-model boundary: a prompt goes in, the raw text
// response comes out. Implementations own their network clients.
type ModelClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Close() error
}

// NewModelClient builds the client for the configured provider. The client
// connects lazily; a missing API key surfaces as
// models.ErrConfigurationMissing on first use, before any network call.
func NewModelClient(cfg *config.AIConfig, logger *zap.Logger) (ModelClient, error) {
	switch cfg.Provider {
	case "gemini", "":
		return newGeminiClient(cfg, logger), nil
	case "gigachat":
		return newGigaChatClient(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.Provider)
	}
}

// geminiClient talks to the Google Gemini API.
type geminiClient struct {
	cfg    *config.AIConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *genai.Client
	model  *genai.GenerativeModel
}

func newGeminiClient(cfg *config.AIConfig, logger *zap.Logger) *geminiClient {
	return &geminiClient{cfg: cfg, logger: logger}
}

func (c *geminiClient) ensureClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}
	if c.cfg.APIKey == "" {
		return models.ErrConfigurationMissing
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.cfg.APIKey))
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}

	c.client = client
	c.model = client.GenerativeModel(c.cfg.Model)
	c.logger.Info("Gemini client initialized", zap.String("model", c.cfg.Model))
	return nil
}

func (c *geminiClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.ensureClient(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini API")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String(), nil
}

func (c *geminiClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// gigaChatClient talks to the Sberbank GigaChat API.
type gigaChatClient struct {
	cfg    *config.AIConfig
	logger *zap.Logger

	mu     sync.Mutex
	client *gigago.Client
	model  *gigago.GenerativeModel
}

func newGigaChatClient(cfg *config.AIConfig, logger *zap.Logger) *gigaChatClient {
	return &gigaChatClient{cfg: cfg, logger: logger}
}

func (c *gigaChatClient) ensureClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return nil
	}
	if c.cfg.APIKey == "" {
		return models.ErrConfigurationMissing
	}

	opts := []gigago.Option{
		gigago.WithCustomScope(c.cfg.GigaChatScope),
	}
	if c.cfg.InsecureSkipVerify {
		opts = append(opts, gigago.WithCustomInsecureSkipVerify(true))
		c.logger.Warn("GigaChat TLS certificate verification is disabled")
	}

	client, err := gigago.NewClient(ctx, c.cfg.APIKey, opts...)
	if err != nil {
		return fmt.Errorf("failed to create GigaChat client: %w", err)
	}

	model := client.GenerativeModel(c.cfg.Model)
	model.Temperature = 0.3

	c.client = client
	c.model = model
	c.logger.Info("GigaChat client initialized", zap.String("model", c.cfg.Model))
	return nil
}

func (c *gigaChatClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.ensureClient(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.model.Generate(ctx, []gigago.Message{
		{Role: gigago.RoleUser, Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("GigaChat API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from GigaChat API")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *gigaChatClient) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.client != nil {
		c.client.Close()
	}
	return nil
}
