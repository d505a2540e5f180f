package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/example/synapz/internal/logger"
	"github.com/example/synapz/pkg/models"
)

const (
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 60 * time.Second
)

// ErrEmptyResponse is returned when the model produced no content
var ErrEmptyResponse = errors.New("AI returned empty response")

const factPrompt = `You are an educational content generator. Generate interesting, verified facts about the given topic.

IMPORTANT: Return ONLY a valid JSON array with NO additional text, markdown, or explanation.

Each fact object must have this exact structure:
{
  "title": "A short, catchy title (max 80 chars)",
  "text": "The fact content (100-300 chars, informative and engaging)",
  "category": "One of: %s",
  "source": "A credible source name (e.g., NASA, National Geographic, Scientific American)"
}

Generate exactly COUNT facts about the given TOPIC. Make each fact unique, interesting, and educational.`

// Config configures the OpenAI compatible backend
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// Categories the model may choose from
	Categories []string
}

// ChatGPT generates facts through an OpenAI compatible chat completion API
type ChatGPT struct {
	client      *openai.Client
	model       string
	prompt      string
	temperature float32
	log         *logger.Logger
}

// New creates a new ChatGPT client
func New(cfg Config, log *logger.Logger) (*ChatGPT, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	if log == nil {
		log = logger.Nop()
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &ChatGPT{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		prompt:      fmt.Sprintf(factPrompt, strings.Join(cfg.Categories, ", ")),
		temperature: 0.7,
		log:         log.With("component", "ai"),
	}, nil
}

// GenerateFacts asks the model for count facts about topic
func (c *ChatGPT) GenerateFacts(ctx context.Context, topic string, count int) ([]models.FactInput, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.prompt},
			{Role: openai.ChatMessageRoleUser, Content: fmt.Sprintf("Generate exactly %d interesting facts about: %q", count, topic)},
		},
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, ErrEmptyResponse
	}

	content := resp.Choices[0].Message.Content
	facts, err := ParseGeneratedFacts(content)
	if err != nil {
		c.log.Warn("failed to parse AI response", "error", err, "raw", truncate(content, 500))
		return nil, err
	}

	c.log.Debug("facts generated",
		"topic", topic,
		"count", len(facts),
		"latency_ms", time.Since(start).Milliseconds(),
		"tokens", resp.Usage.TotalTokens)
	return facts, nil
}

// ParseGeneratedFacts decodes the JSON array returned by the model.
// Markdown code fences around the array are ignored.
func ParseGeneratedFacts(raw string) ([]models.FactInput, error) {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```json") {
		s = s[len("```json"):]
	} else if strings.HasPrefix(s, "```") {
		s = s[3:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	s = strings.TrimSpace(s)

	var facts []models.FactInput
	if err := json.Unmarshal([]byte(s), &facts); err != nil {
		return nil, fmt.Errorf("failed to parse AI response as JSON: %w", err)
	}
	return facts, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
