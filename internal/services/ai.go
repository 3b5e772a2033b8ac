package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/rayysidd/mun/internal/errors"
	"github.com/sashabaranov/go-openai"
)

// TextGenerator turns a prompt into generated text.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// AIConfig configures the OpenAI-compatible completion endpoint.
type AIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

type openAIGenerator struct {
	client *openai.Client
	model  string
}

func (g *openAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.7,
		},
	)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no response from OpenAI")
	}

	return resp.Choices[0].Message.Content, nil
}

// AIService relays structured prompts to a generative text service and
// returns its text verbatim.
type AIService struct {
	generator TextGenerator
}

// NewAIService builds the OpenAI-backed service. Without an API key the
// service stays unconfigured and every call reports it.
func NewAIService(cfg AIConfig) *AIService {
	if cfg.APIKey == "" {
		return &AIService{}
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &AIService{
		generator: &openAIGenerator{
			client: openai.NewClientWithConfig(clientCfg),
			model:  model,
		},
	}
}

// NewAIServiceWithGenerator wraps an existing generator.
func NewAIServiceWithGenerator(generator TextGenerator) *AIService {
	return &AIService{generator: generator}
}

// Configured reports whether a generator is available.
func (s *AIService) Configured() bool {
	return s != nil && s.generator != nil
}

// ChatInput is the shared request shape of every generation endpoint.
type ChatInput struct {
	Topic     string
	Committee string
	Country   string
	Type      string
	Context   string
}

// Chat produces a free-form answer in the voice of the delegation.
func (s *AIService) Chat(ctx context.Context, input ChatInput) (string, error) {
	return s.generate(ctx, input, chatPrompt)
}

// Speech drafts a speech of the requested type.
func (s *AIService) Speech(ctx context.Context, input ChatInput) (string, error) {
	return s.generate(ctx, input, speechPrompt)
}

// Resolution drafts a UN-style resolution.
func (s *AIService) Resolution(ctx context.Context, input ChatInput) (string, error) {
	return s.generate(ctx, input, resolutionPrompt)
}

func (s *AIService) generate(ctx context.Context, input ChatInput, build func(ChatInput) string) (string, error) {
	input.Topic = strings.TrimSpace(input.Topic)
	input.Country = strings.TrimSpace(input.Country)
	if input.Topic == "" || input.Country == "" {
		return "", ErrChatFieldsRequired
	}
	if !s.Configured() {
		return "", ErrAIServiceNotConfigured
	}

	text, err := s.generator.Generate(ctx, build(input))
	if err != nil {
		return "", apierrors.Wrap(ErrAIGenerationFailed, err)
	}
	return text, nil
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v == "" {
		return def
	}
	return v
}

func chatPrompt(in ChatInput) string {
	return fmt.Sprintf(`You are the delegate of %s in the %s committee of a Model United Nations conference.
Topic: %q.
Respond as a %s speech that reflects the official position of %s on this topic.
Additional context: %s
Return only the speech text.`,
		in.Country, orDefault(in.Committee, "General Assembly"), in.Topic,
		orDefault(in.Type, "general"), in.Country, orDefault(in.Context, "none"))
}

func speechPrompt(in ChatInput) string {
	return fmt.Sprintf(`Act as the representative of %s at a Model United Nations session.
Write a %s speech on the topic %q that accurately reflects %s's stated position.
Additional context: %s
Return only the speech text.`,
		in.Country, orDefault(in.Type, "opening"), in.Topic, in.Country, orDefault(in.Context, "none"))
}

func resolutionPrompt(in ChatInput) string {
	return fmt.Sprintf(`Act as the representative of %s at a Model United Nations session.
Draft a UN resolution on the topic %q in proper UN format, with preambulatory and operative clauses.
The resolution must be realistic, implementable and consistent with %s's position, taking recent events into account.
Additional context: %s`,
		in.Country, in.Topic, in.Country, orDefault(in.Context, "none"))
}
