// Package llm wraps the OpenAI API for the three kinds of generated content
// the product needs: themed chat replies, long-form astrology narratives
// and soulmate portraits.
//
// Any OpenAI-compatible endpoint works; BaseURL points the client at it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Defaults mirror the models the product was tuned against.
const (
	DefaultChatModel     = openai.GPT3Dot5Turbo
	DefaultAnalysisModel = openai.GPT4
	DefaultImageModel    = openai.CreateImageModelDallE3
	DefaultTimeout       = 60 * time.Second
)

var (
	// ErrNotConfigured is returned when no API key was provided.
	ErrNotConfigured = errors.New("llm: api key not configured")
	// ErrUnauthorized is returned when the provider rejects the credentials.
	ErrUnauthorized = errors.New("llm: credentials rejected")
	// ErrEmptyResponse is returned when a call succeeds with no usable content.
	ErrEmptyResponse = errors.New("llm: empty response")
)

// Config holds the settings used to build a Client.
type Config struct {
	APIKey        string
	BaseURL       string // optional, e.g. "https://api.openai.com/v1"
	ChatModel     string
	AnalysisModel string
	ImageModel    string
	Timeout       time.Duration
	HTTPClient    *http.Client // optional; Timeout is ignored when set
}

// Message is one chat turn. Role is "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client talks to the OpenAI API. A Client built with an empty API key is
// valid but every call returns ErrNotConfigured.
type Client struct {
	api           *openai.Client
	chatModel     string
	analysisModel string
	imageModel    string
}

// New builds a Client from cfg, filling in default models and timeout.
func New(cfg Config) *Client {
	c := &Client{
		chatModel:     firstNonEmpty(cfg.ChatModel, DefaultChatModel),
		analysisModel: firstNonEmpty(cfg.AnalysisModel, DefaultAnalysisModel),
		imageModel:    firstNonEmpty(cfg.ImageModel, DefaultImageModel),
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return c
	}

	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}
	switch {
	case cfg.HTTPClient != nil:
		oc.HTTPClient = cfg.HTTPClient
	default:
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		oc.HTTPClient = &http.Client{Timeout: timeout}
	}
	c.api = openai.NewClientWithConfig(oc)
	return c
}

// Configured reports whether the client has credentials.
func (c *Client) Configured() bool { return c != nil && c.api != nil }

// Chat returns the assistant reply for msgs under the persona selected by
// chatType. profileContext, when non-empty, is appended to the system
// prompt. An empty completion yields ErrEmptyResponse.
func (c *Client) Chat(ctx context.Context, chatType, profileContext string, msgs []Message) (string, error) {
	ctx, span := otel.Tracer("llm").Start(ctx, "Chat",
		trace.WithAttributes(
			attribute.String("llm.model", c.chatModel),
			attribute.String("chat.type", chatType),
			attribute.Int("chat.turns", len(msgs)),
		))
	defer span.End()

	system := SystemPrompt(chatType)
	if profileContext != "" {
		system += "\n\n" + profileContext
	}
	req := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	req = append(req, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: system})
	for _, m := range msgs {
		req = append(req, openai.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	out, err := c.complete(ctx, c.chatModel, req, 0.8, 500)
	return out, recordErr(span, err)
}

// CompatibilityAnalysis writes the narrative attached to a generated soulmate.
func (c *Client) CompatibilityAnalysis(ctx context.Context, userSign, soulmateSign, gender string, ethnicities []string) (string, error) {
	ctx, span := otel.Tracer("llm").Start(ctx, "CompatibilityAnalysis",
		trace.WithAttributes(
			attribute.String("llm.model", c.analysisModel),
			attribute.String("astro.user_sign", userSign),
			attribute.String("astro.soulmate_sign", soulmateSign),
		))
	defer span.End()

	prompt := AnalysisPrompt(userSign, soulmateSign, gender, ethnicities)
	out, err := c.complete(ctx, c.analysisModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, 0.9, 800)
	return out, recordErr(span, err)
}

// PersonalityInsight writes a short reading for a freshly onboarded user.
func (c *Client) PersonalityInsight(ctx context.Context, sign, name string) (string, error) {
	ctx, span := otel.Tracer("llm").Start(ctx, "PersonalityInsight",
		trace.WithAttributes(attribute.String("llm.model", c.analysisModel)))
	defer span.End()

	out, err := c.complete(ctx, c.analysisModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: InsightPrompt(sign, name)},
	}, 0.8, 400)
	return out, recordErr(span, err)
}

// GenerateImage renders prompt as a single 1024x1024 image and returns the
// provider's temporary URL.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	ctx, span := otel.Tracer("llm").Start(ctx, "GenerateImage",
		trace.WithAttributes(attribute.String("llm.model", c.imageModel)))
	defer span.End()

	if !c.Configured() {
		return "", recordErr(span, ErrNotConfigured)
	}
	resp, err := c.api.CreateImage(ctx, openai.ImageRequest{
		Prompt:         prompt,
		Model:          c.imageModel,
		N:              1,
		Size:           openai.CreateImageSize1024x1024,
		Quality:        openai.CreateImageQualityStandard,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", recordErr(span, classify(err))
	}
	if len(resp.Data) == 0 || strings.TrimSpace(resp.Data[0].URL) == "" {
		return "", recordErr(span, ErrEmptyResponse)
	}
	return resp.Data[0].URL, nil
}

func (c *Client) complete(ctx context.Context, model string, msgs []openai.ChatCompletionMessage, temperature float32, maxTokens int) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       model,
		Messages:    msgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", ErrEmptyResponse
	}
	return content, nil
}

// classify maps credential failures to ErrUnauthorized and wraps the rest.
func classify(err error) error {
	status := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return fmt.Errorf("openai: %w", err)
}

func recordErr(span trace.Span, err error) error {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func firstNonEmpty(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
