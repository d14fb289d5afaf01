package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	apperrors "github.com/aicommit/aicommit/internal/pkg/errors"
	"github.com/aicommit/aicommit/internal/pkg/message"
	"github.com/google/uuid"
	"github.com/sashabaranov/go-openai"
)

const (
	// DefaultEndpoint is the OpenRouter API base URL.
	DefaultEndpoint = "https://openrouter.ai/api/v1"

	// DefaultModel is the model used when none is configured.
	DefaultModel = "x-ai/grok-4.1-fast"

	// DefaultMaxTokens is the default max tokens for AI generation.
	DefaultMaxTokens = 500

	providerName = "openrouter"
)

// OpenRouterProvider implements Provider on top of the OpenAI-compatible
// OpenRouter chat-completion endpoint.
type OpenRouterProvider struct {
	client         *openai.Client
	config         ProviderConfig
	promptTemplate *PromptTemplate
}

// NewOpenRouterProvider creates a new OpenRouter provider.
func NewOpenRouterProvider(config ProviderConfig) (*OpenRouterProvider, error) {
	if strings.TrimSpace(config.APIKey) == "" {
		return nil, errors.New("API key is required for OpenRouter provider")
	}

	if config.Model == "" {
		config.Model = DefaultModel
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = DefaultMaxTokens
	}
	if config.Endpoint == "" {
		config.Endpoint = DefaultEndpoint
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	clientConfig.BaseURL = strings.TrimRight(config.Endpoint, "/")

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
	clientConfig.HTTPClient = &http.Client{
		Timeout:   config.Timeout,
		Transport: &headerTransport{base: transport},
	}

	return &OpenRouterProvider{
		client:         openai.NewClientWithConfig(clientConfig),
		config:         config,
		promptTemplate: NewPromptTemplate(config.Format),
	}, nil
}

// Name returns the provider name.
func (p *OpenRouterProvider) Name() string {
	return providerName
}

// GenerateCommitMessage sends the diff to the model and returns the cleaned
// commit message. Every failure is reported as a generation error.
func (p *OpenRouterProvider) GenerateCommitMessage(ctx context.Context, diff string) (string, error) {
	userPrompt := p.promptTemplate.UserPrompt(diff)

	chatReq := openai.ChatCompletionRequest{
		Model: p.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: p.promptTemplate.SystemPrompt(),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: p.config.Temperature,
		MaxTokens:   p.config.MaxTokens,
	}

	requestID := uuid.NewString()
	ctx = withRequestID(ctx, requestID)
	ctx, errBody := withErrorBody(ctx)

	apperrors.LogAPIRequest(providerName, p.config.Endpoint, p.config.Model, requestID, len(userPrompt))
	startTime := time.Now()

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", apperrors.NewGenerationError(describeAPIError(err, errBody.String()))
	}

	responseLen := 0
	if len(resp.Choices) > 0 {
		responseLen = len(resp.Choices[0].Message.Content)
	}
	apperrors.LogAPIResponse(providerName, http.StatusOK, responseLen, time.Since(startTime))

	if len(resp.Choices) == 0 {
		return "", apperrors.NewGenerationError(errors.New("response contained no choices"))
	}

	msg := message.Clean(resp.Choices[0].Message.Content, p.config.Format)
	if msg == "" {
		return "", apperrors.NewGenerationError(errors.New("response contained an empty message"))
	}

	return msg, nil
}

// describeAPIError turns a client error into a diagnostic carrying the
// HTTP status and, when the server answered, its raw response body.
func describeAPIError(err error, body string) error {
	var status int
	var detail string

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
		detail = apiErr.Message
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
		detail = strings.TrimSpace(string(reqErr.Body))
		if detail == "" && reqErr.Err != nil {
			detail = reqErr.Err.Error()
		}
	default:
		return err
	}

	if body != "" {
		detail = body
	}
	return fmt.Errorf("OpenRouter API error (%d): %s", status, detail)
}
