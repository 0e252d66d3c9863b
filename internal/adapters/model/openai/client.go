package openai

import (
	"context"

	"github.com/bnema/repobrief/internal/domain"
	"github.com/bnema/repobrief/internal/ports"
	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

var _ ports.ModelClient = (*Client)(nil)

// Client implements the model collaborator over the OpenAI Chat Completions
// API. Each Invoke is one blocking request; the orchestrator owns pacing and
// budget gating.
type Client struct {
	client openai.Client
}

func NewClient(apiKey string, opts ...option.RequestOption) *Client {
	opts = append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)

	return &Client{client: openai.NewClient(opts...)}
}

func (c *Client) Invoke(ctx context.Context, req ports.ModelRequest) (string, domain.Usage, error) {
	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.Prompt),
		},
	})
	if err != nil {
		return "", domain.Usage{}, &domain.ModelError{Model: req.Model, Err: err}
	}

	usage := domain.Usage{
		InputTokens:       completion.Usage.PromptTokens,
		OutputTokens:      completion.Usage.CompletionTokens,
		CachedInputTokens: completion.Usage.PromptTokensDetails.CachedTokens,
	}

	if len(completion.Choices) == 0 {
		return "", usage, &domain.ModelError{Model: req.Model, Err: errNoChoices}
	}

	return completion.Choices[0].Message.Content, usage, nil
}
