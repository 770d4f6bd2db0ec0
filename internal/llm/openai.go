package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// OpenAIClient calls an OpenAI-compatible Chat Completions endpoint, such as
// the one LM Studio serves on localhost.
type OpenAIClient struct {
	model   string
	timeout time.Duration
	client  *openai.Client
}

// NewOpenAIClient builds a client against baseURL. Retries are disabled: each
// Complete is exactly one HTTP request.
func NewOpenAIClient(baseURL, apiKey, model string, timeout time.Duration, opts ...option.RequestOption) (*OpenAIClient, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	if model == "" {
		return nil, fmt.Errorf("model required")
	}
	if apiKey == "" {
		// Local servers ignore the key but the SDK insists on one.
		apiKey = "local"
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	opts = append([]option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}, opts...)
	cli := openai.NewClient(opts...)
	return &OpenAIClient{
		model:   model,
		timeout: timeout,
		client:  &cli,
	}, nil
}

func (c *OpenAIClient) Complete(ctx context.Context, req Request) (string, error) {
	if c == nil || c.client == nil {
		return "", fmt.Errorf("nil openai client")
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	model := req.Model
	if model == "" {
		model = c.model
	}
	params := openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(model),
		Messages:    buildMessages(req.Messages),
		Temperature: openai.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return "", &StatusError{StatusCode: apiErr.StatusCode, Body: errorBody(apiErr)}
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}
	return resp.Choices[0].Message.Content, nil
}

func buildMessages(msgs []Message) []openai.ChatCompletionMessageParamUnion {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(msgs))
	for _, m := range msgs {
		switch m.Role {
		case RoleSystem:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		case RoleAssistant:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfAssistant: &openai.ChatCompletionAssistantMessageParam{
					Content: openai.ChatCompletionAssistantMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		default:
			out = append(out, openai.ChatCompletionMessageParamUnion{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(m.Content),
					},
				},
			})
		}
	}
	return out
}

// errorBody recovers the raw response body of a failed call.
func errorBody(e *openai.Error) string {
	if e.Response != nil && e.Response.Body != nil {
		if b, err := io.ReadAll(e.Response.Body); err == nil && len(b) > 0 {
			return strings.TrimSpace(string(b))
		}
	}
	if raw := e.RawJSON(); raw != "" {
		return raw
	}
	return http.StatusText(e.StatusCode)
}
