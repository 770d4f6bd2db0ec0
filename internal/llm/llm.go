package llm

import (
	"context"
	"errors"
	"fmt"
)

// Role is the author of a chat turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one chat turn.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a single chat completion call. An empty Model selects the
// client's configured model.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Client is a minimal chat completion interface to allow pluggable providers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// ErrNoChoices is returned when the endpoint answers without any message.
var ErrNoChoices = errors.New("llm: no choices returned")

// StatusError is a non-success response from the endpoint.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("Error %d: %s", e.StatusCode, e.Body)
}

// System builds a system turn.
func System(content string) Message { return Message{Role: RoleSystem, Content: content} }

// User builds a user turn.
func User(content string) Message { return Message{Role: RoleUser, Content: content} }

// Query performs one call and returns the message text. Failures are
// reported as a descriptive string in place of the text so callers can
// display it directly.
func Query(ctx context.Context, c Client, req Request) string {
	text, err := c.Complete(ctx, req)
	if err != nil {
		return ErrorText(err)
	}
	return text
}

// ErrorText formats err the way it is shown in place of model output.
func ErrorText(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Error()
	}
	return "Error: " + err.Error()
}
