package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestQuery(t *testing.T) {
	tests := []struct {
		name string
		text string
		err  error
		want string
	}{
		{"success", "answer", nil, "answer"},
		{"status error", "", &StatusError{StatusCode: 503, Body: "busy"}, "Error 503: busy"},
		{"wrapped status error", "", fmt.Errorf("call: %w", &StatusError{StatusCode: 404, Body: "no model"}), "Error 404: no model"},
		{"transport error", "", errors.New("connection refused"), "Error: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(MockClient)
			m.On("Complete", mock.Anything, mock.Anything).Return(tt.text, tt.err).Once()

			got := Query(context.Background(), m, Request{Messages: []Message{User("x")}})
			assert.Equal(t, tt.want, got)
			m.AssertExpectations(t)
		})
	}
}

func TestMessageHelpers(t *testing.T) {
	assert.Equal(t, Message{Role: RoleSystem, Content: "a"}, System("a"))
	assert.Equal(t, Message{Role: RoleUser, Content: "b"}, User("b"))
}
