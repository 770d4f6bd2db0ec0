package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lawsnap/internal/laws"
	"lawsnap/internal/llm"
)

func newTestGenerator(client llm.Client) *Generator {
	g := NewGenerator(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	g.intn = func(int) int { return 1 }
	return g
}

var rti = laws.Law{Profession: "Citizen", Name: "RTI Act", Description: "Access to information"}

func TestGenerate(t *testing.T) {
	reply := Format(Quiz{
		Title:    "ignored",
		Question: "What does RTI grant?",
		Options:  [OptionCount]string{"Access", "Tax relief", "Bail", "Land"},
		Answer:   1,
	})

	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return len(req.Messages) == 2 &&
			req.Messages[0].Role == llm.RoleSystem &&
			strings.Contains(req.Messages[1].Content, "Law Title: RTI Act") &&
			strings.Contains(req.Messages[1].Content, "Access to information") &&
			req.MaxTokens == quizMaxTokens
	})).Return(reply, nil).Once()

	q, err := newTestGenerator(m).Generate(context.Background(), rti)
	require.NoError(t, err)
	assert.NotEmpty(t, q.ID)
	assert.Equal(t, "RTI Act", q.Title)
	assert.Equal(t, "Access", q.CorrectOption())
	m.AssertExpectations(t)
}

func TestGenerateUnparseable(t *testing.T) {
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.Anything).Return("I cannot help with that.", nil).Once()

	_, err := newTestGenerator(m).Generate(context.Background(), rti)
	assert.ErrorIs(t, err, ErrNoQuiz)
	m.AssertExpectations(t)
}

func TestGenerateEndpointError(t *testing.T) {
	endpointErr := &llm.StatusError{StatusCode: 500, Body: "down"}
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.Anything).Return("", endpointErr).Once()

	_, err := newTestGenerator(m).Generate(context.Background(), rti)
	var se *llm.StatusError
	assert.True(t, errors.As(err, &se))
	assert.False(t, errors.Is(err, ErrNoQuiz))
}

func TestGenerateFrom(t *testing.T) {
	candidates := []laws.Law{
		{Profession: "Doctor", Name: "First", Description: "d1"},
		{Profession: "Doctor", Name: "Second", Description: "d2"},
	}
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Messages[1].Content, "Law Title: Second")
	})).Return("Question: Q?\n1. a\n2. b\n3. c\n4. d\nCorrect Answer: 2", nil).Once()

	q, err := newTestGenerator(m).GenerateFrom(context.Background(), candidates)
	require.NoError(t, err)
	assert.Equal(t, "Second", q.Title)

	_, err = newTestGenerator(m).GenerateFrom(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoLaws)
	m.AssertExpectations(t)
}

func TestMessagesEmbedTemplate(t *testing.T) {
	msgs := Messages(rti)
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[1].Content, Format(exampleQuiz))
}
