package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"lawsnap/internal/advisor"
	"lawsnap/internal/app"
	"lawsnap/internal/cache"
	"lawsnap/internal/config"
	"lawsnap/internal/insight"
	"lawsnap/internal/laws"
	"lawsnap/internal/llm"
	"lawsnap/internal/quiz"
	"lawsnap/internal/session"
	"lawsnap/internal/store"
)

func stubDeps(t *testing.T, client llm.Client) {
	t.Helper()
	dir, err := advisor.LoadDirectory("")
	require.NoError(t, err)
	deps := app.Deps{
		Config: config.Config{LLMModel: "test-model", CacheTTL: 60},
		Log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Laws: laws.NewTable([]laws.Law{
			{Profession: "Doctor", Name: "Clinical Establishments Act", Description: "Registration of clinics"},
			{Profession: "Farmer", Name: "Seeds Act", Description: "Quality of seeds sold"},
		}),
		LLM:      client,
		Sessions: session.NewMemoryStore(time.Hour),
		Cache:    cache.NewNoOpCache(),
		Results:  store.NewMemoryStore(),
		Lawyers:  dir,
	}
	orig := buildDeps
	buildDeps = func(context.Context) (app.Deps, error) { return deps, nil }
	t.Cleanup(func() { buildDeps = orig })
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{args[0], "--plain"}, args[1:]...))
	err := cmd.Execute()
	return out.String(), err
}

func TestRareLawsListsProfessions(t *testing.T) {
	m := new(llm.MockClient)
	stubDeps(t, m)

	out, err := run(t, "", "rare-laws")
	require.NoError(t, err)
	assert.Contains(t, out, "Professions:\n  Doctor\n  Farmer\n")
	m.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestRareLaws(t *testing.T) {
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Messages[0].Content, "Provide results in Tamil")
	})).Return("Section 12 is rarely cited.", nil).Once()
	stubDeps(t, m)

	out, err := run(t, "", "rare-laws", "--profession", "Doctor", "--language", "Tamil")
	require.NoError(t, err)
	assert.Contains(t, out, "Section 12 is rarely cited.")
	m.AssertExpectations(t)
}

func TestRareLawsAllDataset(t *testing.T) {
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.MaxTokens == 1000 && strings.Contains(req.Messages[0].Content, "Seeds Act")
	})).Return("dataset answer", nil).Once()
	stubDeps(t, m)

	out, err := run(t, "", "rare-laws", "--profession", "Doctor", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "dataset answer")
	m.AssertExpectations(t)
}

func TestRareLawsErrors(t *testing.T) {
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.Anything).
		Return("", &llm.StatusError{StatusCode: 404, Body: "model not loaded"}).Once()
	stubDeps(t, m)

	out, err := run(t, "", "rare-laws", "--profession", "Doctor")
	require.NoError(t, err)
	assert.Contains(t, out, "Error 404: model not loaded")

	_, err = run(t, "", "rare-laws", "--profession", "Pilot")
	assert.ErrorIs(t, err, insight.ErrUnknownProfession)

	_, err = run(t, "", "rare-laws", "--profession", "Doctor", "--language", "French")
	assert.ErrorContains(t, err, "unsupported language")
}

func TestAdvise(t *testing.T) {
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Messages[1].Content, "my landlord kept the deposit")
	})).Return("Deposit dispute.", nil).Once()
	m.On("Complete", mock.Anything, mock.Anything).Return("Send a legal notice.", nil).Once()
	stubDeps(t, m)

	out, err := run(t, "my landlord kept the deposit\n", "advise")
	require.NoError(t, err)
	assert.Contains(t, out, "## Case Summary\n\nDeposit dispute.")
	assert.Contains(t, out, "Send a legal notice.")
	assert.Contains(t, out, "## Recommended Lawyer")
	m.AssertExpectations(t)
}

func TestAdviseWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notice.txt")
	require.NoError(t, os.WriteFile(path, []byte("Show cause notice"), 0o600))

	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return strings.Contains(req.Messages[1].Content, "Attached document (notice.txt)")
	})).Return("summary", nil).Once()
	m.On("Complete", mock.Anything, mock.Anything).Return("measures", nil).Once()
	stubDeps(t, m)

	_, err := run(t, "", "advise", "--file", path, "what", "now")
	require.NoError(t, err)
	m.AssertExpectations(t)
}

func TestAdviseEmptyQuery(t *testing.T) {
	stubDeps(t, new(llm.MockClient))
	_, err := run(t, "  \n", "advise")
	assert.EqualError(t, err, "empty query")
}

func testQuiz() quiz.Quiz {
	return quiz.Quiz{
		Title:    "Seeds Act",
		Question: "What does the act regulate?",
		Options:  [quiz.OptionCount]string{"Fishing", "Seed quality", "Tractors", "Rainfall"},
		Answer:   2,
	}
}

func TestQuiz(t *testing.T) {
	tests := []struct {
		name     string
		stdin    string
		contains []string
		wantErr  error
	}{
		{"correct", "2\n", []string{"What does the act regulate?", "4. Rainfall", "Correct! You earned 1 point."}, nil},
		{"wrong", "3\n", []string{"Wrong answer. Correct answer: 2. Seed quality"}, nil},
		{"no answer reveals", "", []string{"Correct answer: 2. Seed quality"}, nil},
		{"out of range", "9\n", nil, session.ErrInvalidChoice},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(llm.MockClient)
			m.On("Complete", mock.Anything, mock.Anything).Return(quiz.Format(testQuiz()), nil).Once()
			stubDeps(t, m)

			out, err := run(t, tt.stdin, "quiz", "--profession", "Farmer")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
			assert.NotContains(t, out, "Correct Answer:")
		})
	}
}

func TestQuizFailures(t *testing.T) {
	m := new(llm.MockClient)
	m.On("Complete", mock.Anything, mock.Anything).Return("no idea", nil).Once()
	m.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("dial tcp: connection refused")).Once()
	stubDeps(t, m)

	out, err := run(t, "", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, quiz.RetryMessage)

	out, err = run(t, "", "quiz")
	require.NoError(t, err)
	assert.Contains(t, out, "Error: dial tcp: connection refused")

	_, err = run(t, "", "quiz", "--profession", "Pilot")
	assert.ErrorContains(t, err, "unknown profession")
}

func TestFormatAdvice(t *testing.T) {
	got := formatAdvice(advisor.Advice{
		Summary: "Error 500: boom",
		Lawyer:  advisor.Lawyer{Name: "A", Specialty: "Tax", Contact: "123"},
	})
	assert.NotContains(t, got, "Legal Analysis")
	assert.Contains(t, got, "**A**, Tax (123)")
}
