package quiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/google/uuid"

	"lawsnap/internal/laws"
	"lawsnap/internal/llm"
)

const (
	quizTemperature = 0.7
	quizMaxTokens   = 400
)

var ErrNoLaws = errors.New("no laws to build a quiz from")

// exampleQuiz is shown to the model as the exact output shape.
var exampleQuiz = Quiz{
	Title:    "<law title>",
	Question: "<question text>",
	Options:  [OptionCount]string{"<option one>", "<option two>", "<option three>", "<option four>"},
	Answer:   2,
}

// Messages builds the chat turns asking for one MCQ about law.
func Messages(law laws.Law) []llm.Message {
	return []llm.Message{
		llm.System("You are a legal educator. You write clear multiple-choice questions that test understanding of a single law."),
		llm.User(fmt.Sprintf(`Create one multiple-choice question about the following law.

Law Title: %s
Description: %s

Rules:
- Exactly four options, numbered 1 to 4.
- Exactly one option is correct.
- State the number of the correct option on the last line.

Reply in exactly this format and nothing else:

%s`, law.Name, law.Description, Format(exampleQuiz))),
	}
}

// Generator asks the model for quizzes.
type Generator struct {
	llm  llm.Client
	log  *slog.Logger
	intn func(int) int
}

// NewGenerator builds a generator over client.
func NewGenerator(client llm.Client, log *slog.Logger) *Generator {
	return &Generator{llm: client, log: log, intn: rand.IntN}
}

// Generate performs a single model call for law. Endpoint failures are
// returned unchanged; replies that do not parse wrap ErrNoQuiz. There is no
// automatic retry: the caller triggers a fresh call.
func (g *Generator) Generate(ctx context.Context, law laws.Law) (Quiz, error) {
	text, err := g.llm.Complete(ctx, llm.Request{
		Messages:    Messages(law),
		Temperature: quizTemperature,
		MaxTokens:   quizMaxTokens,
	})
	if err != nil {
		return Quiz{}, err
	}
	q, err := Parse(law.Name, text)
	if err != nil {
		g.log.Warn("unparseable quiz reply", "law", law.Name, "err", err)
		return Quiz{}, err
	}
	q.ID = uuid.NewString()
	return q, nil
}

// GenerateFrom picks one of candidates at random and generates a quiz for it.
func (g *Generator) GenerateFrom(ctx context.Context, candidates []laws.Law) (Quiz, error) {
	if len(candidates) == 0 {
		return Quiz{}, ErrNoLaws
	}
	return g.Generate(ctx, candidates[g.intn(len(candidates))])
}
