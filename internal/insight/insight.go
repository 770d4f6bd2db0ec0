// Package insight asks the model which provisions of a profession's laws are
// rarely cited, and why.
package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"lawsnap/internal/cache"
	"lawsnap/internal/laws"
	"lawsnap/internal/llm"
)

// Languages offered for the answer.
var Languages = []string{"English", "Hindi", "Tamil", "Telugu", "Bengali"}

const DefaultLanguage = "English"

var ErrUnknownProfession = errors.New("unknown profession")

const (
	profileTemperature = 0.3
	profileMaxTokens   = 400

	datasetTemperature = 0.7
	datasetMaxTokens   = 1000
)

// Finder builds rare-law prompts from the laws table.
type Finder struct {
	laws  *laws.Table
	llm   llm.Client
	cache cache.Cache
	ttl   time.Duration
	model string
	log   *slog.Logger
}

// NewFinder wires a finder. model only scopes cache keys; the client decides
// which model answers.
func NewFinder(table *laws.Table, client llm.Client, c cache.Cache, ttl time.Duration, model string, log *slog.Logger) *Finder {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	return &Finder{laws: table, llm: client, cache: c, ttl: ttl, model: model, log: log}
}

// Find analyses the laws of one profession and answers in language.
// Successful answers are cached; failures never are.
func (f *Finder) Find(ctx context.Context, profession, language string) (string, error) {
	if !f.laws.HasProfession(profession) {
		return "", fmt.Errorf("%w: %q", ErrUnknownProfession, profession)
	}
	if language == "" {
		language = DefaultLanguage
	}

	key := cache.GenerateCacheKey(f.model, profession, language)
	if hit, err := f.cache.GetInsight(ctx, key); err != nil {
		f.log.Warn("insight cache read failed", "err", err)
	} else if hit != nil {
		f.log.Info("cache hit", "profession", profession, "language", language)
		return hit.Text, nil
	}

	text, err := f.llm.Complete(ctx, llm.Request{
		Messages:    ProfessionMessages(profession, language, f.laws.CSV(f.laws.ByProfession(profession))),
		Temperature: profileTemperature,
		MaxTokens:   profileMaxTokens,
	})
	if err != nil {
		return "", err
	}

	if err := f.cache.SetInsight(ctx, key, &cache.Insight{
		Text:      text,
		Model:     f.model,
		CreatedAt: time.Now(),
	}, f.ttl); err != nil {
		// Log cache write failure but don't fail the request
		f.log.Warn("failed to cache insight", "err", err)
	}
	return text, nil
}

// FindInDataset sends the whole table and asks about one profession, the
// batch mode of the command line tool. Results are not cached.
func (f *Finder) FindInDataset(ctx context.Context, profession string) (string, error) {
	return f.llm.Complete(ctx, llm.Request{
		Messages:    DatasetMessages(profession, f.laws.CSV(f.laws.All())),
		Temperature: datasetTemperature,
		MaxTokens:   datasetMaxTokens,
	})
}

// ProfessionMessages is the single-profession analysis prompt.
func ProfessionMessages(profession, language, csvContent string) []llm.Message {
	return []llm.Message{llm.User(fmt.Sprintf(`Analyze the following legal dataset (CSV format) and suggest rare laws for the profession: %[1]s.
Provide results in %[2]s.

### Data (CSV format):
%[3]s

### Task:
1. Identify laws that are **rarely cited** for %[1]s.
2. Explain why these laws might be less commonly referenced.
3. Provide **insights** on how these rare laws impact legal practice.
4. Suggest potential **scenarios** where these laws could be relevant.

Provide structured reasoning in %[2]s.`, profession, language, csvContent))}
}

// DatasetMessages is the whole-dataset prompt.
func DatasetMessages(profession, csvContent string) []llm.Message {
	return []llm.Message{llm.User(fmt.Sprintf(`Analyze the following legal dataset (CSV format) and suggest rare laws for each profession.

### Data (CSV format):
%[2]s

### Task:
1. Identify laws that are **rarely cited** for %[1]s profession.
2. Explain why these laws might be less commonly referenced.
3. Provide **insights** on how these rare laws impact legal practice.
4. Suggest potential **scenarios** where these laws could be relevant.

Provide structured reasoning for each profession.`, profession, csvContent))}
}

// IsLanguage reports whether language is one of Languages.
func IsLanguage(language string) bool {
	for _, l := range Languages {
		if l == language {
			return true
		}
	}
	return false
}
