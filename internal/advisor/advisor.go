// Package advisor summarizes a legal query and asks the model for a
// structured analysis of the summary.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"lawsnap/internal/llm"
)

const (
	adviceTemperature = 0.3
	adviceMaxTokens   = 400
)

const (
	summarySystemPrompt  = "You are a professional legal consultant. Your role is to summarize legal matters in an informative way, ensuring neutrality and professionalism."
	measuresSystemPrompt = "You are a legal expert providing structured legal solutions. Provide a detailed response outlining general legal measures, compliance requirements and resolution strategies."
)

// Advice is the outcome of one assistance request. When a model call fails,
// its field carries the error text instead of model output.
type Advice struct {
	Summary  string
	Measures string
	Lawyer   Lawyer
}

// Advisor runs the two-step summarize-then-analyse flow.
type Advisor struct {
	llm llm.Client
	dir *Directory
	log *slog.Logger
}

func New(client llm.Client, dir *Directory, log *slog.Logger) *Advisor {
	return &Advisor{llm: client, dir: dir, log: log}
}

// Assist summarizes query and analyses the summary. The returned error is
// the first failed call, already reflected in Advice. A failed summary ends
// the flow after one call: the analysis is never run on an error text.
func (a *Advisor) Assist(ctx context.Context, query string) (Advice, error) {
	var advice Advice

	summary, err := a.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			llm.System(summarySystemPrompt),
			llm.User("Summarize this legal situation without making assumptions about intent:\n\n" + query),
		},
		Temperature: adviceTemperature,
		MaxTokens:   adviceMaxTokens,
	})
	if err != nil {
		a.log.Error("summary failed", "err", err)
		advice.Summary = llm.ErrorText(err)
		advice.Lawyer = a.dir.Recommend(query)
		return advice, fmt.Errorf("summarize: %w", err)
	}
	advice.Summary = summary
	advice.Lawyer = a.dir.Recommend(query + "\n" + summary)

	measures, err := a.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			llm.System(measuresSystemPrompt),
			llm.User("Provide a structured legal analysis and resolution options for this case:\n\n" + summary),
		},
		Temperature: adviceTemperature,
		MaxTokens:   adviceMaxTokens,
	})
	if err != nil {
		a.log.Error("legal analysis failed", "err", err)
		advice.Measures = llm.ErrorText(err)
		return advice, fmt.Errorf("analyse: %w", err)
	}
	advice.Measures = measures
	return advice, nil
}

// ComposeQuery appends attachment text to a typed query.
func ComposeQuery(query, attachmentName, attachment string) string {
	query = strings.TrimSpace(query)
	attachment = strings.TrimSpace(attachment)
	if attachment == "" {
		return query
	}
	return fmt.Sprintf("%s\n\nAttached document (%s):\n%s", query, attachmentName, attachment)
}
