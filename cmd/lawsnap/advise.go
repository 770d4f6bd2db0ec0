package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lawsnap/internal/advisor"
	"lawsnap/internal/app"
	"lawsnap/internal/document"
)

func newAdviseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advise [query...]",
		Short: "Summarize a legal query and suggest measures",
		Long: `Summarizes a legal situation, asks for a structured legal analysis of the
summary and recommends a lawyer. The query is read from stdin when no
arguments or file are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			file, _ := cmd.Flags().GetString("file")
			if query == "" && file == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read query: %w", err)
				}
				query = string(raw)
			}

			return withDeps(cmd.Context(), func(deps app.Deps) error {
				if file != "" {
					text, err := readDocument(file)
					if err != nil {
						return err
					}
					text, _ = document.Excerpt(text, deps.Config.AttachmentMaxWords)
					query = advisor.ComposeQuery(query, filepath.Base(file), text)
				}
				query = strings.TrimSpace(query)
				if query == "" {
					return errors.New("empty query")
				}

				advice, err := advisor.New(deps.LLM, deps.Lawyers, deps.Log).Assist(cmd.Context(), query)
				if err != nil {
					deps.Log.Debug("assistance incomplete", "err", err)
				}
				printMarkdown(cmd, formatAdvice(advice))
				return nil
			})
		},
	}
	cmd.Flags().StringP("file", "f", "", "PDF or TXT document to attach to the query")
	return cmd
}

func readDocument(path string) (string, error) {
	contentType, err := document.DetectType(path, "")
	if err != nil {
		return "", err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return document.Extract(contentType, content)
}

func formatAdvice(a advisor.Advice) string {
	var b strings.Builder
	b.WriteString("## Case Summary\n\n")
	b.WriteString(a.Summary)
	if a.Measures != "" {
		b.WriteString("\n\n## Legal Analysis & Suggested Measures\n\n")
		b.WriteString(a.Measures)
	}
	if a.Lawyer.Name != "" {
		fmt.Fprintf(&b, "\n\n## Recommended Lawyer\n\n**%s**, %s (%s)\n", a.Lawyer.Name, a.Lawyer.Specialty, a.Lawyer.Contact)
	}
	return b.String()
}
