package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lawsnap/internal/app"
	"lawsnap/internal/llm"
	"lawsnap/internal/quiz"
	"lawsnap/internal/session"
)

func newQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Generate one multiple-choice question about a law",
		Long: `Generates a multiple-choice question about a random law, optionally limited
to one profession, and checks the answer read from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profession, _ := cmd.Flags().GetString("profession")
			return withDeps(cmd.Context(), func(deps app.Deps) error {
				candidates := deps.Laws.All()
				if profession != "" {
					candidates = deps.Laws.ByProfession(profession)
					if len(candidates) == 0 {
						return fmt.Errorf("unknown profession %q", profession)
					}
				}

				q, err := quiz.NewGenerator(deps.LLM, deps.Log).GenerateFrom(cmd.Context(), candidates)
				out := cmd.OutOrStdout()
				switch {
				case errors.Is(err, quiz.ErrNoQuiz):
					fmt.Fprintln(out, quiz.RetryMessage)
					return nil
				case err != nil:
					fmt.Fprintln(out, llm.ErrorText(err))
					return nil
				}

				printMarkdown(cmd, formatQuestion(q))
				return askAnswer(cmd, q)
			})
		},
	}
	cmd.Flags().StringP("profession", "p", "", "Only use laws of this profession")
	return cmd
}

// formatQuestion renders the quiz without revealing the answer.
func formatQuestion(q quiz.Quiz) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Law Title:** %s\n\n**Question:** %s\n\n", q.Title, q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "%d. %s\n", i+1, opt)
	}
	return b.String()
}

// askAnswer reads one answer from stdin. With no answer the correct option is
// revealed.
func askAnswer(cmd *cobra.Command, q quiz.Quiz) error {
	out := cmd.OutOrStdout()
	fmt.Fprint(out, "Your answer (1-4): ")

	sc := bufio.NewScanner(cmd.InOrStdin())
	line := ""
	if sc.Scan() {
		line = strings.TrimSpace(sc.Text())
	}
	fmt.Fprintln(out)
	if line == "" {
		fmt.Fprintf(out, "Correct answer: %d. %s\n", q.Answer, q.CorrectOption())
		return nil
	}

	choice, err := strconv.Atoi(line)
	if err != nil {
		return session.ErrInvalidChoice
	}
	s := session.New()
	s.Begin(q)
	outcome, err := s.Submit(choice)
	if err != nil {
		return err
	}
	if outcome.Correct {
		fmt.Fprintf(out, "Correct! You earned %d point.\n", outcome.Points)
		return nil
	}
	fmt.Fprintf(out, "Wrong answer. Correct answer: %d. %s\n", q.Answer, q.CorrectOption())
	return nil
}
