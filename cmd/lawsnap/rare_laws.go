package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"lawsnap/internal/app"
	"lawsnap/internal/insight"
	"lawsnap/internal/llm"
)

func newRareLawsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rare-laws",
		Short: "Find rarely cited laws for a profession",
		Long: `Asks the model which laws of a profession are rarely cited, why, and where
they still matter. Without --profession the known professions are listed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			profession, _ := cmd.Flags().GetString("profession")
			language, _ := cmd.Flags().GetString("language")
			all, _ := cmd.Flags().GetBool("all")

			if !insight.IsLanguage(language) {
				return fmt.Errorf("unsupported language %q (choose from %s)", language, strings.Join(insight.Languages, ", "))
			}

			return withDeps(cmd.Context(), func(deps app.Deps) error {
				if profession == "" {
					out := cmd.OutOrStdout()
					fmt.Fprintln(out, "Professions:")
					for _, p := range deps.Laws.Professions() {
						fmt.Fprintln(out, "  "+p)
					}
					return nil
				}

				finder := insight.NewFinder(deps.Laws, deps.LLM, deps.Cache, cacheTTL(deps), deps.Config.LLMModel, deps.Log)
				var (
					text string
					err  error
				)
				if all {
					text, err = finder.FindInDataset(cmd.Context(), profession)
				} else {
					text, err = finder.Find(cmd.Context(), profession, language)
				}
				if err != nil {
					if errors.Is(err, insight.ErrUnknownProfession) {
						return err
					}
					text = llm.ErrorText(err)
				}
				printMarkdown(cmd, text)
				return nil
			})
		},
	}
	cmd.Flags().StringP("profession", "p", "", "Profession to analyse")
	cmd.Flags().StringP("language", "l", insight.DefaultLanguage, "Answer language")
	cmd.Flags().Bool("all", false, "Send the whole dataset instead of the profession's rows")
	return cmd
}
