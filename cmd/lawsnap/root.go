package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"lawsnap/internal/app"
	"lawsnap/internal/render"
)

// buildDeps is swapped out in tests.
var buildDeps = app.Build

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "lawsnap",
		Short: "LawSnap - AI legal platform",
		Long: `LawSnap finds rarely cited laws for a profession, summarizes legal queries
and quizzes you on the laws in a CSV dataset, using a locally hosted LLM.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().Bool("plain", false, "Print raw markdown instead of styled terminal output")
	root.PersistentFlags().Int("width", 80, "Word wrap width for terminal output")

	root.AddCommand(
		newServeCmd(),
		newRareLawsCmd(),
		newAdviseCmd(),
		newQuizCmd(),
	)
	return root
}

// withDeps builds the shared dependencies for one command run.
func withDeps(ctx context.Context, fn func(app.Deps) error) error {
	deps, err := buildDeps(ctx)
	if err != nil {
		return fmt.Errorf("failed to build dependencies: %w", err)
	}
	defer deps.Close()
	return fn(deps)
}

func printMarkdown(cmd *cobra.Command, md string) {
	plain, _ := cmd.Flags().GetBool("plain")
	if plain {
		fmt.Fprintln(cmd.OutOrStdout(), md)
		return
	}
	width, _ := cmd.Flags().GetInt("width")
	fmt.Fprint(cmd.OutOrStdout(), render.Terminal(md, width))
}

func cacheTTL(deps app.Deps) time.Duration {
	return time.Duration(deps.Config.CacheTTL) * time.Second
}
