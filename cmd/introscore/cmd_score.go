package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mind-engage/introscore/internal/nlp"
	"github.com/mind-engage/introscore/internal/scoring"
)

type scoreOptions struct {
	duration  float64
	noGrammar bool
	semantic  bool
}

func newScoreCommand(root *rootOptions) *cobra.Command {
	opts := &scoreOptions{}

	cmd := &cobra.Command{
		Use:   "score [transcript-file|-]",
		Short: "Score a transcript and print the JSON report",
		Long: `Score a transcript read from a file, or from stdin when the argument is
omitted or "-". The report has the same shape as POST /api/v2/evaluate.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text, err := scoring.Validate(string(raw))
			if err != nil {
				return err
			}

			cfg := root.config()
			if opts.noGrammar {
				cfg.LanguageToolURL = ""
			}
			if cmd.Flags().Changed("semantic") {
				cfg.EnableSemantic = opts.semantic
			}
			log := root.logger(cfg, cmd.ErrOrStderr())
			ev := newEvaluator(cfg, nlp.NewProvider(nlpConfig(cfg), log), log)

			var duration *float64
			if cmd.Flags().Changed("duration") {
				if opts.duration < 0 {
					return fmt.Errorf("--duration must be >= 0")
				}
				duration = &opts.duration
			}
			res, err := ev.Evaluate(cmd.Context(), text, duration)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().Float64Var(&opts.duration, "duration", 0, "Recording length in seconds (enables speech-rate scoring)")
	cmd.Flags().BoolVar(&opts.noGrammar, "no-grammar", false, "Skip LanguageTool and use the default grammar score")
	cmd.Flags().BoolVar(&opts.semantic, "semantic", false, "Override ENABLE_SEMANTIC")
	return cmd
}

func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("reading transcript: %w", err)
	}
	return b, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
