package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mind-engage/introscore/internal/nlp"
	"github.com/mind-engage/introscore/internal/rubric"
	"github.com/mind-engage/introscore/internal/scoring"
	"github.com/mind-engage/introscore/internal/storage"
)

func newRubricCommand(root *rootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "rubric",
		Short: "Work with the weighted legacy rubric",
	}
	cmd.PersistentFlags().StringVar(&dir, "dir", "", "Rubric directory (overrides RUBRIC_DIR)")

	store := func() (*storage.FSStore, error) {
		if dir == "" {
			dir = root.config().RubricDir
		}
		return storage.NewFSStore(dir)
	}

	convert := &cobra.Command{
		Use:   "convert",
		Short: "Convert rubric.xlsx into rubric.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bs, err := store()
			if err != nil {
				return err
			}
			r, err := rubric.Convert(bs)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d criteria)\n", rubric.JSONKey, len(r.Criteria))
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the rubric that would be loaded",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bs, err := store()
			if err != nil {
				return err
			}
			r, err := rubric.NewLoader(bs).Load()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), r)
		},
	}

	score := &cobra.Command{
		Use:   "score [transcript-file|-]",
		Short: "Score a transcript against the weighted rubric",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			text := strings.TrimSpace(string(raw))
			if text == "" {
				return scoring.ErrEmptyTranscript
			}
			bs, err := store()
			if err != nil {
				return err
			}
			r, err := rubric.NewLoader(bs).Load()
			if err != nil {
				return err
			}

			cfg := root.config()
			log := root.logger(cfg, cmd.ErrOrStderr())
			var embedder scoring.Embedder
			if prov := nlp.NewProvider(nlpConfig(cfg), log); prov.HasEmbedder() {
				embedder = prov
			}
			return printJSON(cmd.OutOrStdout(), rubric.NewScorer(embedder, log).Score(cmd.Context(), text, r))
		},
	}

	cmd.AddCommand(convert, show, score)
	return cmd
}
