package main

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/knowledge-engine/gowvec/internal/text"
)

func newTransformCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "transform <corpus>",
		Short: "Fit on a corpus and print its feature matrix as CSV",
		Long: `Fit on a corpus file (one document per line, "-" for stdin) and print
one CSV row per document. The header holds the feature names.

Examples:
  gow transform corpus.txt
  gow transform --window 3 --tokenizer stem corpus.txt > features.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, _, docs, err := opts.fit(args[0])
			if err != nil {
				return err
			}
			x, err := model.Transform(cmd.Context(), docs)
			if err != nil {
				return err
			}
			names, err := model.FeatureNames()
			if err != nil {
				return err
			}

			w := csv.NewWriter(cmd.OutOrStdout())
			if err := w.Write(names); err != nil {
				return err
			}
			row := make([]string, len(names))
			for _, vec := range x {
				for i, v := range vec {
					row[i] = strconv.FormatFloat(v, 'g', -1, 64)
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
			w.Flush()
			return w.Error()
		},
	}
}

func newFeaturesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "features <corpus>",
		Short: "Print the fitted vocabulary, one word per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, _, _, err := opts.fit(args[0])
			if err != nil {
				return err
			}
			names, err := model.FeatureNames()
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newImportantCmd(opts *options) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "important <corpus> <text...>",
		Short: "Rank vocabulary words by in-degree in a text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			model, tok, _, err := opts.fit(args[0])
			if err != nil {
				return err
			}
			ranked, err := model.MostImportantWords(text.Normalize(tok, strings.Join(args[1:], " ")))
			if err != nil {
				return err
			}
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}
			for _, wc := range ranked {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", wc.Word, wc.Count)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of words (0 = all)")
	return cmd
}
