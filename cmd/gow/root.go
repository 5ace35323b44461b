package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/knowledge-engine/gowvec/internal/config"
	"github.com/knowledge-engine/gowvec/internal/gow"
	"github.com/knowledge-engine/gowvec/internal/text"
)

// options carries settings shared by every subcommand.
type options struct {
	window    int
	workers   int
	tokenizer string
	stopWords bool
	verbose   bool

	cfg    *config.Config
	logger *logrus.Entry
}

func newRootCmd() *cobra.Command {
	opts := &options{cfg: config.Load()}

	cmd := &cobra.Command{
		Use:          "gow",
		Short:        "Graph-of-words text vectorizer",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger := logrus.New()
			logger.SetOutput(cmd.ErrOrStderr())
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			logger.SetLevel(logrus.WarnLevel)
			if opts.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			opts.logger = logger.WithField("service", "gow-cli")
		},
	}

	flags := cmd.PersistentFlags()
	flags.IntVarP(&opts.window, "window", "w", opts.cfg.Vectorizer.Window, "Co-occurrence window")
	flags.IntVar(&opts.workers, "workers", opts.cfg.Vectorizer.Workers, "Documents encoded in parallel")
	flags.StringVarP(&opts.tokenizer, "tokenizer", "t", opts.cfg.Vectorizer.Tokenizer, "Tokenizer (split|stem)")
	flags.BoolVar(&opts.stopWords, "stopwords", opts.cfg.Vectorizer.DropStopWords, "Drop English stop words")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Debug logging to stderr")

	cmd.AddCommand(newTransformCmd(opts))
	cmd.AddCommand(newFeaturesCmd(opts))
	cmd.AddCommand(newImportantCmd(opts))
	return cmd
}

// fit reads the corpus file, preprocesses it and fits a model on it.
func (o *options) fit(path string) (*gow.Model, text.Tokenizer, []string, error) {
	tok, err := text.New(o.tokenizer, o.cfg.Vectorizer.StemLanguage, o.cfg.Vectorizer.StemExcept, o.stopWords)
	if err != nil {
		return nil, nil, nil, err
	}
	v, err := gow.New(gow.WithWindow(o.window), gow.WithWorkers(o.workers), gow.WithLogger(o.logger))
	if err != nil {
		return nil, nil, nil, err
	}

	raw, err := readCorpus(path)
	if err != nil {
		return nil, nil, nil, err
	}
	docs := text.NormalizeAll(tok, raw)
	return v.Fit(docs), tok, docs, nil
}

// readCorpus loads one document per line; "-" reads stdin.
func readCorpus(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open corpus: %w", err)
		}
		defer f.Close()
		r = f
	}

	var docs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		docs = append(docs, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return docs, nil
}
