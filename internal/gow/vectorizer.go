// Package gow implements the graph-of-words (GoW) text vectorizer.
//
// A document is read as a directed co-occurrence graph in which every token
// points to the tokens that follow it within a sliding window. The feature
// value of a word is the number of distinct words pointing at it, divided by
// the window size. Documents are expected pre-tokenized: tokens are the
// whitespace-separated fields of the input string, used verbatim.
//
// Fitting is separated from use: Vectorizer.Fit returns an immutable Model
// that can be shared between goroutines.
package gow

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// DefaultWindow is the window used when none is configured.
const DefaultWindow = 5

// Vectorizer holds the configuration of a GoW vectorizer.
type Vectorizer struct {
	window  int
	workers int
	logger  *logrus.Entry
}

// Option configures a Vectorizer.
type Option func(*Vectorizer)

// WithWindow sets the co-occurrence window. It is both the look-ahead span
// and the normalization divisor.
func WithWindow(window int) Option {
	return func(v *Vectorizer) { v.window = window }
}

// WithWorkers bounds the number of documents encoded concurrently by
// Transform. Values below 1 mean sequential.
func WithWorkers(workers int) Option {
	return func(v *Vectorizer) { v.workers = workers }
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *logrus.Entry) Option {
	return func(v *Vectorizer) { v.logger = logger }
}

// New creates a Vectorizer.
func New(opts ...Option) (*Vectorizer, error) {
	v := &Vectorizer{
		window:  DefaultWindow,
		workers: 1,
		logger:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.window < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWindow, v.window)
	}
	if v.workers < 1 {
		v.workers = 1
	}
	v.logger = v.logger.WithField("component", "gow")
	return v, nil
}

// Window returns the configured window.
func (v *Vectorizer) Window() int {
	return v.window
}

// Fit learns the vocabulary of docs. Every call returns a new Model; earlier
// models are unaffected.
func (v *Vectorizer) Fit(docs []string) *Model {
	vocab := BuildVocabulary(docs)
	v.logger.WithFields(logrus.Fields{
		"documents":  len(docs),
		"n_features": vocab.Len(),
		"window":     v.window,
	}).Debug("Fitted vocabulary")

	return &Model{
		vocab:   vocab,
		window:  v.window,
		workers: v.workers,
		logger:  v.logger,
	}
}

// FitTransform fits on docs and transforms the same docs.
func (v *Vectorizer) FitTransform(ctx context.Context, docs []string) (*Model, [][]float64, error) {
	m := v.Fit(docs)
	x, err := m.Transform(ctx, docs)
	if err != nil {
		return nil, nil, err
	}
	return m, x, nil
}

// Model is a fitted vectorizer. It is read-only and safe for concurrent use.
type Model struct {
	vocab   *Vocabulary
	window  int
	workers int
	logger  *logrus.Entry
}

// Window returns the window the model was fitted with.
func (m *Model) Window() int {
	if m == nil {
		return 0
	}
	return m.window
}

// NFeatures is the number of columns produced by Transform.
func (m *Model) NFeatures() int {
	if m == nil {
		return 0
	}
	return m.vocab.Len()
}

// Vocabulary returns the fitted vocabulary.
func (m *Model) Vocabulary() *Vocabulary {
	if m == nil {
		return nil
	}
	return m.vocab
}

// FeatureNames returns the vocabulary words, index-aligned with the columns
// of Transform's output.
func (m *Model) FeatureNames() ([]string, error) {
	if m == nil {
		return nil, ErrNotFitted
	}
	return m.vocab.Words(), nil
}

// Transform encodes each document into a row of the output matrix. Rows keep
// the order of docs whatever the number of workers.
func (m *Model) Transform(ctx context.Context, docs []string) ([][]float64, error) {
	if m == nil {
		return nil, ErrNotFitted
	}
	m.logger.WithField("documents", len(docs)).Debug("Transforming documents")

	out := make([][]float64, len(docs))
	if m.workers == 1 {
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out[i] = m.encode(doc)
		}
		return out, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, doc := range docs {
		i, doc := i, doc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = m.encode(doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// TransformOne encodes a single document.
func (m *Model) TransformOne(doc string) ([]float64, error) {
	if m == nil {
		return nil, ErrNotFitted
	}
	return m.encode(doc), nil
}

func (m *Model) encode(doc string) []float64 {
	return Encode(BuildGraph(strings.Fields(doc), m.window), m.vocab, m.window)
}

// WordCount is a vocabulary word with its raw in-degree in some text.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// MostImportantWords ranks every vocabulary word by its in-degree in the
// graph of text, highest first. Ties are ordered by descending word. Counts
// are not divided by the window.
func (m *Model) MostImportantWords(text string) ([]WordCount, error) {
	if m == nil {
		return nil, ErrNotFitted
	}
	g := BuildGraph(strings.Fields(text), m.window)

	out := make([]WordCount, m.vocab.Len())
	for i, word := range m.vocab.words {
		out[i] = WordCount{Word: word, Count: g.InDegree(word)}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word > out[j].Word
	})
	return out, nil
}
