// Package bow implements a bag-of-words count vectorizer, the baseline the
// graph-of-words features are compared against.
package bow

import (
	"errors"
	"fmt"
	"sort"

	"github.com/knowledge-engine/gowvec/internal/text"
)

var (
	// ErrNotFitted is returned when a nil model is used.
	ErrNotFitted = errors.New("bow: vectorizer is not fitted")

	// ErrDuplicateTerm is returned when a fixed vocabulary lists a term twice.
	ErrDuplicateTerm = errors.New("bow: duplicate term in vocabulary")
)

// CountVectorizer converts documents to term count vectors.
//
// When Vocabulary is set it is used as given (column i is Vocabulary[i]) and
// fitting only validates it. Otherwise the vocabulary is every token whose
// document frequency is at least MinDF, in sorted order.
type CountVectorizer struct {
	Tokenizer  text.Tokenizer
	MinDF      int
	Vocabulary []string
}

// CountModel is a fitted CountVectorizer.
type CountModel struct {
	tokenizer text.Tokenizer
	words     []string
	index     map[string]int
}

// Fit builds the vocabulary from docs.
func (cv *CountVectorizer) Fit(docs []string) (*CountModel, error) {
	tok := cv.Tokenizer
	if tok == nil {
		tok = text.SplitTokenizer{}
	}

	var words []string
	if cv.Vocabulary != nil {
		words = make([]string, len(cv.Vocabulary))
		copy(words, cv.Vocabulary)
	} else {
		minDF := cv.MinDF
		if minDF < 1 {
			minDF = 1
		}
		df := make(map[string]int)
		for _, doc := range docs {
			seen := make(map[string]bool)
			for _, t := range tok.Tokenize(doc) {
				if !seen[t] {
					df[t]++
					seen[t] = true
				}
			}
		}
		for term, count := range df {
			if count >= minDF {
				words = append(words, term)
			}
		}
		sort.Strings(words)
	}

	index := make(map[string]int, len(words))
	for i, w := range words {
		if _, dup := index[w]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateTerm, w)
		}
		index[w] = i
	}
	return &CountModel{tokenizer: tok, words: words, index: index}, nil
}

// FeatureNames returns the vocabulary in column order.
func (m *CountModel) FeatureNames() ([]string, error) {
	if m == nil {
		return nil, ErrNotFitted
	}
	out := make([]string, len(m.words))
	copy(out, m.words)
	return out, nil
}

// NFeatures is the vocabulary size.
func (m *CountModel) NFeatures() int {
	if m == nil {
		return 0
	}
	return len(m.words)
}

// TransformOne counts the vocabulary terms of doc.
func (m *CountModel) TransformOne(doc string) ([]float64, error) {
	if m == nil {
		return nil, ErrNotFitted
	}
	return m.count(doc), nil
}

// Transform counts the vocabulary terms of each document.
func (m *CountModel) Transform(docs []string) ([][]float64, error) {
	if m == nil {
		return nil, ErrNotFitted
	}
	out := make([][]float64, len(docs))
	for i, doc := range docs {
		out[i] = m.count(doc)
	}
	return out, nil
}

func (m *CountModel) count(doc string) []float64 {
	x := make([]float64, len(m.words))
	for _, t := range m.tokenizer.Tokenize(doc) {
		if i, ok := m.index[t]; ok {
			x[i]++
		}
	}
	return x
}
