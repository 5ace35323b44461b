package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/knowledge-engine/gowvec/internal/bow"
	"github.com/knowledge-engine/gowvec/internal/gow"
)

// Vectorizer turns text into a vector
type Vectorizer interface {
	Fit(docs []string) error
	Transform(text string) ([]float64, error)
	FeatureNames() ([]string, error)
}

// GoWVectorizer adapts the graph-of-words vectorizer. Each Fit swaps in a
// new model.
type GoWVectorizer struct {
	vectorizer *gow.Vectorizer

	mu    sync.RWMutex
	model *gow.Model
}

func NewGoWVectorizer(v *gow.Vectorizer) *GoWVectorizer {
	return &GoWVectorizer{vectorizer: v}
}

func (v *GoWVectorizer) Fit(docs []string) error {
	m := v.vectorizer.Fit(docs)
	v.mu.Lock()
	v.model = m
	v.mu.Unlock()
	return nil
}

func (v *GoWVectorizer) Transform(text string) ([]float64, error) {
	return v.Model().TransformOne(text)
}

// TransformAll vectorizes docs against the current model in one batch.
func (v *GoWVectorizer) TransformAll(ctx context.Context, docs []string) ([][]float64, error) {
	return v.Model().Transform(ctx, docs)
}

func (v *GoWVectorizer) FeatureNames() ([]string, error) {
	return v.Model().FeatureNames()
}

// Model returns the current model, nil before the first Fit.
func (v *GoWVectorizer) Model() *gow.Model {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.model
}

// BoWVectorizer adapts the bag-of-words count vectorizer.
type BoWVectorizer struct {
	vectorizer *bow.CountVectorizer

	mu    sync.RWMutex
	model *bow.CountModel
}

func NewBoWVectorizer(cv *bow.CountVectorizer) *BoWVectorizer {
	return &BoWVectorizer{vectorizer: cv}
}

func (v *BoWVectorizer) Fit(docs []string) error {
	m, err := v.vectorizer.Fit(docs)
	if err != nil {
		return fmt.Errorf("fit bag of words: %w", err)
	}
	v.mu.Lock()
	v.model = m
	v.mu.Unlock()
	return nil
}

func (v *BoWVectorizer) Transform(text string) ([]float64, error) {
	v.mu.RLock()
	m := v.model
	v.mu.RUnlock()
	return m.TransformOne(text)
}

func (v *BoWVectorizer) FeatureNames() ([]string, error) {
	v.mu.RLock()
	m := v.model
	v.mu.RUnlock()
	return m.FeatureNames()
}
