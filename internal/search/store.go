package search

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
)

// SearchResult holds a matching document and its score
type SearchResult struct {
	Document *Document
	Score    float64
}

// batchTransformer is implemented by vectorizers that encode many documents
// at once, possibly in parallel.
type batchTransformer interface {
	TransformAll(ctx context.Context, docs []string) ([][]float64, error)
}

// VectorStore holds the indexed documents
type VectorStore struct {
	Vectorizer Vectorizer

	mu        sync.RWMutex
	documents []*Document
}

func NewVectorStore(v Vectorizer) *VectorStore {
	return &VectorStore{
		Vectorizer: v,
		documents:  make([]*Document, 0),
	}
}

// AddDocuments adds docs to the index, replacing documents with the same ID,
// then re-fits the vectorizer on the whole corpus and re-vectorizes every
// document so all vectors share one vocabulary.
func (vs *VectorStore) AddDocuments(docs []*Document) error {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	all := make([]*Document, 0, len(vs.documents)+len(docs))
	all = append(all, vs.documents...)
	pos := make(map[string]int, len(all))
	for i, d := range all {
		pos[d.ID] = i
	}
	for _, d := range docs {
		if i, ok := pos[d.ID]; ok {
			all[i] = d
			continue
		}
		pos[d.ID] = len(all)
		all = append(all, d)
	}
	if err := vs.reindex(all); err != nil {
		return err
	}
	vs.documents = all
	return nil
}

// Reindex re-fits the vectorizer on the documents already stored.
func (vs *VectorStore) Reindex() error {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return vs.reindex(vs.documents)
}

func (vs *VectorStore) reindex(docs []*Document) error {
	// 1. Extract raw text for training
	rawTexts := make([]string, len(docs))
	for i, d := range docs {
		rawTexts[i] = d.Content
	}

	// 2. Fit the vectorizer
	if err := vs.Vectorizer.Fit(rawTexts); err != nil {
		return err
	}

	// 3. Vectorize all documents
	vectors := make([][]float64, len(docs))
	if bt, ok := vs.Vectorizer.(batchTransformer); ok {
		var err error
		if vectors, err = bt.TransformAll(context.Background(), rawTexts); err != nil {
			return fmt.Errorf("vectorize documents: %w", err)
		}
	} else {
		for i, d := range docs {
			vec, err := vs.Vectorizer.Transform(d.Content)
			if err != nil {
				return fmt.Errorf("vectorize %s: %w", d.ID, err)
			}
			vectors[i] = vec
		}
	}
	for i, d := range docs {
		d.Vector = vectors[i]
	}
	return nil
}

// Documents returns the indexed documents in insertion order.
func (vs *VectorStore) Documents() []*Document {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	out := make([]*Document, len(vs.documents))
	copy(out, vs.documents)
	return out
}

// Len is the number of indexed documents.
func (vs *VectorStore) Len() int {
	vs.mu.RLock()
	defer vs.mu.RUnlock()
	return len(vs.documents)
}

// Search finds the most similar documents to the query
func (vs *VectorStore) Search(query string, topK int) ([]SearchResult, error) {
	vs.mu.RLock()
	defer vs.mu.RUnlock()

	queryVector, err := vs.Vectorizer.Transform(query)
	if err != nil {
		return nil, err
	}
	var results []SearchResult

	for _, doc := range vs.documents {
		score := CosineSimilarity(queryVector, doc.Vector)
		if score > 0 {
			results = append(results, SearchResult{
				Document: doc,
				Score:    score,
			})
		}
	}

	// Sort by descending score, stable on insertion order
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if topK > 0 && len(results) > topK {
		return results[:topK], nil
	}
	return results, nil
}

// CosineSimilarity calculates the cosine similarity between two vectors
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}
