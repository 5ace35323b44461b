package gow

import (
	"sort"
	"strings"
)

// Vocabulary maps each known word to its column in the feature matrix.
// It is never modified after BuildVocabulary returns.
type Vocabulary struct {
	words []string
	index map[string]int
}

// BuildVocabulary collects the distinct whitespace-delimited tokens of the
// corpus and assigns indices in lexicographic order.
func BuildVocabulary(docs []string) *Vocabulary {
	seen := make(map[string]struct{})
	for _, doc := range docs {
		for _, token := range strings.Fields(doc) {
			seen[token] = struct{}{}
		}
	}

	words := make([]string, 0, len(seen))
	for word := range seen {
		words = append(words, word)
	}
	sort.Strings(words)

	index := make(map[string]int, len(words))
	for i, word := range words {
		index[word] = i
	}
	return &Vocabulary{words: words, index: index}
}

// Index returns the column of word.
func (v *Vocabulary) Index(word string) (int, bool) {
	i, ok := v.index[word]
	return i, ok
}

// Len is the number of features.
func (v *Vocabulary) Len() int {
	return len(v.words)
}

// Words returns the feature names; Words()[i] is the word with index i.
func (v *Vocabulary) Words() []string {
	out := make([]string, len(v.words))
	copy(out, v.words)
	return out
}

// Map returns a copy of the word -> index mapping.
func (v *Vocabulary) Map() map[string]int {
	out := make(map[string]int, len(v.index))
	for word, i := range v.index {
		out[word] = i
	}
	return out
}
