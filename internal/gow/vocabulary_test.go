package gow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge-engine/gowvec/internal/gow"
)

func TestBuildVocabulary(t *testing.T) {
	vocab := gow.BuildVocabulary([]string{"a b c", "b c d"})

	assert.Equal(t, 4, vocab.Len())
	assert.Equal(t, map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}, vocab.Map())
	assert.Equal(t, []string{"a", "b", "c", "d"}, vocab.Words())
}

func TestBuildVocabularySortsLexicographically(t *testing.T) {
	vocab := gow.BuildVocabulary([]string{"zeta Alpha beta", "alpha  \tbeta\n"})

	// Byte order: upper case sorts before lower case, no folding.
	assert.Equal(t, []string{"Alpha", "alpha", "beta", "zeta"}, vocab.Words())

	i, ok := vocab.Index("zeta")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = vocab.Index("gamma")
	assert.False(t, ok)
}

func TestBuildVocabularyEmptyCorpus(t *testing.T) {
	vocab := gow.BuildVocabulary(nil)
	assert.Equal(t, 0, vocab.Len())
	assert.Empty(t, vocab.Words())

	vocab = gow.BuildVocabulary([]string{"", "   "})
	assert.Equal(t, 0, vocab.Len())
}

func TestVocabularyWordsIsACopy(t *testing.T) {
	vocab := gow.BuildVocabulary([]string{"a b"})
	words := vocab.Words()
	words[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, vocab.Words())
}
