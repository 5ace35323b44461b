package gow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge-engine/gowvec/internal/gow"
)

func TestEncode(t *testing.T) {
	vocab := gow.BuildVocabulary([]string{"a b c", "b c d"})
	g := gow.BuildGraph(strings.Fields("a b c"), 5)

	assert.Equal(t, []float64{0, 1.0 / 5, 2.0 / 5, 0}, gow.Encode(g, vocab, 5))
}

func TestEncodeIgnoresUnknownWords(t *testing.T) {
	vocab := gow.BuildVocabulary([]string{"a b"})
	g := gow.BuildGraph(strings.Fields("a b unseen words"), 5)

	x := gow.Encode(g, vocab, 5)
	assert.Equal(t, []float64{0, 0.2}, x)
}

func TestEncodeSingleTokenIsZero(t *testing.T) {
	vocab := gow.BuildVocabulary([]string{"a b c"})
	for _, window := range []int{1, 2, 5, 50} {
		x := gow.Encode(gow.BuildGraph([]string{"b"}, window), vocab, window)
		assert.Equal(t, []float64{0, 0, 0}, x, "window %d", window)
	}
}

func TestEncodeIntoResetsDestination(t *testing.T) {
	vocab := gow.BuildVocabulary([]string{"a b c"})
	dst := []float64{9, 9, 9}

	gow.EncodeInto(dst, gow.BuildGraph(strings.Fields("a c"), 5), vocab, 5)
	assert.Equal(t, []float64{0, 0, 0.2}, dst)
}

func TestEncodeValuesBelowOneForDistinctTokens(t *testing.T) {
	doc := "the quick brown fox jumps over a lazy dog"
	vocab := gow.BuildVocabulary([]string{doc})
	for _, window := range []int{1, 2, 3, 5, 8} {
		x := gow.Encode(gow.BuildGraph(strings.Fields(doc), window), vocab, window)
		for _, v := range x {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.Less(t, v, 1.0)
		}
	}
}

func TestEncodeRepeatedWordAccumulatesParents(t *testing.T) {
	// "x" follows three different words, more than window-1 of them
	doc := "a x b x c x"
	vocab := gow.BuildVocabulary([]string{doc})
	x := gow.Encode(gow.BuildGraph(strings.Fields(doc), 2), vocab, 2)

	i, _ := vocab.Index("x")
	assert.Equal(t, 1.5, x[i])
}
