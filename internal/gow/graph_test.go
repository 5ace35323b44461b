package gow_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/knowledge-engine/gowvec/internal/gow"
)

func TestBuildGraph(t *testing.T) {
	g := gow.BuildGraph(strings.Fields("a b c"), 5)

	assert.Equal(t, 2, g.Len())
	assert.Nil(t, g.Parents("a"))
	assert.Equal(t, []string{"a"}, g.Parents("b"))
	assert.Equal(t, []string{"a", "b"}, g.Parents("c"))
	assert.Equal(t, 0, g.InDegree("a"))
	assert.Equal(t, 1, g.InDegree("b"))
	assert.Equal(t, 2, g.InDegree("c"))
}

func TestBuildGraphWindowLimitsLookahead(t *testing.T) {
	// window 2 links each token to its direct successor only
	g := gow.BuildGraph(strings.Fields("a b c d"), 2)

	assert.Equal(t, []string{"a"}, g.Parents("b"))
	assert.Equal(t, []string{"b"}, g.Parents("c"))
	assert.Equal(t, []string{"c"}, g.Parents("d"))

	g = gow.BuildGraph(strings.Fields("a b c d"), 3)
	assert.Equal(t, []string{"a", "b"}, g.Parents("c"))
	assert.Equal(t, []string{"b", "c"}, g.Parents("d"))
}

func TestBuildGraphDeduplicatesParents(t *testing.T) {
	g := gow.BuildGraph(strings.Fields("x y x y x y"), 5)

	assert.Equal(t, []string{"x", "y"}, g.Parents("y"))
	assert.Equal(t, 2, g.InDegree("y"))
	assert.Equal(t, 2, g.InDegree("x"))
}

func TestBuildGraphRepeatedTokenLinksToItself(t *testing.T) {
	g := gow.BuildGraph([]string{"a", "a"}, 5)
	assert.Equal(t, []string{"a"}, g.Parents("a"))
}

func TestBuildGraphShortDocuments(t *testing.T) {
	for _, tokens := range [][]string{nil, {}, {"solo"}} {
		g := gow.BuildGraph(tokens, 5)
		assert.Equal(t, 0, g.Len())
	}
}

func TestBuildGraphWindowOne(t *testing.T) {
	g := gow.BuildGraph(strings.Fields("a b c"), 1)
	assert.Equal(t, 0, g.Len())
	assert.Equal(t, 0, g.InDegree("c"))
}

func TestGraphEachVisitsChildrenInOrder(t *testing.T) {
	g := gow.BuildGraph(strings.Fields("c b a b"), 5)

	var words []string
	degrees := map[string]int{}
	g.Each(func(word string, inDegree int) {
		words = append(words, word)
		degrees[word] = inDegree
	})

	assert.Equal(t, []string{"b", "a"}, words)
	assert.Equal(t, map[string]int{"b": 3, "a": 2}, degrees)
}
