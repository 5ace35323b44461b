package gow

import (
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Graph is the directed co-occurrence graph of a single document, stored in
// reverse: each child word keeps the set of distinct words that preceded it
// inside the window.
//
// Words are interned to dense ids in first-seen order and parent sets are
// bitsets over those ids, so a graph never holds more than one entry per
// distinct word.
type Graph struct {
	words   []string
	ids     map[string]uint
	parents []*bitset.BitSet // indexed by child id, nil if the word has no parents
	order   []uint           // child ids in the order they first received a parent
}

// BuildGraph links every token to the tokens that follow it, up to window-1
// positions ahead. Documents with fewer than two tokens yield an empty graph.
func BuildGraph(tokens []string, window int) *Graph {
	g := &Graph{ids: make(map[string]uint, len(tokens))}
	for _, token := range tokens {
		g.intern(token)
	}
	g.parents = make([]*bitset.BitSet, len(g.words))
	if window < 2 {
		return g
	}

	n := len(tokens)
	for i, parent := range tokens {
		end := i + window
		if end > n {
			end = n
		}
		p := g.ids[parent]
		for _, child := range tokens[i+1 : end] {
			c := g.ids[child]
			if g.parents[c] == nil {
				g.parents[c] = bitset.New(uint(len(g.words)))
				g.order = append(g.order, c)
			}
			g.parents[c].Set(p)
		}
	}
	return g
}

func (g *Graph) intern(word string) uint {
	if id, ok := g.ids[word]; ok {
		return id
	}
	id := uint(len(g.words))
	g.words = append(g.words, word)
	g.ids[word] = id
	return id
}

// Len is the number of child words, i.e. words with at least one inbound edge.
func (g *Graph) Len() int {
	return len(g.order)
}

// InDegree returns the number of distinct parents of word.
func (g *Graph) InDegree(word string) int {
	id, ok := g.ids[word]
	if !ok || g.parents[id] == nil {
		return 0
	}
	return int(g.parents[id].Count())
}

// Parents returns the distinct parents of word in sorted order.
func (g *Graph) Parents(word string) []string {
	id, ok := g.ids[word]
	if !ok || g.parents[id] == nil {
		return nil
	}
	set := g.parents[id]
	out := make([]string, 0, set.Count())
	for p, ok := set.NextSet(0); ok; p, ok = set.NextSet(p + 1) {
		out = append(out, g.words[p])
	}
	sort.Strings(out)
	return out
}

// Each calls fn for every child word in the order it first gained a parent.
func (g *Graph) Each(fn func(word string, inDegree int)) {
	for _, id := range g.order {
		fn(g.words[id], int(g.parents[id].Count()))
	}
}
