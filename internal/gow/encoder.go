package gow

// Encode converts a document graph into a dense vector over vocab. The value
// of a word is its in-degree divided by window; words outside the vocabulary
// are skipped.
func Encode(g *Graph, vocab *Vocabulary, window int) []float64 {
	x := make([]float64, vocab.Len())
	EncodeInto(x, g, vocab, window)
	return x
}

// EncodeInto writes the encoding of g into dst, which must have vocab.Len()
// entries. dst is zeroed first.
func EncodeInto(dst []float64, g *Graph, vocab *Vocabulary, window int) {
	for i := range dst {
		dst[i] = 0
	}
	w := float64(window)
	g.Each(func(word string, inDegree int) {
		if i, ok := vocab.Index(word); ok {
			dst[i] = float64(inDegree) / w
		}
	})
}
