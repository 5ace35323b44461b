package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/gowvec/internal/text"
)

func TestSplitTokenizer(t *testing.T) {
	tokens := text.SplitTokenizer{}.Tokenize("  Hello,  World!\tagain\n")
	assert.Equal(t, []string{"Hello,", "World!", "again"}, tokens)
	assert.Empty(t, text.SplitTokenizer{}.Tokenize("   "))
}

func TestStemTokenizer(t *testing.T) {
	tok, err := text.NewStemTokenizer("english", []string{"running"})
	require.NoError(t, err)

	tokens := tok.Tokenize("running jumps cats")
	assert.Equal(t, []string{"running", "jump", "cat"}, tokens)
	assert.Equal(t, "jump", tok.Stem("jumping"))
}

func TestStemTokenizerUnknownLanguage(t *testing.T) {
	_, err := text.NewStemTokenizer("klingon", nil)
	assert.Error(t, err)
}

func TestStopWordFilter(t *testing.T) {
	tok := text.StopWordFilter{Next: text.SplitTokenizer{}}
	assert.Equal(t, []string{"graph", "words"}, tok.Tokenize("the graph of The words"))
}

func TestNormalize(t *testing.T) {
	tok, err := text.New("stem", "english", nil, false)
	require.NoError(t, err)

	assert.Equal(t, "cat jump", text.Normalize(tok, "  cats   jumping "))
	assert.Equal(t, []string{"a b", ""}, text.NormalizeAll(text.SplitTokenizer{}, []string{" a  b", "  "}))
}

func TestNew(t *testing.T) {
	tok, err := text.New("", "", nil, false)
	require.NoError(t, err)
	assert.IsType(t, text.SplitTokenizer{}, tok)

	tok, err = text.New("split", "", nil, true)
	require.NoError(t, err)
	assert.IsType(t, text.StopWordFilter{}, tok)

	_, err = text.New("lemma", "english", nil, false)
	assert.Error(t, err)
}
