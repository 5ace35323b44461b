package bow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/knowledge-engine/gowvec/internal/bow"
	"github.com/knowledge-engine/gowvec/internal/text"
)

func TestCountVectorizer(t *testing.T) {
	cv := &bow.CountVectorizer{}
	m, err := cv.Fit([]string{"apple banana", "apple orange apple"})
	require.NoError(t, err)

	names, err := m.FeatureNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"apple", "banana", "orange"}, names)

	x, err := m.Transform([]string{"apple orange apple", "kiwi"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{2, 0, 1}, {0, 0, 0}}, x)
}

func TestCountModelTransformMatchesTransformOne(t *testing.T) {
	m, err := (&bow.CountVectorizer{}).Fit([]string{"a b", "b c c"})
	require.NoError(t, err)

	docs := []string{"c c a", "", "b d"}
	x, err := m.Transform(docs)
	require.NoError(t, err)
	require.Len(t, x, len(docs))
	for i, doc := range docs {
		row, err := m.TransformOne(doc)
		require.NoError(t, err)
		assert.Equal(t, row, x[i], doc)
	}
}

func TestCountVectorizerMinDF(t *testing.T) {
	cv := &bow.CountVectorizer{MinDF: 2}
	m, err := cv.Fit([]string{"a b c", "a b", "a a a"})
	require.NoError(t, err)

	names, _ := m.FeatureNames()
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Equal(t, 2, m.NFeatures())
}

func TestCountVectorizerFixedVocabulary(t *testing.T) {
	cv := &bow.CountVectorizer{Vocabulary: []string{"zed", "amy"}}
	m, err := cv.Fit(nil)
	require.NoError(t, err)

	x, err := m.TransformOne("amy bob amy zed")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, x)

	_, err = (&bow.CountVectorizer{Vocabulary: []string{"a", "a"}}).Fit(nil)
	assert.ErrorIs(t, err, bow.ErrDuplicateTerm)
}

func TestCountVectorizerStemTokenizer(t *testing.T) {
	tok, err := text.NewStemTokenizer("english", nil)
	require.NoError(t, err)

	m, err := (&bow.CountVectorizer{Tokenizer: tok}).Fit([]string{"cats jumping", "cat jumps"})
	require.NoError(t, err)

	names, _ := m.FeatureNames()
	assert.Equal(t, []string{"cat", "jump"}, names)
}

func TestCountModelNotFitted(t *testing.T) {
	var m *bow.CountModel
	_, err := m.Transform([]string{"a"})
	assert.ErrorIs(t, err, bow.ErrNotFitted)
	assert.Equal(t, 0, m.NFeatures())
}
