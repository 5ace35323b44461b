// Package text holds the tokenizers applied to raw text before it reaches a
// vectorizer. Tokenizers are plain values passed in by the caller; none of
// them keeps global state, so one instance can be shared across goroutines.
package text

import (
	"fmt"
	"strings"

	"github.com/kljensen/snowball"
	"github.com/kljensen/snowball/english"
)

// Tokenizer splits text into tokens.
type Tokenizer interface {
	Tokenize(text string) []string
}

// SplitTokenizer splits on whitespace and keeps tokens verbatim.
type SplitTokenizer struct{}

func (SplitTokenizer) Tokenize(text string) []string {
	return strings.Fields(text)
}

// StemTokenizer splits on whitespace and reduces each token to its snowball
// stem. Words listed in Except are kept as they are.
type StemTokenizer struct {
	Language string
	Except   map[string]struct{}
}

// NewStemTokenizer checks that language is supported by snowball.
func NewStemTokenizer(language string, except []string) (*StemTokenizer, error) {
	if _, err := snowball.Stem("test", language, true); err != nil {
		return nil, fmt.Errorf("stem tokenizer: %w", err)
	}
	set := make(map[string]struct{}, len(except))
	for _, w := range except {
		set[w] = struct{}{}
	}
	return &StemTokenizer{Language: language, Except: set}, nil
}

func (t *StemTokenizer) Tokenize(text string) []string {
	fields := strings.Fields(text)
	for i, w := range fields {
		fields[i] = t.Stem(w)
	}
	return fields
}

// Stem returns the stem of word, or word itself if it is excepted or cannot
// be stemmed.
func (t *StemTokenizer) Stem(word string) string {
	if _, ok := t.Except[word]; ok {
		return word
	}
	stem, err := snowball.Stem(word, t.Language, true)
	if err != nil || stem == "" {
		return word
	}
	return stem
}

// StopWordFilter drops English stop words from the output of Next.
type StopWordFilter struct {
	Next Tokenizer
}

func (f StopWordFilter) Tokenize(text string) []string {
	tokens := f.Next.Tokenize(text)
	out := tokens[:0]
	for _, t := range tokens {
		if !english.IsStopWord(strings.ToLower(t)) {
			out = append(out, t)
		}
	}
	return out
}

// Normalize tokenizes text and joins the tokens with single spaces, the form
// the vectorizers consume.
func Normalize(tok Tokenizer, text string) string {
	return strings.Join(tok.Tokenize(text), " ")
}

// NormalizeAll applies Normalize to every document.
func NormalizeAll(tok Tokenizer, docs []string) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = Normalize(tok, d)
	}
	return out
}

// New builds the tokenizer named by kind ("split" or "stem"), optionally
// wrapped in a StopWordFilter.
func New(kind, language string, except []string, dropStopWords bool) (Tokenizer, error) {
	var tok Tokenizer
	switch kind {
	case "", "split":
		tok = SplitTokenizer{}
	case "stem":
		st, err := NewStemTokenizer(language, except)
		if err != nil {
			return nil, err
		}
		tok = st
	default:
		return nil, fmt.Errorf("unknown tokenizer %q (expected split|stem)", kind)
	}
	if dropStopWords {
		tok = StopWordFilter{Next: tok}
	}
	return tok, nil
}
