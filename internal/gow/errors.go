package gow

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFitted is returned when a model is used before Fit.
	ErrNotFitted = errors.New("gow: vectorizer is not fitted")

	// ErrInvalidWindow is returned for a window smaller than 1.
	ErrInvalidWindow = errors.New("gow: window must be a positive integer")

	// ErrInvalidDocument is matched by every DocumentTypeError.
	ErrInvalidDocument = errors.New("gow: document is not a string")
)

// DocumentTypeError reports a non-textual entry in a document collection.
type DocumentTypeError struct {
	Index int
	Value any
}

func (e *DocumentTypeError) Error() string {
	return fmt.Sprintf("gow: document %d has type %T, expected string", e.Index, e.Value)
}

func (e *DocumentTypeError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// AsDocuments validates an untyped collection, such as a decoded JSON array,
// and returns it as documents. No coercion is attempted: the first entry that
// is not a string fails the whole collection.
func AsDocuments(raw []any) ([]string, error) {
	docs := make([]string, len(raw))
	for i, v := range raw {
		s, ok := v.(string)
		if !ok {
			return nil, &DocumentTypeError{Index: i, Value: v}
		}
		docs[i] = s
	}
	return docs, nil
}
