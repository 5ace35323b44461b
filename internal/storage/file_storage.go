package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/knowledge-engine/gowvec/internal/search"
)

// ErrNotFound is returned by Get for an unknown document ID.
var ErrNotFound = errors.New("storage: document not found")

// CorpusStorage defines the interface for persisting corpus documents
type CorpusStorage interface {
	Save(doc *search.Document) error
	Get(id string) (*search.Document, error)
	List() ([]*search.Document, error)
	Close() error
}

// FileStorage implements CorpusStorage using the local file system, one JSON
// file per document.
type FileStorage struct {
	baseDir string
	mu      sync.RWMutex
}

// NewFileStorage creates a new file-based storage
func NewFileStorage(baseDir string) (*FileStorage, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &FileStorage{
		baseDir: baseDir,
	}, nil
}

// Save writes the document to a JSON file, replacing any document with the
// same ID.
func (fs *FileStorage) Save(doc *search.Document) error {
	if doc.ID == "" {
		return fmt.Errorf("failed to save document: empty id")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()

	path := filepath.Join(fs.baseDir, safeFilename(doc.ID))

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// Get retrieves a document from disk
func (fs *FileStorage) Get(id string) (*search.Document, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	doc, err := readDocument(filepath.Join(fs.baseDir, safeFilename(id)))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return doc, err
}

// List returns every stored document ordered by ID. Files that are not
// valid documents are skipped.
func (fs *FileStorage) List() ([]*search.Document, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	entries, err := os.ReadDir(fs.baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read storage directory: %w", err)
	}

	var docs []*search.Document
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		doc, err := readDocument(filepath.Join(fs.baseDir, entry.Name()))
		if err != nil || doc.ID == "" {
			continue
		}
		docs = append(docs, doc)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].ID < docs[j].ID })
	return docs, nil
}

// Close is a no-op for file storage
func (fs *FileStorage) Close() error {
	return nil
}

func readDocument(path string) (*search.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var doc search.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}
	return &doc, nil
}

// safeFilename converts a document ID to a safe filename. A hash of the full
// ID keeps truncated or sanitized names distinct.
func safeFilename(id string) string {
	var b strings.Builder
	for _, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	safe := b.String()
	if len(safe) > 80 {
		safe = safe[:80]
	}
	sum := sha256.Sum256([]byte(id))
	return safe + "-" + hex.EncodeToString(sum[:4]) + ".json"
}
