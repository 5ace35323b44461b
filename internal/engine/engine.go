package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/gowvec/internal/bow"
	"github.com/knowledge-engine/gowvec/internal/config"
	"github.com/knowledge-engine/gowvec/internal/fetcher"
	"github.com/knowledge-engine/gowvec/internal/gow"
	"github.com/knowledge-engine/gowvec/internal/search"
	"github.com/knowledge-engine/gowvec/internal/storage"
	"github.com/knowledge-engine/gowvec/internal/text"
)

// ErrEmptyDocument is returned when a document has no tokens left after
// preprocessing.
var ErrEmptyDocument = errors.New("engine: document is empty")

// PageFetcher retrieves the text of a web page.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (*fetcher.FetchResult, error)
}

// Engine orchestrates corpus storage, preprocessing, the fitted graph-of-words
// model and the search index.
type Engine struct {
	Config      *config.Config
	Logger      *logrus.Entry
	Tokenizer   text.Tokenizer
	Vectorizer  *gow.Vectorizer
	Fetcher     PageFetcher
	Storage     storage.CorpusStorage
	VectorStore *search.VectorStore

	// gowIndex is set when the index vectorizes with the graph of words; its
	// model is published directly instead of fitting the corpus twice.
	gowIndex *search.GoWVectorizer

	// refitMu orders index updates with the model they publish.
	refitMu sync.Mutex

	mu    sync.RWMutex
	model *gow.Model
	stats EngineStats
}

type EngineStats struct {
	Documents int
	Features  int
	Fits      int64
	LastFit   time.Time
	StartTime time.Time
}

func NewEngine(cfg *config.Config, logger *logrus.Entry, store storage.CorpusStorage) (*Engine, error) {
	tok, err := text.New(
		cfg.Vectorizer.Tokenizer,
		cfg.Vectorizer.StemLanguage,
		cfg.Vectorizer.StemExcept,
		cfg.Vectorizer.DropStopWords,
	)
	if err != nil {
		return nil, err
	}

	v, err := gow.New(
		gow.WithWindow(cfg.Vectorizer.Window),
		gow.WithWorkers(cfg.Vectorizer.Workers),
		gow.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	// The index receives documents already tokenized, so the bag of words
	// only needs to split them.
	var (
		sv       search.Vectorizer
		gowIndex *search.GoWVectorizer
	)
	switch cfg.Search.Vectorizer {
	case "bow":
		sv = search.NewBoWVectorizer(&bow.CountVectorizer{
			Tokenizer: text.SplitTokenizer{},
			MinDF:     cfg.Vectorizer.MinDF,
		})
	case "", "gow":
		gowIndex = search.NewGoWVectorizer(v)
		sv = gowIndex
	default:
		return nil, fmt.Errorf("unknown search vectorizer %q (expected gow|bow)", cfg.Search.Vectorizer)
	}

	return &Engine{
		Config:      cfg,
		Logger:      logger.WithField("component", "engine"),
		Tokenizer:   tok,
		Vectorizer:  v,
		Fetcher:     fetcher.NewFetcher(cfg.Fetcher.Timeout, cfg.Fetcher.UserAgent, cfg.Fetcher.EnableRobotsCheck),
		Storage:     store,
		VectorStore: search.NewVectorStore(sv),
		gowIndex:    gowIndex,
		stats:       EngineStats{StartTime: time.Now()},
	}, nil
}

// Load indexes every document already in storage and fits the model.
func (e *Engine) Load() error {
	docs, err := e.Storage.List()
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}
	if len(docs) == 0 {
		return nil
	}

	indexed := make([]*search.Document, len(docs))
	for i, d := range docs {
		indexed[i] = e.prepare(d)
	}

	e.refitMu.Lock()
	defer e.refitMu.Unlock()
	if err := e.VectorStore.AddDocuments(indexed); err != nil {
		return fmt.Errorf("index corpus: %w", err)
	}
	e.Logger.Infof("Pre-loaded %d documents into search index", len(docs))
	e.refit()
	return nil
}

// AddDocument stores doc, adds it to the index and re-fits the model. An
// empty ID is replaced by a random one.
func (e *Engine) AddDocument(doc *search.Document) (*search.Document, error) {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	indexed := e.prepare(doc)
	if indexed.Content == "" {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, doc.ID)
	}

	if err := e.Storage.Save(doc); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	e.refitMu.Lock()
	defer e.refitMu.Unlock()
	if err := e.VectorStore.AddDocuments([]*search.Document{indexed}); err != nil {
		return nil, fmt.Errorf("index document: %w", err)
	}
	e.Logger.WithField("id", doc.ID).Debug("Document added")

	e.refit()
	return doc, nil
}

// IngestURL fetches a web page and adds its text as a document keyed by URL.
func (e *Engine) IngestURL(ctx context.Context, url string) (*search.Document, error) {
	res, err := e.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return e.AddDocument(&search.Document{
		ID:      res.URL,
		Title:   res.Title,
		Content: res.Text,
	})
}

// Refit learns a new vocabulary from the indexed corpus. The previous model
// stays in use until the new one is ready.
func (e *Engine) Refit() {
	e.refitMu.Lock()
	defer e.refitMu.Unlock()
	e.refit()
}

// refit must be called with refitMu held.
func (e *Engine) refit() {
	docs := e.VectorStore.Documents()

	var model *gow.Model
	if e.gowIndex != nil {
		model = e.gowIndex.Model()
	}
	if model == nil {
		contents := make([]string, len(docs))
		for i, d := range docs {
			contents[i] = d.Content
		}
		model = e.Vectorizer.Fit(contents)
	}

	e.mu.Lock()
	e.model = model
	e.stats.Documents = len(docs)
	e.stats.Features = model.NFeatures()
	e.stats.Fits++
	e.stats.LastFit = time.Now()
	e.mu.Unlock()

	e.Logger.WithFields(logrus.Fields{
		"documents":  len(docs),
		"n_features": model.NFeatures(),
	}).Info("Model fitted")
}

// Model returns the current model, nil before the first fit.
func (e *Engine) Model() *gow.Model {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.model
}

// Transform preprocesses docs with the engine tokenizer and encodes them
// with the current model.
func (e *Engine) Transform(ctx context.Context, docs []string) ([][]float64, error) {
	return e.Model().Transform(ctx, e.Preprocess(docs))
}

// Preprocess runs docs through the engine tokenizer.
func (e *Engine) Preprocess(docs []string) []string {
	return text.NormalizeAll(e.Tokenizer, docs)
}

// FeatureNames returns the columns of Transform's output.
func (e *Engine) FeatureNames() ([]string, error) {
	return e.Model().FeatureNames()
}

// MostImportantWords ranks vocabulary words by in-degree in text.
func (e *Engine) MostImportantWords(raw string) ([]gow.WordCount, error) {
	return e.Model().MostImportantWords(text.Normalize(e.Tokenizer, raw))
}

// Search ranks indexed documents against query. topK <= 0 uses the
// configured default.
func (e *Engine) Search(query string, topK int) ([]search.SearchResult, error) {
	if topK <= 0 {
		topK = e.Config.Search.TopK
	}
	return e.VectorStore.Search(text.Normalize(e.Tokenizer, query), topK)
}

// Status returns a snapshot of the engine counters.
func (e *Engine) Status() EngineStats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.stats
}

// prepare copies doc with its content run through the tokenizer.
func (e *Engine) prepare(doc *search.Document) *search.Document {
	return &search.Document{
		ID:      doc.ID,
		Title:   doc.Title,
		Content: text.Normalize(e.Tokenizer, doc.Content),
	}
}
