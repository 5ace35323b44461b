package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/knowledge-engine/gowvec/internal/bow"
	"github.com/knowledge-engine/gowvec/internal/engine"
	"github.com/knowledge-engine/gowvec/internal/fetcher"
	"github.com/knowledge-engine/gowvec/internal/gow"
	"github.com/knowledge-engine/gowvec/internal/search"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
}

func NewServer(eng *engine.Engine, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger.WithField("component", "api"),
		Router: http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/documents", s.handleDocuments)
	s.Router.HandleFunc("/api/v1/fit", s.handleFit)
	s.Router.HandleFunc("/api/v1/transform", s.handleTransform)
	s.Router.HandleFunc("/api/v1/features", s.handleFeatures)
	s.Router.HandleFunc("/api/v1/important", s.handleImportant)
	s.Router.HandleFunc("/api/v1/search", s.handleSearch)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	return http.ListenAndServe(addr, s.Router)
}

// Requests

type DocumentRequest struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

type TransformRequest struct {
	Documents []any `json:"documents"`
}

type ImportantRequest struct {
	Text  string `json:"text"`
	Limit int    `json:"limit"`
}

// Responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type DocumentResponse struct {
	ID    string `json:"id"`
	Title string `json:"title,omitempty"`
}

type TransformResponse struct {
	FeatureNames []string    `json:"feature_names"`
	Matrix       [][]float64 `json:"matrix"`
}

type FeaturesResponse struct {
	Window       int      `json:"window"`
	NFeatures    int      `json:"n_features"`
	FeatureNames []string `json:"feature_names"`
}

type ImportantResponse struct {
	Words []gow.WordCount `json:"words"`
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Results []SearchResultView `json:"results"`
}

type SearchResultView struct {
	ID    string  `json:"id"`
	Title string  `json:"title,omitempty"`
	Score float64 `json:"score"`
	Text  string  `json:"snippet"`
}

type StatusResponse struct {
	Fitted    bool      `json:"fitted"`
	Documents int       `json:"documents"`
	Features  int       `json:"n_features"`
	Fits      int64     `json:"fits"`
	LastFit   time.Time `json:"last_fit"`
	Uptime    string    `json:"uptime"`
}

// Handlers

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	var (
		doc *search.Document
		err error
	)
	switch {
	case req.URL != "":
		doc, err = s.Engine.IngestURL(r.Context(), req.URL)
	case req.Text != "":
		doc, err = s.Engine.AddDocument(&search.Document{ID: req.ID, Title: req.Title, Content: req.Text})
	default:
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "text or url is required"})
		return
	}
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, DocumentResponse{ID: doc.ID, Title: doc.Title})
}

func (s *Server) handleFit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.Engine.Refit()
	s.handleStatus(w, r)
}

func (s *Server) handleTransform(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req TransformRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	docs, err := gow.AsDocuments(req.Documents)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	model := s.Engine.Model()
	names, err := model.FeatureNames()
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	matrix, err := model.Transform(r.Context(), s.Engine.Preprocess(docs))
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, TransformResponse{FeatureNames: names, Matrix: matrix})
}

func (s *Server) handleFeatures(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	model := s.Engine.Model()
	names, err := model.FeatureNames()
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusOK, FeaturesResponse{
		Window:       model.Window(),
		NFeatures:    model.NFeatures(),
		FeatureNames: names,
	})
}

func (s *Server) handleImportant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ImportantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	words, err := s.Engine.MostImportantWords(req.Text)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	if req.Limit > 0 && len(words) > req.Limit {
		words = words[:req.Limit]
	}

	jsonResponse(w, http.StatusOK, ImportantResponse{Words: words})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	k := 0
	if raw := r.URL.Query().Get("k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'k' must be a positive integer"})
			return
		}
		k = n
	}

	hits, err := s.Engine.Search(query, k)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	response := SearchResponse{
		Query:   query,
		Results: make([]SearchResultView, len(hits)),
	}

	for i, hit := range hits {
		response.Results[i] = SearchResultView{
			ID:    hit.Document.ID,
			Title: hit.Document.Title,
			Score: hit.Score,
			Text:  snippet(hit.Document.Content, snippetLen),
		}
	}

	jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Engine.Status()

	jsonResponse(w, http.StatusOK, StatusResponse{
		Fitted:    s.Engine.Model() != nil,
		Documents: stats.Documents,
		Features:  stats.Features,
		Fits:      stats.Fits,
		LastFit:   stats.LastFit,
		Uptime:    time.Since(stats.StartTime).Round(time.Second).String(),
	})
}

// errorResponse maps engine errors to HTTP status codes
func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, gow.ErrNotFitted), errors.Is(err, bow.ErrNotFitted):
		code = http.StatusConflict
	case errors.Is(err, gow.ErrInvalidDocument), errors.Is(err, engine.ErrEmptyDocument):
		code = http.StatusBadRequest
	case errors.Is(err, fetcher.ErrDisallowed):
		code = http.StatusForbidden
	}
	if code == http.StatusInternalServerError {
		s.Logger.WithError(err).Error("Request failed")
	}
	jsonResponse(w, code, ErrorResponse{Error: err.Error()})
}

const snippetLen = 200

// snippet cuts s to at most n bytes without splitting a rune.
func snippet(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
