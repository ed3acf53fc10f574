package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"seo_article_writer/generator"
)

// ArticleGenerator produces cleaned article HTML and image prompts.
type ArticleGenerator interface {
	Generate(ctx context.Context, params generator.ArticleParams) (generator.GeneratedContent, error)
}

// ArticleEnhancer splices images into generated content.
type ArticleEnhancer interface {
	Enhance(ctx context.Context, params generator.ArticleParams, content *generator.GeneratedContent) (string, error)
}

type Server struct {
	gen     ArticleGenerator
	enh     ArticleEnhancer
	store   *articleStore
	timeout time.Duration
	logger  *log.Logger
}

// Article is a generated article kept for later retrieval.
type Article struct {
	ID           string                  `json:"id"`
	Params       generator.ArticleParams `json:"params"`
	HTML         string                  `json:"html"`
	ImagePrompts []string                `json:"image_prompts"`
	EnhancedHTML string                  `json:"enhanced_html,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
}

type articleStore struct {
	mu       sync.Mutex
	articles map[string]Article
}

func newStore() *articleStore {
	return &articleStore{articles: make(map[string]Article)}
}

func (s *articleStore) set(a Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.articles[a.ID] = a
}

func (s *articleStore) get(id string) (Article, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	return a, ok
}

// New builds the HTTP API. enh may be nil, in which case image requests are
// rejected.
func New(gen ArticleGenerator, enh ArticleEnhancer, timeout time.Duration, logger *log.Logger) (*Server, error) {
	if gen == nil {
		return nil, errors.New("article generator required")
	}
	if timeout <= 0 {
		timeout = 180 * time.Second
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		gen:     gen,
		enh:     enh,
		store:   newStore(),
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/articles", s.handleArticleCreate)
	mux.HandleFunc("/api/articles/", s.handleArticleByID)
	return s.logMiddleware(mux)
}

// --- Handlers ---

type articleCreateReq struct {
	Title          string   `json:"title"`
	TargetAudience string   `json:"target_audience"`
	Tone           string   `json:"tone"`
	Keywords       []string `json:"keywords"`
	Images         bool     `json:"images"`
}

func (s *Server) handleArticleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req articleCreateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		http.Error(w, "title is required", http.StatusBadRequest)
		return
	}
	if req.Images && s.enh == nil {
		http.Error(w, "image enhancement is not configured", http.StatusBadRequest)
		return
	}
	params := generator.ArticleParams{
		Title:          req.Title,
		TargetAudience: req.TargetAudience,
		Tone:           req.Tone,
		Keywords:       req.Keywords,
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()

	content, err := s.gen.Generate(ctx, params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	art := Article{
		ID:           uuid.NewString(),
		Params:       params,
		HTML:         content.HTML,
		ImagePrompts: content.ImagePrompts,
		CreatedAt:    time.Now(),
	}
	if req.Images {
		enhanced, err := s.enh.Enhance(ctx, params, &content)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
		art.EnhancedHTML = enhanced
	}
	s.store.set(art)
	writeJSON(w, http.StatusCreated, art)
}

func (s *Server) handleArticleByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/articles/")
	if id == "" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	art, ok := s.store.get(id)
	if !ok {
		http.Error(w, "article not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, art)
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Printf("[http] %s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond))
	})
}
