package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/poiesic/cilin"
	"github.com/poiesic/cilin/align"
	"github.com/poiesic/cilin/core"
	"github.com/poiesic/cilin/logger"
	"github.com/poiesic/cilin/metrics"
	"github.com/poiesic/cilin/similarity"
	"github.com/urfave/cli/v2"
)

// maxBodyBytes bounds POST request bodies.
const maxBodyBytes = 1 << 20

type server struct {
	th       *cilin.Thesaurus
	text     *align.TextAligner
	strategy similarity.Strategy
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

type similarityResponse struct {
	Word1    string  `json:"word1"`
	Word2    string  `json:"word2"`
	Strategy string  `json:"strategy"`
	Score    float64 `json:"score"`
}

type codesResponse struct {
	Word  string   `json:"word"`
	Codes []string `json:"codes"`
}

type alignRequest struct {
	Text1    string   `json:"text1"`
	Text2    string   `json:"text2"`
	Words1   []string `json:"words1"`
	Words2   []string `json:"words2"`
	Strategy string   `json:"strategy"`
}

type alignResponse struct {
	Strategy string  `json:"strategy"`
	Score    float64 `json:"score"`
	Grade    int     `json:"grade"`
}

func serveCommand(c *cli.Context) error {
	cfg, err := configFrom(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("shutdown-timeout") {
		cfg.Server.ShutdownTimeout = c.Duration("shutdown-timeout")
	}

	var m *metrics.Metrics
	var simObserver similarity.Observer
	var alignObserver align.Observer
	if cfg.Metrics.Enabled {
		m = metrics.New()
		simObserver, alignObserver = m, m
	}

	th, err := loadThesaurus(c.Context, cfg, simObserver)
	if err != nil {
		return err
	}
	text, err := newTextAligner(cfg, th, alignObserver)
	if err != nil {
		return err
	}
	strategy, err := similarity.ParseStrategy(cfg.Similarity.Strategy)
	if err != nil {
		return err
	}
	if m != nil {
		m.SetTaxonomy(len(th.Index().Codes()), th.Index().TotalWordCount())
	}

	s := &server{
		th:       th,
		text:     text,
		strategy: strategy,
		metrics:  m,
		logger:   logger.WithComponent("server"),
	}

	httpServer := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      s.routes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Server.Addr, "strategy", strategy, "metrics", m != nil)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/similarity", s.handleSimilarity)
	mux.HandleFunc("GET /v1/codes", s.handleCodes)
	mux.HandleFunc("POST /v1/align", s.handleAlign)
	if s.metrics != nil {
		mux.Handle("GET /metrics", s.metrics.Handler())
		return s.metrics.Middleware(mux)
	}
	return mux
}

func (s *server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":     "up",
		"entries":    len(s.th.Index().Codes()),
		"vocabulary": s.th.Index().VocabularySize(),
	})
}

func (s *server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	w1, w2 := q.Get("w1"), q.Get("w2")
	if w1 == "" || w2 == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("w1 and w2 are required"))
		return
	}
	strategy, err := s.strategyParam(q.Get("strategy"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	score, err := s.th.Similarity(strategy, w1, w2)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, similarityResponse{
		Word1:    w1,
		Word2:    w2,
		Strategy: strategy.String(),
		Score:    score,
	})
}

func (s *server) handleCodes(w http.ResponseWriter, r *http.Request) {
	word := r.URL.Query().Get("word")
	if word == "" {
		s.writeError(w, http.StatusBadRequest, errors.New("word is required"))
		return
	}
	codes, err := s.th.CodesOf(word)
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	out := make([]string, len(codes))
	for i, code := range codes {
		out[i] = code.String()
	}
	s.writeJSON(w, http.StatusOK, codesResponse{Word: word, Codes: out})
}

func (s *server) handleAlign(w http.ResponseWriter, r *http.Request) {
	var req alignRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	strategy, err := s.strategyParam(req.Strategy)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	words1, words2 := req.Words1, req.Words2
	if len(words1) == 0 && len(words2) == 0 {
		words1, words2 = s.text.Words(req.Text1), s.text.Words(req.Text2)
	}

	var score float64
	if strategy == s.text.Aligner().Strategy() {
		score, err = s.text.Aligner().Align(words1, words2)
	} else {
		score, err = s.th.Align(strategy, words1, words2)
	}
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, alignResponse{
		Strategy: strategy.String(),
		Score:    score,
		Grade:    align.Grade(score),
	})
}

func (s *server) strategyParam(name string) (similarity.Strategy, error) {
	if name == "" {
		return s.strategy, nil
	}
	return similarity.ParseStrategy(name)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrUnknownWord):
		return http.StatusNotFound
	case errors.Is(err, core.ErrEmptySequence), errors.Is(err, similarity.ErrUnknownStrategy):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("error writing response", "err", err)
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
