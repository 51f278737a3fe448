package ui

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mycalculator/config"
	"mycalculator/core/evaluator"
	"mycalculator/core/history"
	"mycalculator/metrics"
	"mycalculator/models"
	"mycalculator/service/calculator"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
)

type WebInterface struct {
	calculator *calculator.Calculator
	history    *history.HistoryManager
	auth       *Authenticator
	sockets    *socketHub
	origins    []string
	staticDir  string
	logger     *slog.Logger
}

func NewWebInterface(cfg *config.Config, hm *history.HistoryManager) *WebInterface {
	logger := slog.Default().With("component", "web")
	return &WebInterface{
		calculator: calculator.NewCalculator(hm),
		history:    hm,
		auth:       NewAuthenticator(cfg.AuthSecret, cfg.TokenTTL),
		sockets:    newSocketHub(hm, cfg.AllowedOrigins, logger),
		origins:    cfg.AllowedOrigins,
		staticDir:  filepath.Join(".", "static"),
		logger:     logger,
	}
}

// Middleware для метрик
func metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Wrapper для захвата статус кода
		wrapped := &responseWriter{ResponseWriter: w, statusCode: 200}

		next(wrapped, r)

		duration := time.Since(start).Seconds()

		metrics.HttpRequestsTotal.WithLabelValues(
			r.Method,
			r.URL.Path,
			strconv.Itoa(wrapped.statusCode),
		).Inc()

		metrics.HttpRequestDuration.WithLabelValues(
			r.Method,
			r.URL.Path,
		).Observe(duration)
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Handler builds the routed, CORS-wrapped handler tree.
func (w *WebInterface) Handler() http.Handler {
	mux := http.NewServeMux()
	api := func(h http.HandlerFunc) http.HandlerFunc {
		return metricsMiddleware(w.auth.middleware(h))
	}

	mux.HandleFunc("/api/login", metricsMiddleware(w.auth.handleLogin))
	mux.HandleFunc("/api/evaluate", api(w.handleEvaluate))
	mux.HandleFunc("/api/press", api(w.handlePress))
	mux.HandleFunc("/api/history", api(w.handleHistory))
	mux.HandleFunc("/api/clear-history", api(w.handleClearHistory))
	mux.HandleFunc("/api/memory", api(w.handleMemory))

	// WebSocket upgrades need the raw ResponseWriter, so no metrics wrapper here
	mux.HandleFunc("/ws", w.auth.middleware(w.sockets.handle))

	// Prometheus metrics endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Health check endpoint
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Static files
	mux.Handle("/", http.FileServer(http.Dir(w.staticDir)))

	return cors.New(cors.Options{
		AllowedOrigins: w.origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler(mux)
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (w *WebInterface) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           w.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		w.logger.Info("listening", "addr", addr, "auth", w.auth.Enabled())
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	w.logger.Info("shutting down", "sessions", w.sockets.count())
	w.sockets.closeAll()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (w *WebInterface) handleEvaluate(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(wr, "only POST", http.StatusMethodNotAllowed)
		return
	}

	var req models.EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(wr, "invalid request body", http.StatusBadRequest)
		return
	}

	result, err := w.calculator.Evaluate(req.Input)
	if err != nil {
		writeError(wr, evaluator.Placeholder, err)
		return
	}

	writeJSON(wr, http.StatusOK, models.Result{Result: result})
}

func (w *WebInterface) handlePress(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(wr, "only POST", http.StatusMethodNotAllowed)
		return
	}

	var req models.PressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(wr, "invalid request body", http.StatusBadRequest)
		return
	}

	display, err := w.calculator.Press(req.Key)
	if err != nil {
		writeError(wr, display, err)
		return
	}

	writeJSON(wr, http.StatusOK, models.Result{Display: display})
}

func (w *WebInterface) handleHistory(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(wr, "only GET", http.StatusMethodNotAllowed)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(wr, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	writeJSON(wr, http.StatusOK, w.history.Recent(limit))
}

func (w *WebInterface) handleClearHistory(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(wr, "only POST", http.StatusMethodNotAllowed)
		return
	}

	cleared := w.history.Clear()
	metrics.UpdateHistorySize(0)
	w.logger.Info("history cleared", "entries", cleared)
	writeJSON(wr, http.StatusOK, models.ClearResponse{Cleared: cleared})
}

func (w *WebInterface) handleMemory(wr http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(wr, "only GET", http.StatusMethodNotAllowed)
		return
	}

	value, stored := w.calculator.Memory()
	writeJSON(wr, http.StatusOK, models.MemoryState{Value: value, Stored: stored})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResult maps an error to the reply body and HTTP status.
func errorResult(display string, err error) (models.Result, int) {
	body := models.Result{Display: display, Error: err.Error()}

	switch kind := evaluator.KindOf(err); {
	case kind != evaluator.KindUnknown:
		body.Kind = kind.String()
		return body, http.StatusUnprocessableEntity
	case errors.Is(err, calculator.ErrUnknownKey):
		return body, http.StatusBadRequest
	}
	return body, http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, display string, err error) {
	body, status := errorResult(display, err)
	writeJSON(w, status, body)
}
