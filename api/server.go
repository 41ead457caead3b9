// Package api - Thin API layer
// The API is ONLY responsible for: input decoding, engine orchestration, output serialization.
// The API NEVER performs cost logic.
package api

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/MidwestFurryFandom/mff-rams-plugin/core/cost"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/determinism"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/diff"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/types"
	"github.com/MidwestFurryFandom/mff-rams-plugin/core/validation"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/config"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/errors"
	"github.com/MidwestFurryFandom/mff-rams-plugin/internal/logging"
)

// maxBodyBytes bounds request bodies
const maxBodyBytes = 1 << 20

// Server is the API server
type Server struct {
	engine    *cost.Engine
	differ    *diff.Differ
	validator *validation.Validator
	mux       *http.ServeMux
	handler   http.Handler
	version   string
	cfg       config.ServerConfig
	logger    *zap.Logger
}

// NewServer creates a new API server over engine
func NewServer(version string, engine *cost.Engine, cfg config.ServerConfig) *Server {
	if engine == nil {
		engine = cost.NewEngine(nil)
	}

	s := &Server{
		engine:    engine,
		differ:    diff.NewDiffer(engine),
		validator: validation.New(engine),
		mux:       http.NewServeMux(),
		version:   version,
		cfg:       cfg,
		logger:    logging.Named("api"),
	}

	s.registerRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	})
	s.handler = s.withRequestID(s.withLogging(s.withRecovery(c.Handler(s.mux))))
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	// Core endpoints
	s.mux.HandleFunc("POST /v1/quote", s.handleQuote)
	s.mux.HandleFunc("POST /v1/preview", s.handlePreview)
	s.mux.HandleFunc("POST /v1/diff", s.handleDiff)
	s.mux.HandleFunc("POST /v1/validate", s.handleValidate)
	s.mux.HandleFunc("GET /v1/prices", s.handlePrices)

	// Supporting endpoints
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /version", s.handleVersion)
}

// handleQuote handles POST /v1/quote
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req QuoteRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	receipt, err := s.engine.Itemize(req.Group)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := toQuoteResponse(receipt, s.engine.Normalize(req.Group))
	resp.Metadata = s.metadata(r, &req, start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handlePreview handles POST /v1/preview
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req PreviewRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	change, err := cost.ParseChange(req.Field, req.RawValue())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	preview, err := s.engine.PreviewChange(req.Group, change)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := toPreviewResponse(preview)
	resp.Metadata = s.metadata(r, &req, start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handleDiff handles POST /v1/diff
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req DiffRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	// Compute diff (using engine diff, NOT computing here)
	result, err := s.differ.Diff(req.Before, req.After)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := toDiffResponse(result)
	resp.Metadata = s.metadata(r, &req, start)
	s.writeJSON(w, resp, http.StatusOK)
}

// handleValidate handles POST /v1/validate
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req ValidateRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	fieldErrors := s.validator.Validate(req.Group)
	if fieldErrors == nil {
		fieldErrors = []validation.FieldError{}
	}

	s.writeJSON(w, &ValidateResponse{
		Valid:    len(fieldErrors) == 0,
		Errors:   fieldErrors,
		Metadata: s.metadata(r, &req, start),
	}, http.StatusOK)
}

// handlePrices handles GET /v1/prices
func (s *Server) handlePrices(w http.ResponseWriter, r *http.Request) {
	prices := s.engine.Prices()

	s.writeJSON(w, &PricesResponse{
		TableOptions:     prices.PreregTableOpts(),
		PowerOptions:     prices.PowerOpts(),
		GroupBadgePrice:  NewMoney(types.FromWhole(prices.GroupBadgePrice)),
		DealerBadgePrice: NewMoney(types.FromWhole(prices.DealerBadgePrice)),
		Metadata:         s.metadata(r, nil, time.Now()),
	}, http.StatusOK)
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]interface{}{
		"status":     "healthy",
		"version":    s.version,
		"request_id": RequestID(r.Context()),
		"time":       time.Now().UTC().Format(time.RFC3339),
	}, http.StatusOK)
}

// handleVersion handles GET /version
func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, map[string]string{
		"version":      s.version,
		"engine":       "mff-cost",
		"api_version":  "v1",
		"pricing_hash": s.engine.Prices().Hash(),
		"request_id":   RequestID(r.Context()),
	}, http.StatusOK)
}

func (s *Server) metadata(r *http.Request, req interface{}, start time.Time) *ResponseMetadata {
	md := &ResponseMetadata{
		RequestID:     RequestID(r.Context()),
		EngineVersion: s.version,
		PricingHash:   s.engine.Prices().Hash(),
		DurationMs:    time.Since(start).Milliseconds(),
	}
	if req != nil {
		md.InputHash = computeInputHash(req)
	}
	return md
}

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	errType := errors.TypeOf(err)
	status := statusFor(errType)

	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("request_id", RequestID(r.Context())), zap.Error(err))
	}

	s.writeJSON(w, &ErrorResponse{
		Error:     ErrorBody{Code: string(errType), Message: err.Error()},
		RequestID: RequestID(r.Context()),
	}, status)
}

// statusFor maps an error type to an HTTP status
func statusFor(t errors.Type) int {
	switch t {
	case errors.TypeInput:
		return http.StatusBadRequest
	case errors.TypePricing, errors.TypeValidation:
		return http.StatusUnprocessableEntity
	case errors.TypeNotSupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON request body into v
func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.TypeInput, "invalid JSON body", err)
	}
	return nil
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the server and shuts it down gracefully when ctx
// is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := time.Duration(s.cfg.ShutdownTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// Helper functions

func computeInputHash(req interface{}) string {
	h, err := determinism.HashJSON(req)
	if err != nil {
		return ""
	}
	return h.Hex()
}
