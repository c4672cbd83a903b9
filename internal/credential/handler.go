// Package credential serves the completion API key to chat clients.
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/rs/zerolog"

	apierrors "github.com/diogo/askbox/internal/errors"
	"github.com/diogo/askbox/internal/models"
)

// LookupFunc reads one environment variable
type LookupFunc func(key string) (string, bool)

// Handler answers credential requests from the process environment.
// It keeps no state between requests.
type Handler struct {
	lookup LookupFunc
	envVar string
	logger zerolog.Logger
}

// HandlerOption configures a Handler
type HandlerOption func(*Handler)

// WithLookup replaces the environment lookup
func WithLookup(fn LookupFunc) HandlerOption {
	return func(h *Handler) {
		if fn != nil {
			h.lookup = fn
		}
	}
}

// WithEnvVar changes the variable the secret is read from
func WithEnvVar(name string) HandlerOption {
	return func(h *Handler) {
		if name != "" {
			h.envVar = name
		}
	}
}

// WithLogger sets the handler logger
func WithLogger(logger zerolog.Logger) HandlerOption {
	return func(h *Handler) {
		h.logger = logger
	}
}

// NewHandler creates a Handler reading models.CredentialEnvVar
func NewHandler(opts ...HandlerOption) *Handler {
	h := &Handler{
		lookup: os.LookupEnv,
		envVar: models.CredentialEnvVar,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type credentialResponse struct {
	APIKey string `json:"apiKey"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ServeHTTP implements http.Handler
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key, err := h.credential(r.Method)
	switch {
	case errors.Is(err, apierrors.ErrMethodNotAllowed):
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	case errors.Is(err, apierrors.ErrNotConfigured):
		h.logger.Error().Str("env", h.envVar).Msg("API key not configured")
		writeError(w, http.StatusInternalServerError, "API key not configured")
		return
	}

	header := w.Header()
	header.Set("Access-Control-Allow-Origin", "*")
	header.Set("Access-Control-Allow-Headers", "Content-Type")
	header.Set("Access-Control-Allow-Methods", http.MethodGet)
	writeJSON(w, http.StatusOK, credentialResponse{APIKey: key})
}

// credential resolves the secret for a request made with method
func (h *Handler) credential(method string) (string, error) {
	if method != http.MethodGet {
		return "", fmt.Errorf("%w: %s", apierrors.ErrMethodNotAllowed, method)
	}
	key, ok := h.lookup(h.envVar)
	if !ok || key == "" {
		return "", fmt.Errorf("%w: %s is empty", apierrors.ErrNotConfigured, h.envVar)
	}
	return key, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
