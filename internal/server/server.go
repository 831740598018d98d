// Package server exposes mapping suggestion, preview and compilation over
// HTTP.
package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"hrbridge/internal/gen"
	"hrbridge/internal/patterns"
	"hrbridge/internal/plan"
	"hrbridge/internal/store"
	"hrbridge/internal/transform"
)

// Config wires the API to its components. Patterns and Store are optional;
// without a Store the history routes are not registered.
type Config struct {
	BasePath      string
	MaxConcurrent int64
	Resolver      *plan.Resolver
	Compiler      *gen.Compiler
	Engine        *transform.Engine
	Patterns      *patterns.Store
	Store         *store.Store
	Log           *zap.Logger
}

type apiErrorBody struct {
	Code    string         `json:"code" example:"invalid_request"`
	Message string         `json:"message" example:"invalid customerEmail: is required"`
	Details map[string]any `json:"details,omitempty"`
}

// apiError is the error envelope of every route.
type apiError struct {
	status int
	Body   apiErrorBody `json:"error"`
}

func (e *apiError) GetStatus() int { return e.status }
func (e *apiError) Error() string  { return e.Body.Message }

type api struct {
	cfg Config
	sem *semaphore.Weighted
	log *zap.Logger
}

// New returns the HTTP handler.
func New(cfg Config) (http.Handler, error) {
	if cfg.Resolver == nil || cfg.Compiler == nil {
		return nil, errors.New("server needs a resolver and a compiler")
	}

	if cfg.Log == nil {
		cfg.Log = zap.NewNop()
	}

	if cfg.Engine == nil {
		cfg.Engine = transform.NewEngine(cfg.Log)
	}

	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 1
	}

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/v1"
	}

	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}

	huma.DefaultArrayNullable = false
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return newAPIError(status, "", msg, errorDetails(errs))
	}
	huma.NewErrorWithContext = func(_ huma.Context, status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}

		return newAPIError(status, "", msg, errorDetails(errs))
	}

	a := &api{cfg: cfg, sem: semaphore.NewWeighted(cfg.MaxConcurrent), log: cfg.Log}

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(a.requestLog)

	hcfg := huma.DefaultConfig("hrbridge API", "1.0.0")
	hcfg.OpenAPIPath = basePath + "/openapi"
	hcfg.DocsPath = ""
	hapi := humachi.New(router, hcfg)
	group := huma.NewGroup(hapi, basePath)

	registerHealth(group)
	a.registerMappings(group)
	a.registerIntegrations(group)

	return router, nil
}

func (a *api) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		a.log.Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

func newAPIError(status int, code, message string, details map[string]any) huma.StatusError {
	if code == "" {
		code = defaultCodeForStatus(status)
	}

	return &apiError{
		status: status,
		Body:   apiErrorBody{Code: code, Message: message, Details: details},
	}
}

func errorDetails(errs []error) map[string]any {
	if len(errs) == 0 {
		return nil
	}

	msgs := make([]string, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			msgs = append(msgs, err.Error())
		}
	}

	return map[string]any{"errors": msgs}
}

func defaultCodeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusServiceUnavailable:
		return "unavailable"
	case http.StatusInternalServerError:
		return "internal"
	default:
		return strings.ToLower(strings.ReplaceAll(http.StatusText(status), " ", "_"))
	}
}

// handleError maps component errors onto API errors.
func handleError(err error) huma.StatusError {
	if err == nil {
		return nil
	}

	var verr *gen.ValidationError
	if errors.As(err, &verr) {
		return newAPIError(http.StatusBadRequest, "invalid_request", err.Error(),
			map[string]any{"field": verr.Field, "reason": verr.Reason})
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return newAPIError(http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, patterns.ErrUnknownSource):
		return newAPIError(http.StatusNotFound, "unknown_source", err.Error(), nil)
	case errors.Is(err, patterns.ErrUnknownDestination):
		return newAPIError(http.StatusNotFound, "unknown_destination", err.Error(), nil)
	}

	return newAPIError(http.StatusInternalServerError, "", err.Error(), nil)
}
