package router

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

var DefaultError = JsonError{
	Code: http.StatusInternalServerError,
	Err:  "internal server error",
}

// Router is a wrapper around chi.Router that provides error handling.
// Handlers return an error which is mapped to a JSON error response.
// Mappings for sentinel errors can be registered with RegisterErrorMapper
// and are matched with errors.Is, so wrapped errors still resolve.
type Router struct {
	chi.Router
	errorMappings []errorMapping
	defaultError  JsonError
	logger        *slog.Logger
}

type errorMapping struct {
	target error
	fn     ErrorMapper
}

func New(opts ...RouterOption) *Router {
	return newRouter(chi.NewRouter(), opts...)
}

type RouterOption func(*Router)

func WithLogger(logger *slog.Logger) RouterOption {
	return func(r *Router) {
		r.logger = logger
	}
}

func WithDefaultError(err JsonError) RouterOption {
	return func(r *Router) {
		r.defaultError = err
	}
}

func newRouter(chiRouter chi.Router, opts ...RouterOption) *Router {
	router := &Router{
		Router:       chiRouter,
		defaultError: DefaultError,
		logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}

	for _, opt := range opts {
		opt(router)
	}
	return router
}

// HandlerFunc is a function that handles an HTTP request and returns an error.
// A failing handler should not write to the response writer; it returns an
// error that is mapped to an error response instead.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

type Middleware func(http.Handler) HandlerFunc

// ErrorMapper maps a go error to an API error.
type ErrorMapper func(error) Error

func (a *Router) RegisterErrorMapper(target error, fn ErrorMapper) {
	a.errorMappings = append(a.errorMappings, errorMapping{target: target, fn: fn})
}

// mapError resolves a handler error to an API error:
//   - a JsonError is returned as is.
//   - otherwise the registered mappings are scanned in registration order and
//     the first errors.Is match wins.
//   - with no match the default error is returned.
func (a *Router) mapError(err error) Error {
	apiErr, ok := err.(JsonError)
	if ok {
		return apiErr
	}

	for _, m := range a.errorMappings {
		if errors.Is(err, m.target) {
			return m.fn(err)
		}
	}
	return a.defaultError
}

func (a *Router) handleWithErr(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}
		resError := a.mapError(err)
		if resError.StatusCode() >= http.StatusInternalServerError {
			a.logger.Error(err.Error(),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resError.StatusCode())
		if err := resError.Encode(w); err != nil {
			a.logger.Error("encoding error response", slog.String("error", err.Error()))
		}
	}
}

func (a *Router) Get(path string, h HandlerFunc) {
	a.Router.Get(path, a.handleWithErr(h))
}

func (a *Router) Post(path string, h HandlerFunc) {
	a.Router.Post(path, a.handleWithErr(h))
}

func (a *Router) Put(path string, h HandlerFunc) {
	a.Router.Put(path, a.handleWithErr(h))
}

func (a *Router) Delete(path string, h HandlerFunc) {
	a.Router.Delete(path, a.handleWithErr(h))
}

func (a *Router) Route(path string, f func(r *Router)) {
	a.Router.Route(path, func(r chi.Router) {
		f(a.sub(r))
	})
}

func (a *Router) Use(middleware Middleware) {
	a.Router.Use(func(h http.Handler) http.Handler {
		return a.handleWithErr(middleware(h))
	})
}

func (a *Router) With(middleware Middleware) *Router {
	ch := a.Router.With(func(h http.Handler) http.Handler {
		return a.handleWithErr(middleware(h))
	})
	return a.sub(ch)
}

// sub derives a router that shares error mappings and logging with its parent.
func (a *Router) sub(r chi.Router) *Router {
	return &Router{
		Router:        r,
		errorMappings: a.errorMappings,
		defaultError:  a.defaultError,
		logger:        a.logger,
	}
}
