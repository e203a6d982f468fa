package router

import (
	"context"
	"net/http"

	"github.com/rs/cors"

	"github.com/moltfund/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type MiddlewareFunc func(ctx context.Context) (context.Context, error)
type CloserFunc func(ctx context.Context)

// Router dispatches requests on a shared mux. Branch creates a sub-router
// with its own middleware chain but the same mux, so every route ends up in
// one http.Handler.
type Router struct {
	ctx     context.Context
	mux     *http.ServeMux
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates the root router. The given context must carry the configs,
// logger, database, and token engine; every request context derives from it.
func New(ctx context.Context) *Router {
	return &Router{ctx: ctx, mux: http.NewServeMux()}
}

func (r *Router) Branch() *Router {
	return &Router{
		ctx:     r.ctx,
		mux:     r.mux,
		befores: append([]MiddlewareFunc{}, r.befores...),
		afters:  append([]MiddlewareFunc{}, r.afters...),
		closers: append([]CloserFunc{}, r.closers...),
	}
}

// Before registers a middleware running before the handler. Returning an
// error stops the chain and the handler is never called.
func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

// After registers a middleware running after a successful handler.
func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

// AddCloser registers a function running after the response is written,
// whether the handler succeeded or not.
func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.Handle(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Handler(cfg cors.Options) http.Handler {
	return cors.New(cfg).Handler(r.mux)
}

func wrapHandler[Request, Response any](
	router *Router, method string, handler HandlerFunc[Request, Response],
) http.Handler {
	befores := append([]MiddlewareFunc{}, router.befores...)
	afters := append([]MiddlewareFunc{}, router.afters...)
	closers := append([]CloserFunc{}, router.closers...)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		ctx := xcontext.WithError(router.ctx)
		ctx = xcontext.WithHTTPRequest(ctx, req)

		func() {
			for _, m := range befores {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}

			var parsedReq Request
			var err error
			switch method {
			case http.MethodGet:
				err = bindQuery(req, &parsedReq)
			case http.MethodPost:
				err = bindBody(req, &parsedReq)
			}
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				xcontext.SetError(ctx, errBadRequest)
				return
			}

			resp, err := handler(ctx, &parsedReq)
			if err != nil {
				xcontext.SetError(ctx, err)
				return
			}

			for _, m := range afters {
				newCtx, err := m(ctx)
				if err != nil {
					xcontext.SetError(ctx, err)
					return
				}
				ctx = newCtx
			}

			writeResponse(ctx, w, resp)
		}()

		if err := xcontext.Error(ctx); err != nil {
			writeErrorResponse(ctx, w, err)
		}

		for _, closer := range closers {
			closer(ctx)
		}
	})
}
