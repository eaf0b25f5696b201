package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler and can derive a new context for it.
// Returning an error aborts the request.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the handler with the final context, error and
// response included. Closers run even when a middleware aborted the request.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx    context.Context
	engine *gin.Engine

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	return &Router{
		ctx:     ctx,
		engine:  gin.New(),
		closers: []CloserFunc{handleResponse()},
	}
}

// Branch derives a router sharing the same engine and base context but with
// an independent middleware chain.
func (r *Router) Branch() *Router {
	branch := &Router{ctx: r.ctx, engine: r.engine}
	branch.befores = append(branch.befores, r.befores...)
	branch.afters = append(branch.afters, r.afters...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.befores = append(r.befores, middleware)
}

func (r *Router) After(middleware MiddlewareFunc) {
	r.afters = append(r.afters, middleware)
}

func (r *Router) AddCloser(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.engine.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Handle mounts a raw http.Handler, bypassing the middleware chain.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.engine.GET(pattern, gin.WrapH(handler))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
