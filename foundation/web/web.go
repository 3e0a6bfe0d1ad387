// Package web is a small framework on top of gin that normalizes handlers
// to the `func(*Context) error` form and centralizes response and error
// writing for the whole application.
package web

import (
	"net/http"
	"os"
	"syscall"

	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements.
type Handler func(c *Context) error

// Middleware is a function designed to run some code before and/or after
// another Handler.
type Middleware func(Handler) Handler

// App is the entrypoint into our application. It wraps the gin engine so
// routes are registered against Handler instead of gin.HandlerFunc.
type App struct {
	*gin.Engine
	shutdown chan os.Signal
	mw       []Middleware
}

// NewApp creates an App value that handles a set of routes for the
// application. Any middleware provided here runs for every request.
func NewApp(shutdown chan os.Signal, mw ...Middleware) *App {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &App{
		Engine:   engine,
		shutdown: shutdown,
		mw:       mw,
	}
}

// SignalShutdown is used to gracefully shut down the app when an integrity
// issue is identified.
func (a *App) SignalShutdown() {
	a.shutdown <- syscall.SIGTERM
}

func (a *App) handle(method string, route string, handler Handler, mw ...Middleware) {
	handler = wrapMiddleware(mw, handler)
	handler = wrapMiddleware(a.mw, handler)

	a.Engine.Handle(method, route, func(c *gin.Context) {
		ctx := &Context{
			Context: c,
			Ctx:     c.Request.Context(),
			Request: c.Request,
		}

		if err := handler(ctx); err != nil {
			// The handler failed after the response was already written or
			// returned an untrusted error. Nothing left to do but give up
			// on this request.
			_ = c.Error(err)
		}
	})
}

// Get registers a GET route with optional per-route middleware.
func (a *App) Get(route string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodGet, route, handler, mw...)
}

// Post registers a POST route with optional per-route middleware.
func (a *App) Post(route string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPost, route, handler, mw...)
}

// Put registers a PUT route with optional per-route middleware.
func (a *App) Put(route string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPut, route, handler, mw...)
}

// Patch registers a PATCH route with optional per-route middleware.
func (a *App) Patch(route string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodPatch, route, handler, mw...)
}

// Delete registers a DELETE route with optional per-route middleware.
func (a *App) Delete(route string, handler Handler, mw ...Middleware) {
	a.handle(http.MethodDelete, route, handler, mw...)
}

// wrapMiddleware creates a new handler by wrapping middleware around a final
// handler. The middlewares' Handlers will be executed by requests in the
// order they are provided.
func wrapMiddleware(mw []Middleware, handler Handler) Handler {
	// Loop backwards through the middleware invoking each one. Replace the
	// handler with the new wrapped handler. Looping backwards ensures that
	// the first middleware of the slice is the first to be executed.
	for i := len(mw) - 1; i >= 0; i-- {
		h := mw[i]
		if h != nil {
			handler = h(handler)
		}
	}

	return handler
}
