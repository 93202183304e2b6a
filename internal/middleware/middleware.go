package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Chain composes mws into a single Middleware. The first one in the list
// sits closest to the handler.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for _, mw := range mws {
			h = mw(h)
		}
		return h
	}
}

func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	return Chain(mws...)(h)
}
