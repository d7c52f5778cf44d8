package router

import (
	"net/http"
	"strconv"
)

// Middleware wraps an http.Handler with additional behavior.
type Middleware func(next http.Handler) http.Handler

// Chain applies mws to h so that the first middleware is the outermost one.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func formatSeconds(secs int64) string {
	if secs < 1 {
		secs = 1
	}
	return strconv.FormatInt(secs, 10)
}
