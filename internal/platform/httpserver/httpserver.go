package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with conservative timeouts. Contract operations
// are synchronous and fast; anything slower than these bounds is stuck.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
	}
}
