package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer wraps the router in an http.Server with sane timeouts. Write
// timeout leaves headroom for the longest sync render.
func NewServer(addr string, router *gin.Engine, requestTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      requestTimeout + 10*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// Shutdown drains in-flight requests with a bounded grace period.
func Shutdown(srv *http.Server, grace time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(ctx)
}
