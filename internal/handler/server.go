package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/weiawesome/wes-io-live/smallid/internal/generator"
	pkglog "github.com/weiawesome/wes-io-live/smallid/pkg/log"
)

// NewRouter wires the id routes behind recovery and request logging.
func NewRouter(gen generator.Generator, logger zerolog.Logger, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(pkglog.GinMiddleware(logger))

	NewHTTPHandler(gen).RegisterRoutes(r)
	return r
}

// NewServer returns an http.Server for addr. The caller owns its lifecycle.
func NewServer(addr string, gen generator.Generator, logger zerolog.Logger, debug bool) *http.Server {
	return &http.Server{
		Addr:    addr,
		Handler: NewRouter(gen, logger, debug),
	}
}
