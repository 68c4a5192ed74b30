package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/weiawesome/wes-io-live/smallid/internal/handler"
	pkglog "github.com/weiawesome/wes-io-live/smallid/pkg/log"
)

const shutdownTimeout = 5 * time.Second

type serveCommand struct {
	app *App

	Addr string `long:"addr" description:"Listen address, overrides server.host and server.port"`
}

func (c *serveCommand) Execute(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("serve takes no arguments, got %d", len(args))
	}

	a := c.app
	addr := c.Addr
	if addr == "" {
		addr = a.cfg.Server.Addr()
	}

	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	debug := a.opts.Verbose || pkglog.ParseLevel(a.cfg.Log.Level) <= zerolog.DebugLevel
	srv := handler.NewServer(lis.Addr().String(), a.gen, a.logger, debug)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info().Str(pkglog.FieldAddr, lis.Addr().String()).Msg("http server listening")
		if err := srv.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	if a.serveReady != nil {
		a.serveReady <- lis.Addr().String()
	}

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-a.ctx.Done():
	}

	a.logger.Info().Msg("shutting down http server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	a.logger.Info().Msg("http server stopped")
	return nil
}
