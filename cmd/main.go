package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/weiawesome/wes-io-live/smallid/internal/cli"
	pkglog "github.com/weiawesome/wes-io-live/smallid/pkg/log"
)

func main() {
	pkglog.Init(pkglog.Config{
		Level:       "info",
		ServiceName: cli.ServiceName,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := cli.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		// validate already reported each id on stdout.
		if !errors.Is(err, cli.ErrInvalidIDs) {
			logger := pkglog.L()
			logger.Error().Err(err).Msg("smallid failed")
		}
		os.Exit(1)
	}
}
