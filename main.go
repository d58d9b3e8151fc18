package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/sirupsen/logrus"

	"github.com/matheuscscp/oauth2-callback-server/internal/config"
	"github.com/matheuscscp/oauth2-callback-server/internal/constants"
	"github.com/matheuscscp/oauth2-callback-server/internal/logging"
	"github.com/matheuscscp/oauth2-callback-server/internal/server"
)

const shutdownTimeout = 5 * time.Second

func main() {
	conf, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	logger := logrus.StandardLogger()
	if err := logging.Setup(logger, conf.Server.Production); err != nil {
		logger.WithError(err).Warn("failed to load log level")
	}
	if !conf.Server.Production {
		figure.NewFigure(constants.OAuth2CallbackServer, "", true).Print()
		fmt.Println()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, metricsSrv := server.New(conf, logger)
	servers := []*http.Server{srv}
	if metricsSrv != nil {
		servers = append(servers, metricsSrv)
	}

	errCh := make(chan error, len(servers))
	for _, s := range servers {
		go func() {
			logger.WithField("addr", s.Addr).Info("server listening")
			if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("failed to serve on %s: %w", s.Addr, err)
			}
		}()
	}
	logger.WithFields(logrus.Fields{
		"production": conf.Server.Production,
		"providers":  len(conf.Providers),
	}).Info("oauth2 callback server started")

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		logger.WithError(err).Error("server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	for _, s := range servers {
		if err := s.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).WithField("addr", s.Addr).Error("failed to shut down server")
		}
	}
}
