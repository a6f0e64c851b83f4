package http

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"
)

// listener runs one named net/http server. The API and the metrics endpoint each own one.
type listener struct {
	name   string
	server *http.Server
	logger *slog.Logger
}

func newListener(name, host string, port int, handler http.Handler, logger *slog.Logger) listener {
	return listener{
		name: name,
		server: &http.Server{
			Addr:              net.JoinHostPort(host, strconv.Itoa(port)),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: logger.With(slog.String("server", name)),
	}
}

// serve blocks until the server stops. A graceful shutdown returns nil.
func (l listener) serve() error {
	l.logger.Info("starting server", slog.String("addr", l.server.Addr))

	err := l.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return fmt.Errorf("failed to start %s server: %w", l.name, err)
}

func (l listener) shutdown(ctx context.Context) error {
	l.logger.Info("shutting down server")
	return l.server.Shutdown(ctx)
}
