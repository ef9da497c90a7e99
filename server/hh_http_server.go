package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

const SHUTDOWN_TIMEOUT = 5 * time.Second

type HappyHourHttpServer struct {
	router    *Router
	muxRouter *mux.Router
	addr      string
	logger    *zap.Logger
}

func NewHappyHourHttpServer(router *Router, muxRouter *mux.Router, addr string, logger *zap.Logger) *HappyHourHttpServer {
	return &HappyHourHttpServer{
		router:    router,
		muxRouter: muxRouter,
		addr:      addr,
		logger:    logger.Named("HttpServer"),
	}
}

// Handler registers the routes and returns the root handler.
func (s *HappyHourHttpServer) Handler() http.Handler {
	s.router.RegisterRoutes()
	return s.muxRouter
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *HappyHourHttpServer) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start the server in a goroutine so it doesn't block
	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}
	s.logger.Info("Shutting down the server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-serveErr

	s.logger.Info("Server exiting")
	return nil
}
