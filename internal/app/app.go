package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper/internal/config"
	"github.com/vancomm/minesweeper/internal/middleware"
	"github.com/vancomm/minesweeper/internal/mines"
	"github.com/vancomm/minesweeper/internal/session"
)

type App struct {
	logger       *slog.Logger
	router       *http.ServeMux
	store        *session.Store
	tokens       *config.SessionTokens
	ws           *config.WebSocket
	maxBoardSize int
	sessionTTL   time.Duration
}

// New reads the server configuration from the environment.
func New(logger *slog.Logger) (*App, error) {
	ttl, err := config.SessionTTL()
	if err != nil {
		return nil, err
	}

	maxBoardSize, err := config.MaxBoardSize()
	if err != nil {
		return nil, err
	}

	tokens, generated, err := config.NewSessionTokens()
	if err != nil {
		return nil, fmt.Errorf("unable to load session secret: %w", err)
	}
	if generated {
		logger.Warn("no SESSION_SECRET set, using a random one")
	}

	ws, err := config.NewWebSocket()
	if err != nil {
		return nil, err
	}

	return NewWithDeps(logger, session.NewStore(logger, mines.NewRand(), ttl), tokens, ws, maxBoardSize, ttl), nil
}

func NewWithDeps(
	logger *slog.Logger,
	store *session.Store,
	tokens *config.SessionTokens,
	ws *config.WebSocket,
	maxBoardSize int,
	sessionTTL time.Duration,
) *App {
	a := &App{
		logger:       logger,
		router:       http.NewServeMux(),
		store:        store,
		tokens:       tokens,
		ws:           ws,
		maxBoardSize: maxBoardSize,
		sessionTTL:   sessionTTL,
	}
	a.loadRoutes()
	return a
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.logger, a.tokens),
		middleware.Cors(),
		middleware.Logging(a.logger),
	)
}

// Start serves on addr until ctx is done, sweeping idle sessions meanwhile.
func (a *App) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      a.Handler(),
		ReadTimeout:  time.Second * 15,
		WriteTimeout: time.Second * 15,
		IdleTimeout:  time.Second * 60,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
		defer cancel()
		return server.Shutdown(sCtx)
	})
	g.Go(func() error {
		return a.store.Run(gCtx, max(a.sessionTTL/2, time.Second))
	})

	return g.Wait()
}
