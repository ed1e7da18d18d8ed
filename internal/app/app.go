package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/drstein77/storefront/internal/cart"
	"github.com/drstein77/storefront/internal/catalog"
	"github.com/drstein77/storefront/internal/config"
	"github.com/drstein77/storefront/internal/controllers"
	"github.com/drstein77/storefront/internal/dbkeeper"
	"github.com/drstein77/storefront/internal/logger"
	reqLog "github.com/drstein77/storefront/internal/middleware"
	"github.com/drstein77/storefront/internal/storage"
	"github.com/drstein77/storefront/internal/views"
	"github.com/go-chi/chi"
	chimw "github.com/go-chi/chi/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	srv    *http.Server
	ctx    context.Context
	loader *catalog.Loader
	keeper *dbkeeper.DBKeeper
	Log    *logger.Logger
}

// NewServer reads the options and wires the storefront together.
func NewServer(ctx context.Context) (*Server, error) {
	option := config.NewOptions()
	option.ParseFlags()

	nLogger, err := logger.NewLogger(option.LogLevel())
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return newServer(ctx, option, nLogger)
}

func newServer(ctx context.Context, option *config.Options, nLogger *logger.Logger) (*Server, error) {
	server := &Server{ctx: ctx, Log: nLogger}

	// a nil *DBKeeper must not end up inside a non-nil interface
	var (
		catalogKeeper catalog.Keeper
		storageKeeper storage.Keeper
	)
	if keeper := dbkeeper.NewDBKeeper(ctx, option.DataBaseDSN, option.MigrationsDir, nLogger); keeper != nil {
		server.keeper = keeper
		catalogKeeper = keeper
		storageKeeper = keeper
	}

	products := catalog.New()
	source := catalog.NewSource(option.CatalogSource(), catalogKeeper, nil)
	server.loader = catalog.NewLoader(source, products, nLogger)

	store := storage.NewMemoryStorage(products, cart.NewStore(), storageKeeper, nLogger)

	renderer, err := views.NewRenderer()
	if err != nil {
		return nil, err
	}
	basecontr := controllers.NewBaseController(store, renderer, option.AssetsDir(), nLogger)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(reqLog.RequestLogger(nLogger))
	r.Use(chimw.Compress(5))
	r.Mount("/", basecontr.Route())

	server.srv = &http.Server{
		Addr:    option.RunAddr(),
		Handler: r,
	}
	return server, nil
}

// Serve loads the catalog in the background and serves HTTP until Shutdown.
func (server *Server) Serve() error {
	g, gctx := errgroup.WithContext(server.ctx)

	loaded := server.loader.Start(gctx)
	g.Go(func() error {
		<-loaded
		return nil
	})

	g.Go(func() error {
		server.Log.Info("Starting server", zap.String("address", server.srv.Addr))
		if err := server.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	if server.keeper != nil {
		server.keeper.Close()
	}
	_ = server.Log.Sync()
	return err
}

// Shutdown gracefully stops the HTTP server within timeout.
func (server *Server) Shutdown(timeout time.Duration) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.srv.Shutdown(ctx); err != nil {
		server.Log.Error("Server shutdown error", zap.Error(err))
		return
	}
	server.Log.Info("Server stopped")
}
