package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/threatforge/threatforge/internal/server"
	"github.com/threatforge/threatforge/pkg/cache"
	"github.com/threatforge/threatforge/pkg/config"
	"github.com/threatforge/threatforge/pkg/store"
)

// shutdownTimeout bounds graceful shutdown of in-flight requests.
const shutdownTimeout = 10 * time.Second

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	configPath string // TOML config file path
	addr       string // listen address override
}

// newServeCmd creates the serve command, which runs the HTTP conversion
// and model-store API until interrupted.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return runServe(c.Context(), &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "TOML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides config)")

	return cmd
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}

	c, err := newCacheBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	s, err := newStoreBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer s.Close(context.Background())

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: server.New(logger, c, s).Router(),
	}

	errc := make(chan error, 1)
	go func() {
		logger.Infof("Listening on %s", cfg.Server.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newCacheBackend builds the conversion cache named by the config.
func newCacheBackend(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case "null":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.Cache.RedisAddr)
	case "file":
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			dir, err = cacheDir()
			if err != nil {
				return nil, err
			}
		}
		return cache.NewFileCache(dir)
	default:
		return nil, fmt.Errorf("unknown cache backend: %s", cfg.Cache.Backend)
	}
}

// newStoreBackend connects to MongoDB when a URI is configured and falls
// back to the in-memory store otherwise.
func newStoreBackend(ctx context.Context, cfg config.Config, logger interface{ Warn(any, ...any) }) (store.Store, error) {
	if cfg.Store.MongoURI == "" {
		logger.Warn("no store configured, models are kept in memory")
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, cfg.Store.MongoURI, cfg.Store.Database)
}

// cacheDir returns the cache directory using XDG standard
// (~/.cache/threatforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
