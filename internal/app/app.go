package app

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/recetasfaciles/recetas/internal/config"
	"github.com/recetasfaciles/recetas/internal/favorites"
	"github.com/recetasfaciles/recetas/internal/fetch"
	"github.com/recetasfaciles/recetas/internal/kv"
	"github.com/recetasfaciles/recetas/internal/logging"
	"github.com/recetasfaciles/recetas/internal/mealdb"
	"github.com/recetasfaciles/recetas/internal/prefs"
	"github.com/recetasfaciles/recetas/internal/recipe"
	"github.com/recetasfaciles/recetas/internal/search"
	"github.com/recetasfaciles/recetas/internal/state"
	"github.com/recetasfaciles/recetas/internal/ui"
)

// Options configure the recetas application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/recetas/prefs.toml
	LogLevel   string // overrides the configured level when set
}

var _ ui.Browser = (*Browser)(nil)

// Run boots the recetas TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if lvl := strings.TrimSpace(opts.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}

	logger, closeLog, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogPath,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
		_ = closeLog()
	}()

	source, err := mealdb.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	if err != nil {
		return fmt.Errorf("init recipe source: %w", err)
	}

	storage, err := openStorage(cfg.Storage, cfg.StoragePath, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := storage.Close(); err != nil {
			logger.Warn("close storage", zap.Error(err))
		}
	}()

	logger.Info("recetas starting",
		zap.String("api", source.BaseURL()),
		zap.Duration("request_timeout", cfg.RequestTimeout),
		zap.String("storage", cfg.Storage),
		zap.String("storage_path", cfg.StoragePath),
	)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		logger.Warn("prefs unreadable, using defaults", zap.Error(err))
	}

	fetcher := fetch.New(source, recipe.NewTimeSeededTransformer(), search.NewGuard(), logger)
	browser := NewBrowser(
		fetcher,
		&state.Store{},
		favorites.Load(storage, logger),
		search.NewThrottle(search.DefaultThrottleWindow),
		logger,
	)

	return ui.Run(ui.Options{
		Context:    ctx,
		Browser:    browser,
		Log:        logger,
		ThemeName:  userPrefs.Theme,
		Compact:    userPrefs.Compact,
		PrefsPath:  opts.PrefsPath,
		AuthorName: cfg.AuthorName,
		AuthorURL:  cfg.AuthorURL,
	})
}

// openStorage opens the configured backend. A malformed storage file has
// already been set aside by kv; it is only logged here.
func openStorage(backend, path string, logger *zap.Logger) (kv.Store, error) {
	storage, err := kv.Open(backend, path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	if fs, ok := storage.(*kv.FileStore); ok && fs.Recovered() != "" {
		logger.Warn("storage file malformed, starting empty",
			zap.String("storage_path", path),
			zap.String("moved_to", fs.Recovered()),
		)
	}
	return storage, nil
}
