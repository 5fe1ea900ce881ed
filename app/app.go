package app

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/rs/zerolog"

	"market-finder/config"
	"market-finder/data"
	httpLayer "market-finder/http"
	"market-finder/logging"
	"market-finder/metrics"
	"market-finder/repository"
	"market-finder/service"
)

const pingTimeout = 3 * time.Second

// App bundles the services built from one Config.
type App struct {
	Config    config.Config
	Logger    zerolog.Logger
	Metrics   *metrics.Metrics
	Reference *repository.ReferenceRepositoryMemory
	Selection *service.SelectionService
	Lookup    *service.LookupService
	Views     *service.ViewBuilder

	// Namespace fingerprints the loaded dataset so cached lookups never
	// outlive a data change.
	Namespace string

	redis *repository.RedisCache
}

// New constructs the dependency graph from cfg, logging to logOut.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.NewWithWriter(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	raw, err := loadReference(cfg.Data.Path)
	if err != nil {
		return nil, err
	}
	ds, err := repository.LoadDataset(raw)
	if err != nil {
		return nil, err
	}
	ref, err := repository.NewReferenceRepositoryMemory(ds)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:    cfg,
		Logger:    logger,
		Metrics:   metrics.New(),
		Reference: ref,
		Namespace: fingerprint(raw),
	}

	cache, err := a.openCache(ctx)
	if err != nil {
		return nil, err
	}

	a.Selection = service.NewSelectionService(ref, logger, a.Metrics)
	a.Lookup = service.NewLookupService(ref, cache, a.Namespace, logger, a.Metrics)
	a.Views = service.NewViewBuilder(a.Selection, a.Lookup)

	logger.Debug().
		Str("namespace", a.Namespace).
		Str("cache", cfg.Cache.Driver).
		Int("states", len(ds.States)).
		Int("carriers", len(ds.Carriers)).
		Msg("reference data loaded")
	return a, nil
}

func loadReference(path string) ([]byte, error) {
	if path == "" {
		return data.Reference(), nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dataset: %w", err)
	}
	return raw, nil
}

func fingerprint(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:6])
}

func (a *App) openCache(ctx context.Context) (repository.CacheRepository, error) {
	switch a.Config.Cache.Driver {
	case config.CacheRedis:
		rc := repository.NewRedisCache(a.Config.Cache.RedisAddr, a.Config.Cache.Prefix, a.Config.Cache.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := rc.Ping(pingCtx); err != nil {
			_ = rc.Close()
			return nil, fmt.Errorf("connect redis %s: %w", a.Config.Cache.RedisAddr, err)
		}
		a.redis = rc
		return rc, nil
	case config.CacheNone:
		return nil, nil
	default:
		return repository.NewMemoryCache(a.Config.Cache.MaxEntries, a.Config.Cache.TTL), nil
	}
}

// NewSession loads a Session from query, reporting URL changes to nav.
func (a *App) NewSession(query url.Values, nav service.Navigator) *service.Session {
	return service.NewSession(a.Selection, nav, query)
}

// Health reports whether the backing cache is reachable.
func (a *App) Health(r *http.Request) error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Ping(r.Context())
}

// Handler builds the HTTP surface. The returned stop func releases the rate
// limiter and must be called once the server is done.
func (a *App) Handler() (http.Handler, func(), error) {
	pages, err := httpLayer.NewPageHandler(a.Selection, a.Views, a.Logger)
	if err != nil {
		return nil, nil, err
	}

	limiter := httpLayer.NewRateLimiter(a.Config.RateLimit.Capacity, a.Config.RateLimit.Refill)

	router := httpLayer.NewRouter(httpLayer.RouterConfig{
		Pages:          pages,
		API:            httpLayer.NewAPIHandler(a.Selection, a.Lookup, a.Logger),
		Limiter:        limiter,
		Metrics:        a.Metrics,
		Logger:         a.Logger,
		CORSOrigins:    a.Config.Server.CORSOrigins,
		RequestTimeout: a.Config.Server.RequestTimeout,
		Health:         a.Health,
	})
	return router, limiter.Stop, nil
}

// Close releases external connections.
func (a *App) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}
