package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-finder/app"
	"market-finder/config"
	"market-finder/data"
	"market-finder/domain"
)

func newApp(t *testing.T, mutate func(*config.Config)) *app.App {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	a, err := app.New(context.Background(), cfg, io.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestNewWithEmbeddedData(t *testing.T) {
	a := newApp(t, nil)

	assert.Len(t, a.Reference.ListStates(), 51)
	assert.Len(t, a.Namespace, 12)
	assert.NoError(t, a.Health(httptest.NewRequest(http.MethodGet, "/healthz", nil)))

	sel := domain.Selection{StateCode: "TX", BusinessType: domain.BusinessCommercial, LOB: "Commercial Auto"}
	res := a.Lookup.Lookup(context.Background(), sel)
	assert.NotEmpty(t, res.Online)
}

func TestNamespaceFollowsDataset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reference.yaml")
	raw := string(data.Reference()) + "\n# local copy\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	embedded := newApp(t, nil)
	custom := newApp(t, func(c *config.Config) { c.Data.Path = path })

	assert.NotEqual(t, embedded.Namespace, custom.Namespace)
	assert.Equal(t, len(embedded.Reference.ListCarriers()), len(custom.Reference.ListCarriers()))
}

func TestNewRejectsBadDataset(t *testing.T) {
	cfg := config.Default()
	cfg.Data.Path = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := app.New(context.Background(), cfg, io.Discard)
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("states: [\n"), 0o600))
	cfg.Data.Path = path
	_, err = app.New(context.Background(), cfg, io.Discard)
	require.Error(t, err)
}

func TestRedisCacheDriver(t *testing.T) {
	srv := miniredis.RunT(t)
	a := newApp(t, func(c *config.Config) {
		c.Cache.Driver = config.CacheRedis
		c.Cache.RedisAddr = srv.Addr()
		c.Cache.Prefix = "mf:"
	})

	sel := domain.Selection{StateCode: "AZ", BusinessType: domain.BusinessPersonal, LOB: "Personal Auto"}
	first := a.Lookup.Lookup(context.Background(), sel)
	second := a.Lookup.Lookup(context.Background(), sel)
	assert.Equal(t, first, second)

	keys := srv.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "mf:lookup:"+a.Namespace+":"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	assert.NoError(t, a.Health(req))
	srv.Close()
	assert.Error(t, a.Health(req))
}

func TestRedisUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	addr := srv.Addr()
	srv.Close()

	cfg := config.Default()
	cfg.Cache.Driver = config.CacheRedis
	cfg.Cache.RedisAddr = addr
	_, err := app.New(context.Background(), cfg, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect redis")
}

func TestHandlerServesPages(t *testing.T) {
	a := newApp(t, func(c *config.Config) { c.Cache.Driver = config.CacheNone })

	h, stop, err := a.Handler()
	require.NoError(t, err)
	t.Cleanup(stop)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/select/state/CA", nil))
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/?state=CA", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
