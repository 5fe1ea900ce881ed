package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-finder/domain"
	"market-finder/metrics"
	"market-finder/repository"
	"market-finder/service"
)

func ids(carriers []domain.Carrier) []string {
	out := make([]string, 0, len(carriers))
	for _, c := range carriers {
		out = append(out, c.ID)
	}
	return out
}

func TestFilterIncompleteSelectionIsEmpty(t *testing.T) {
	carriers := newReference(t).ListCarriers()
	for _, sel := range []domain.Selection{
		{},
		{StateCode: "CA"},
		{StateCode: "CA", BusinessType: domain.BusinessPersonal},
		{StateCode: "CA", LOB: "Personal Auto"},
	} {
		res := service.FilterCarriers(sel, carriers)
		assert.NotNil(t, res.Online)
		assert.NotNil(t, res.OfflineOnly)
		assert.True(t, res.Empty(), "%+v", sel)
	}
}

func TestFilterArizonaPersonalAuto(t *testing.T) {
	carriers := newReference(t).ListCarriers()
	sel := domain.Selection{StateCode: "AZ", BusinessType: domain.BusinessPersonal, LOB: "Personal Auto"}

	res := service.FilterCarriers(sel, carriers)

	assert.Contains(t, ids(res.Online), "123-insurance")
	assert.NotContains(t, ids(res.Online), "gainsco")
	assert.Equal(t, []string{"gainsco", "farmers"}, ids(res.OfflineOnly))
	// TX/CA only carriers stay out
	assert.NotContains(t, ids(res.Online), "geico")
	assert.NotContains(t, ids(res.Online), "allstate")
}

func TestFilterOnlineTakesPrecedence(t *testing.T) {
	carriers := newReference(t).ListCarriers()
	sel := domain.Selection{StateCode: "CA", BusinessType: domain.BusinessPersonal, LOB: "Renters"}

	res := service.FilterCarriers(sel, carriers)

	assert.Equal(t, []string{"abc-insurance", "state-farm", "travelers"}, ids(res.Online))
	assert.Empty(t, res.OfflineOnly)
}

func TestFilterPreservesDatasetOrder(t *testing.T) {
	carriers := []domain.Carrier{
		{ID: "z", States: []string{"TX"}, Lines: []string{"Homeowners"}, Tags: []string{"Offline"}},
		{ID: "a", States: []string{"TX"}, Lines: []string{"Homeowners"}, Tags: []string{"Online"}},
		{ID: "m", States: []string{"TX"}, Lines: []string{"Homeowners"}, Tags: []string{"Offline", "Online"}},
		{ID: "b", States: []string{"TX"}, Lines: []string{"Homeowners"}, Tags: []string{"Offline"}},
	}
	sel := domain.Selection{StateCode: "TX", BusinessType: domain.BusinessPersonal, LOB: "Homeowners"}

	res := service.FilterCarriers(sel, carriers)
	assert.Equal(t, []string{"a", "m"}, ids(res.Online))
	assert.Equal(t, []string{"z", "b"}, ids(res.OfflineOnly))
}

func TestFilterNonexistentLineIsEmptyResultsStage(t *testing.T) {
	carriers := newReference(t).ListCarriers()
	sel := domain.Selection{StateCode: "AZ", BusinessType: domain.BusinessCommercial, LOB: "Lunar Cargo"}

	res := service.FilterCarriers(sel, carriers)
	assert.Empty(t, res.Online)
	assert.Empty(t, res.OfflineOnly)
	assert.Equal(t, domain.StageResults, domain.StageOf(sel))
}

// Every carrier satisfying the predicate appears in exactly one group, and
// nothing else appears.
func TestFilterCorrectnessAcrossDataset(t *testing.T) {
	ref := newReference(t)
	carriers := ref.ListCarriers()

	for _, state := range ref.LicensedStates() {
		for _, bt := range domain.BusinessTypes {
			for _, lob := range ref.LOBsFor(bt) {
				sel := domain.Selection{StateCode: state.Code, BusinessType: bt, LOB: lob}
				res := service.FilterCarriers(sel, carriers)

				seen := map[string]int{}
				for _, c := range res.Online {
					require.True(t, c.ServesState(state.Code) && c.OffersLine(lob))
					require.True(t, c.HasTag(domain.TagOnline))
					seen[c.ID]++
				}
				for _, c := range res.OfflineOnly {
					require.True(t, c.ServesState(state.Code) && c.OffersLine(lob))
					require.False(t, c.HasTag(domain.TagOnline))
					seen[c.ID]++
				}
				for _, c := range carriers {
					if c.ServesState(state.Code) && c.OffersLine(lob) {
						require.Equal(t, 1, seen[c.ID], "%s in %+v", c.ID, sel)
					} else {
						require.Zero(t, seen[c.ID])
					}
				}
			}
		}
	}
}

type failingCache struct{ err error }

func (f failingCache) Get(context.Context, string) (string, bool, error) { return "", false, f.err }
func (f failingCache) Set(context.Context, string, string) error        { return f.err }

func TestLookupCachesCarrierIDs(t *testing.T) {
	ref := newReference(t)
	cache := repository.NewMemoryCache(64, 0)
	m := metrics.New()
	lookup := service.NewLookupService(ref, cache, "v1", zerolog.Nop(), m)
	ctx := context.Background()
	sel := domain.Selection{StateCode: "TX", BusinessType: domain.BusinessCommercial, LOB: "Commercial Auto"}

	first := lookup.Lookup(ctx, sel)
	assert.Equal(t, []string{"progressive"}, ids(first.Online))
	assert.Equal(t, 1, cache.Len())

	raw, ok, err := cache.Get(ctx, "lookup:v1:/?state=TX&type=Commercial&lob=Commercial+Auto")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"online":["progressive"],"offlineOnly":[]}`, raw)

	second := lookup.Lookup(ctx, sel)
	assert.Equal(t, first, second)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheEvents.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CacheEvents.WithLabelValues("miss")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Lookups.WithLabelValues("results")))
}

func TestLookupIgnoresStaleOrBrokenEntries(t *testing.T) {
	ref := newReference(t)
	cache := repository.NewMemoryCache(64, 0)
	lookup := service.NewLookupService(ref, cache, "v1", zerolog.Nop(), nil)
	ctx := context.Background()
	sel := domain.Selection{StateCode: "AZ", BusinessType: domain.BusinessPersonal, LOB: "Personal Auto"}
	key := "lookup:v1:" + service.SelectionURL(sel)

	require.NoError(t, cache.Set(ctx, key, `{"online":["retired-carrier"],"offlineOnly":[]}`))
	res := lookup.Lookup(ctx, sel)
	assert.Contains(t, ids(res.Online), "123-insurance")

	require.NoError(t, cache.Set(ctx, key, `not json`))
	res = lookup.Lookup(ctx, sel)
	assert.Contains(t, ids(res.Online), "123-insurance")
}

func TestLookupSurvivesCacheFailures(t *testing.T) {
	ref := newReference(t)
	m := metrics.New()
	lookup := service.NewLookupService(ref, failingCache{err: errors.New("connection refused")}, "v1", zerolog.Nop(), m)
	sel := domain.Selection{StateCode: "CA", BusinessType: domain.BusinessPersonal, LOB: "Homeowners"}

	res := lookup.Lookup(context.Background(), sel)
	assert.Equal(t, service.FilterCarriers(sel, ref.ListCarriers()), res)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CacheEvents.WithLabelValues("error")))
}

func TestLookupSkipsCacheForUnknownLOB(t *testing.T) {
	ref := newReference(t)
	cache := repository.NewMemoryCache(64, 0)
	lookup := service.NewLookupService(ref, cache, "v1", zerolog.Nop(), nil)
	ctx := context.Background()

	lookup.Lookup(ctx, domain.Selection{StateCode: "CA", BusinessType: domain.BusinessPersonal, LOB: "Renters"})
	require.Equal(t, 1, cache.Len())

	for i := 0; i < 500; i++ {
		sel := domain.Selection{StateCode: "CA", BusinessType: domain.BusinessPersonal, LOB: fmt.Sprintf("junk-%d", i)}
		res := lookup.Lookup(ctx, sel)
		assert.True(t, res.Empty())
	}
	assert.Equal(t, 1, cache.Len())

	// a Commercial lob under Personal is just as unknown
	lookup.Lookup(ctx, domain.Selection{StateCode: "TX", BusinessType: domain.BusinessPersonal, LOB: "Commercial Auto"})
	assert.Equal(t, 1, cache.Len())
}

func TestLookupWithoutCache(t *testing.T) {
	ref := newReference(t)
	lookup := service.NewLookupService(ref, nil, "", zerolog.Nop(), nil)

	res := lookup.Lookup(context.Background(), domain.Selection{StateCode: "CA"})
	assert.True(t, res.Empty())
	assert.NotNil(t, res.Online)
}
