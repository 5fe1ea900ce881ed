package service

import (
	"context"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog"

	"market-finder/domain"
	"market-finder/logging"
	"market-finder/metrics"
	"market-finder/repository"
)

// FilterCarriers returns the carriers offering sel.LOB in sel.StateCode,
// split by distribution channel in the order given. An incomplete Selection
// yields two empty groups.
func FilterCarriers(sel domain.Selection, carriers []domain.Carrier) domain.CarrierResults {
	res := domain.CarrierResults{
		Online:      []domain.Carrier{},
		OfflineOnly: []domain.Carrier{},
	}
	if !sel.Complete() {
		return res
	}

	for _, c := range carriers {
		if !c.ServesState(sel.StateCode) || !c.OffersLine(sel.LOB) {
			continue
		}
		switch {
		case c.HasTag(domain.TagOnline):
			res.Online = append(res.Online, c)
		case c.HasTag(domain.TagOffline):
			res.OfflineOnly = append(res.OfflineOnly, c)
		}
	}
	return res
}

// LookupService runs FilterCarriers against the reference data, caching the
// matching carrier IDs per canonical URL.
type LookupService struct {
	ref       repository.ReferenceRepository
	cache     repository.CacheRepository
	namespace string
	logger    zerolog.Logger
	metrics   *metrics.Metrics
}

// NewLookupService creates a LookupService. cache may be nil to disable
// caching; namespace distinguishes datasets sharing one cache.
func NewLookupService(
	ref repository.ReferenceRepository,
	cache repository.CacheRepository,
	namespace string,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *LookupService {
	return &LookupService{
		ref:       ref,
		cache:     cache,
		namespace: namespace,
		logger:    logging.Component(logger, "lookup"),
		metrics:   m,
	}
}

type cachedResults struct {
	Online      []string `json:"online"`
	OfflineOnly []string `json:"offlineOnly"`
}

// Lookup returns the carriers matching sel. Cache failures are logged and
// never change the outcome.
func (s *LookupService) Lookup(ctx context.Context, sel domain.Selection) domain.CarrierResults {
	stage := domain.StageOf(sel)
	if !sel.Complete() {
		s.metrics.ObserveLookup(stage.String(), 0, false)
		return FilterCarriers(sel, nil)
	}

	carriers := s.ref.ListCarriers()
	// a lob outside the catalog is taken verbatim from the URL and can never
	// match, so it stays out of the cache
	if !s.inCatalog(sel) {
		s.metrics.ObserveLookup(stage.String(), 0, true)
		return FilterCarriers(sel, carriers)
	}
	key := s.cacheKey(sel)

	if res, ok := s.fromCache(ctx, key, carriers); ok {
		s.metrics.ObserveLookup(stage.String(), res.Total(), true)
		return res
	}

	res := FilterCarriers(sel, carriers)
	s.store(ctx, key, res)
	s.metrics.ObserveLookup(stage.String(), res.Total(), true)

	s.logger.Debug().
		Str("state", sel.StateCode).
		Str("type", string(sel.BusinessType)).
		Str("lob", sel.LOB).
		Int("online", len(res.Online)).
		Int("offline_only", len(res.OfflineOnly)).
		Msg("carriers filtered")
	return res
}

func (s *LookupService) inCatalog(sel domain.Selection) bool {
	return slices.Contains(s.ref.LOBsFor(sel.BusinessType), sel.LOB)
}

func (s *LookupService) cacheKey(sel domain.Selection) string {
	return lookupCachePrefix + s.namespace + ":" + SelectionURL(sel)
}

func (s *LookupService) fromCache(
	ctx context.Context,
	key string,
	carriers []domain.Carrier,
) (domain.CarrierResults, bool) {
	if s.cache == nil {
		return domain.CarrierResults{}, false
	}

	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.metrics.ObserveCache("error")
		s.logger.Warn().Err(err).Str("key", key).Msg("lookup cache read failed")
		return domain.CarrierResults{}, false
	}
	if !ok {
		s.metrics.ObserveCache("miss")
		return domain.CarrierResults{}, false
	}

	var ids cachedResults
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.metrics.ObserveCache("error")
		s.logger.Warn().Err(err).Str("key", key).Msg("lookup cache entry unreadable")
		return domain.CarrierResults{}, false
	}

	byID := make(map[string]domain.Carrier, len(carriers))
	for _, c := range carriers {
		byID[c.ID] = c
	}
	online, ok := resolveIDs(ids.Online, byID)
	if !ok {
		s.metrics.ObserveCache("stale")
		return domain.CarrierResults{}, false
	}
	offline, ok := resolveIDs(ids.OfflineOnly, byID)
	if !ok {
		s.metrics.ObserveCache("stale")
		return domain.CarrierResults{}, false
	}

	s.metrics.ObserveCache("hit")
	return domain.CarrierResults{Online: online, OfflineOnly: offline}, true
}

func (s *LookupService) store(ctx context.Context, key string, res domain.CarrierResults) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(cachedResults{
		Online:      carrierIDs(res.Online),
		OfflineOnly: carrierIDs(res.OfflineOnly),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("encode lookup cache entry")
		return
	}
	// not critical if it fails
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		s.metrics.ObserveCache("error")
		s.logger.Warn().Err(err).Str("key", key).Msg("lookup cache write failed")
	}
}

func carrierIDs(carriers []domain.Carrier) []string {
	ids := make([]string, 0, len(carriers))
	for _, c := range carriers {
		ids = append(ids, c.ID)
	}
	return ids
}

func resolveIDs(ids []string, byID map[string]domain.Carrier) ([]domain.Carrier, bool) {
	out := make([]domain.Carrier, 0, len(ids))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok {
			return nil, false
		}
		out = append(out, c)
	}
	return out, true
}
