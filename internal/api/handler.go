package api

import (
	"context"

	"github.com/SherClockHolmes/webpush-go"
	gocache "github.com/patrickmn/go-cache"

	"github.com/cardoza1991/Room-Reservation-App/internal/monitor"
	"github.com/cardoza1991/Room-Reservation-App/internal/roomcache"
	"github.com/cardoza1991/Room-Reservation-App/internal/store"
)

// Handler holds shared dependencies for API handlers. It plays the part of
// the owning controller: handlers build commands, the handler applies them
// and reloads the room cache.
type Handler struct {
	store     store.Store
	cache     *roomcache.Cache
	monitor   *monitor.Service
	webpush   *webpush.Options
	respCache *gocache.Cache
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, rc *roomcache.Cache, mon *monitor.Service, webpushOptions *webpush.Options, respCache *gocache.Cache) *Handler {
	return &Handler{
		store:     s,
		cache:     rc,
		monitor:   mon,
		webpush:   webpushOptions,
		respCache: respCache,
	}
}

// reloadCache rebuilds the room cache for the current selection. Every
// mutation ends here; the cache is never patched in place.
func (h *Handler) reloadCache(ctx context.Context) error {
	return h.cache.Reload(ctx, h.store, h.cache.BuildingID())
}

// settleOccupancy runs one occupancy pass so a freshly loaded cache shows
// real statuses instead of the vacant default.
func (h *Handler) settleOccupancy(ctx context.Context) {
	if h.monitor != nil {
		h.monitor.CheckOnce(ctx)
	}
}

// flushResponseCache drops cached GET responses after a mutation.
func (h *Handler) flushResponseCache() {
	if h.respCache != nil {
		h.respCache.Flush()
	}
}
