package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"github.com/cardoza1991/Room-Reservation-App/config"
	"github.com/cardoza1991/Room-Reservation-App/internal/monitor"
	"github.com/cardoza1991/Room-Reservation-App/internal/mw"
	"github.com/cardoza1991/Room-Reservation-App/internal/roomcache"
	"github.com/cardoza1991/Room-Reservation-App/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(s store.Store, rc *roomcache.Cache, mon *monitor.Service, webpushOptions *webpush.Options, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimit(cfg)

	ttl := time.Duration(cfg.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	cacheStore := gocache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	db := s.DB()
	handler := NewHandler(s, rc, mon, webpushOptions, cacheStore)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/buildings", caching, GetBuildings(db))
		api.POST("/buildings", handler.PostBuilding)

		api.GET("/buildings/:building_id/rooms", handler.GetRooms)
		api.POST("/buildings/:building_id/rooms", handler.PostRoom)
		api.DELETE("/rooms", handler.DeleteRooms)

		api.GET("/reservations", handler.GetReservations)
		api.POST("/reservations", handler.PostReservation)
		api.DELETE("/reservations", handler.DeleteReservation)

		api.GET("/subscriptions", handler.GetSubscription)
		api.PUT("/subscriptions", handler.PutSubscription)
		api.DELETE("/subscriptions", handler.DeleteSubscription)
		api.GET("/vapid_public_key", handler.GetVAPIDPublicKey)
	}

	return r
}
