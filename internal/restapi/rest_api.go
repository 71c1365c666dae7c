package restapi

import (
	"time"

	"github.com/bluele/gcache"
	"loopwalk.dev/internal/app"
)

const (
	routeCacheSize = 1024
	routeCacheTTL  = time.Hour
)

type RestAPI struct {
	*app.Application
	rateLimiter *RateLimitMiddleware
	routeCache  gcache.Cache
}

// NewRestAPI creates a new RestAPI instance with initialized rate limiter
func NewRestAPI(app *app.Application) *RestAPI {
	isValidKey := func(key string) bool { return !app.IsInvalidAPIKey(key) }
	return &RestAPI{
		Application: app,
		rateLimiter: NewRateLimitMiddleware(app.Config.RateLimit, time.Second, isValidKey),
		routeCache: gcache.New(routeCacheSize).
			LRU().
			Expiration(routeCacheTTL).
			Build(),
	}
}

// Shutdown releases the rate limiter's background cleanup.
func (api *RestAPI) Shutdown() {
	api.rateLimiter.Stop()
}
