package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// SetRoutes registers the JSON API on router. Plan mutations require an API
// key when keys are configured.
func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/api/stations", api.stationsHandler)
	router.HandlerFunc(http.MethodGet, "/api/speeds", api.speedsHandler)
	router.HandlerFunc(http.MethodGet, "/api/current-time", api.currentTimeHandler)
	router.HandlerFunc(http.MethodGet, "/api/route", api.routeHandler)
	router.HandlerFunc(http.MethodGet, "/api/map.svg", api.mapHandler)

	router.HandlerFunc(http.MethodGet, "/api/plans", api.listPlansHandler)
	router.Handler(http.MethodPost, "/api/plans", validateAPIKey(api, api.createPlanHandler))
	router.Handler(http.MethodDelete, "/api/plans", validateAPIKey(api, api.deleteAllPlansHandler))
	router.HandlerFunc(http.MethodGet, "/api/plans/:id", api.planHandler)
	router.Handler(http.MethodDelete, "/api/plans/:id", validateAPIKey(api, api.deletePlanHandler))
}

// Handler returns the API wrapped in the rate limiter and response compression.
// extraRoutes register further pages, such as the browser UI, on the same router.
func (api *RestAPI) Handler(extraRoutes ...func(*httprouter.Router)) http.Handler {
	router := httprouter.New()
	api.SetRoutes(router)
	for _, register := range extraRoutes {
		register(router)
	}
	router.NotFound = http.HandlerFunc(api.sendNotFound)
	return api.rateLimiter.Handler(CompressionMiddleware(router))
}
