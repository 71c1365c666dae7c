package restapi

import (
	"bytes"
	"net/http"

	"loopwalk.dev/internal/models"
	"loopwalk.dev/internal/render"
	"loopwalk.dev/internal/route"
)

func (api *RestAPI) routeHandler(w http.ResponseWriter, r *http.Request) {
	form, fieldErrors := routeFormFromQuery(r.URL.Query())
	req, speed, fieldErrors := api.buildRouteRequest(form, fieldErrors)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result, err := api.computeRoute(req)
	if err != nil {
		api.routeErrorResponse(w, r, form, err)
		return
	}

	entry := models.NewRouteEntry(api.Stations, req, speed.Name, result, api.Location)
	references := models.NewStationReferences(api.Stations, result.StationNames())
	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}

// mapHandler draws the circle map, with the route marked when from and to are given.
func (api *RestAPI) mapHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var result *route.Result
	if query.Get("from") != "" || query.Get("to") != "" {
		form, fieldErrors := routeFormFromQuery(query)
		req, _, fieldErrors := api.buildRouteRequest(form, fieldErrors)
		if len(fieldErrors) > 0 {
			api.validationErrorResponse(w, r, fieldErrors)
			return
		}

		computed, err := api.computeRoute(req)
		if err != nil {
			api.routeErrorResponse(w, r, form, err)
			return
		}
		result = &computed
	}

	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, render.NewCircleMap(api.Stations, result)); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(buf.Bytes()); err != nil {
		api.Logger.Error("failed to write map", "error", err)
	}
}
