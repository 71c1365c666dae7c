package restapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"loopwalk.dev/internal/logging"
	"loopwalk.dev/internal/models"
	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/utils"
)

const maxPlanBodyBytes = 64 << 10

func (api *RestAPI) listPlansHandler(w http.ResponseWriter, r *http.Request) {
	stored := api.Plans.List(r.Context())

	names := make([]string, 0, 2*len(stored))
	for _, p := range stored {
		names = append(names, p.FromStation, p.ToStation)
	}

	response := models.NewListResponse(models.NewPlanSummaries(stored), models.NewStationReferences(api.Stations, names))
	api.sendResponse(w, r, response)
}

func (api *RestAPI) planHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.planIDFromRequest(w, r)
	if !ok {
		return
	}

	plan, err := api.Plans.Get(r.Context(), id)
	if err != nil {
		api.routeErrorResponse(w, r, routeForm{}, err)
		return
	}

	entry := models.NewPlanEntry(api.Stations, plan, api.Location)
	references := models.NewStationReferences(api.Stations, plan.Result().StationNames())
	api.sendResponse(w, r, models.NewEntryResponse(entry, references))
}

// createPlanHandler computes the route described by the JSON body and stores it.
func (api *RestAPI) createPlanHandler(w http.ResponseWriter, r *http.Request) {
	var form routeForm
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxPlanBodyBytes))
	if err := decoder.Decode(&form); err != nil {
		api.badRequestResponse(w, r, "invalid JSON body")
		return
	}

	req, speed, fieldErrors := api.buildRouteRequest(form, nil)
	if len(fieldErrors) > 0 {
		api.validationErrorResponse(w, r, fieldErrors)
		return
	}

	result, err := api.computeRoute(req)
	if err != nil {
		api.routeErrorResponse(w, r, form, err)
		return
	}

	saved, err := api.Plans.Save(r.Context(), plans.NewDraft(req, speed.Name, result))
	if err != nil {
		api.routeErrorResponse(w, r, form, err)
		return
	}

	entry := models.NewPlanEntry(api.Stations, saved, api.Location)
	response := models.NewEntryResponse(entry, models.NewStationReferences(api.Stations, result.StationNames()))
	response.Code = http.StatusCreated
	response.Text = "Created"
	api.sendResponseWithStatus(w, r, http.StatusCreated, response)
}

func (api *RestAPI) deletePlanHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := api.planIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := api.Plans.DeleteOne(r.Context(), id); err != nil {
		if !errors.Is(err, plans.ErrNotFound) {
			logging.LogError(api.Logger, "failed to delete plan", err)
		}
		api.routeErrorResponse(w, r, routeForm{}, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(map[string]string{"id": id}, models.NewEmptyReferences()))
}

func (api *RestAPI) deleteAllPlansHandler(w http.ResponseWriter, r *http.Request) {
	removed := len(api.Plans.List(r.Context()))

	if err := api.Plans.DeleteAll(r.Context()); err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	api.sendResponse(w, r, models.NewEntryResponse(map[string]int{"deleted": removed}, models.NewEmptyReferences()))
}

func (api *RestAPI) planIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := utils.ExtractIDFromParams(r, "id")
	if err := utils.ValidateID(id); err != nil {
		api.validationErrorResponse(w, r, map[string][]string{"id": {err.Error()}})
		return "", false
	}
	return id, true
}
