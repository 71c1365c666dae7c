package restapi

import (
	"net/http"

	"loopwalk.dev/internal/models"
	"loopwalk.dev/internal/stations"
)

func (api *RestAPI) stationsHandler(w http.ResponseWriter, r *http.Request) {
	data := models.NewStationsData(api.Stations)
	api.sendResponse(w, r, models.NewEntryResponse(data, models.NewEmptyReferences()))
}

func (api *RestAPI) speedsHandler(w http.ResponseWriter, r *http.Request) {
	api.sendResponse(w, r, models.NewListResponse(stations.WalkingSpeeds(), models.NewEmptyReferences()))
}

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := api.Now().In(api.Location)
	api.sendResponse(w, r, models.NewOKResponse(models.NewCurrentTimeData(now)))
}
