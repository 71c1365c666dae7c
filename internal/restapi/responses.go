package restapi

import (
	"encoding/json"
	"net/http"

	"loopwalk.dev/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	api.sendResponseWithStatus(w, r, http.StatusOK, response)
}

func (api *RestAPI) sendResponseWithStatus(w http.ResponseWriter, r *http.Request, status int, response models.ResponseModel) {
	body, err := json.Marshal(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	setJSONResponseType(&w)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		api.Logger.Error("failed to write response", "error", err)
	}
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := models.ResponseModel{
		Code:        http.StatusNotFound,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "resource not found",
		Version:     2,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		api.Logger.Error("failed to encode not found response", "error", err)
	}
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
