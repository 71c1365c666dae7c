package restapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"loopwalk.dev/internal/logging"
	"loopwalk.dev/internal/models"
	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/route"
)

type errorResponse struct {
	Code        int    `json:"code"`
	CurrentTime int64  `json:"currentTime"`
	Text        string `json:"text"`
	Version     int    `json:"version"`
}

func (api *RestAPI) writeErrorResponse(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(errorResponse{
		Code:        status,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        text,
		Version:     1,
	})
	if err != nil {
		api.Logger.Error("failed to encode error response", "error", err, "status", status)
	}
}

// invalidAPIKeyResponse sends a 401 Unauthorized response
func (api *RestAPI) invalidAPIKeyResponse(w http.ResponseWriter, r *http.Request) {
	api.writeErrorResponse(w, http.StatusUnauthorized, "permission denied")
}

func (api *RestAPI) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logging.LogError(logging.FromContext(r.Context()), "request failed", err)
	api.writeErrorResponse(w, http.StatusInternalServerError, "internal server error")
}

func (api *RestAPI) badRequestResponse(w http.ResponseWriter, r *http.Request, text string) {
	api.writeErrorResponse(w, http.StatusBadRequest, text)
}

// validationErrorResponse sends a 400 Bad Request response with field-specific validation errors
func (api *RestAPI) validationErrorResponse(w http.ResponseWriter, r *http.Request, fieldErrors map[string][]string) {
	response := struct {
		FieldErrors map[string][]string `json:"fieldErrors"`
	}{
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.Logger.Error("failed to encode validation error response", "error", err)
	}
}

// routeErrorResponse maps calculator and plan store failures onto HTTP errors.
func (api *RestAPI) routeErrorResponse(w http.ResponseWriter, r *http.Request, form routeForm, err error) {
	var (
		stationErr    *route.InvalidStationError
		parameterErr  *route.InvalidParameterError
		validationErr validator.ValidationErrors
	)

	switch {
	case errors.As(err, &stationErr):
		field := "to"
		if stationErr.Name == strings.TrimSpace(form.From) {
			field = "from"
		}
		api.validationErrorResponse(w, r, map[string][]string{field: {stationErr.Error()}})
	case errors.As(err, &parameterErr):
		api.validationErrorResponse(w, r, map[string][]string{parameterErr.Field: {parameterErr.Error()}})
	case errors.As(err, &validationErr):
		fieldErrors := make(map[string][]string)
		for _, fe := range validationErr {
			fieldErrors[fe.Field()] = append(fieldErrors[fe.Field()], fe.Tag())
		}
		api.validationErrorResponse(w, r, fieldErrors)
	case errors.Is(err, plans.ErrNotFound):
		api.sendNotFound(w, r)
	default:
		api.serverErrorResponse(w, r, err)
	}
}
