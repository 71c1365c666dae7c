package restapi

import (
	"fmt"
	"net/url"
	"strings"

	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
	"loopwalk.dev/internal/utils"
)

// routeForm carries the raw inputs of a route computation, either from the
// query string or from a JSON request body.
type routeForm struct {
	From         string `json:"from"`
	To           string `json:"to"`
	Speed        string `json:"speed"`
	Direction    string `json:"direction"`
	Start        string `json:"start"`
	RestInterval *int   `json:"restInterval"`
	RestMinutes  *int   `json:"restMinutes"`
}

func routeFormFromQuery(query url.Values) (routeForm, map[string][]string) {
	form := routeForm{
		From:      query.Get("from"),
		To:        query.Get("to"),
		Speed:     query.Get("speed"),
		Direction: query.Get("direction"),
		Start:     query.Get("start"),
	}

	fieldErrors := make(map[string][]string)
	if query.Get("restInterval") != "" {
		var v int
		v, fieldErrors = utils.ParseIntParam(query, "restInterval", 0, fieldErrors)
		form.RestInterval = &v
	}
	if query.Get("restMinutes") != "" {
		var v int
		v, fieldErrors = utils.ParseIntParam(query, "restMinutes", 0, fieldErrors)
		form.RestMinutes = &v
	}
	return form, fieldErrors
}

// buildRouteRequest validates form and fills in configured defaults. It
// returns the request and the walking speed preset used.
func (api *RestAPI) buildRouteRequest(form routeForm, fieldErrors map[string][]string) (route.Request, stations.WalkingSpeed, map[string][]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string][]string)
	}

	form.From = strings.TrimSpace(form.From)
	form.To = strings.TrimSpace(form.To)
	for field, name := range map[string]string{"from": form.From, "to": form.To} {
		if err := utils.ValidateStationName(name); err != nil {
			fieldErrors[field] = append(fieldErrors[field], err.Error())
		}
	}

	speed, err := stations.ResolveSpeed(form.Speed)
	if err != nil {
		fieldErrors["speed"] = append(fieldErrors["speed"], err.Error())
	}

	direction, err := stations.ParseDirection(form.Direction)
	if err != nil {
		fieldErrors["direction"] = append(fieldErrors["direction"], err.Error())
	}

	start, err := utils.ParseStartTime(form.Start, api.Location, api.Now())
	if err != nil {
		fieldErrors["start"] = append(fieldErrors["start"], err.Error())
	}

	interval, minutes := api.Config.RestInterval, api.Config.RestMinutes
	if form.RestInterval != nil {
		interval = *form.RestInterval
	}
	if form.RestMinutes != nil {
		minutes = *form.RestMinutes
	}
	for field, errs := range utils.ValidateRestParams(interval, minutes) {
		fieldErrors[field] = append(fieldErrors[field], errs...)
	}

	return route.Request{
		From:         form.From,
		To:           form.To,
		SpeedKmh:     speed.SpeedKmh,
		StartTime:    start,
		Direction:    direction,
		RestInterval: interval,
		RestMinutes:  minutes,
	}, speed, fieldErrors
}

func routeCacheKey(req route.Request) string {
	return fmt.Sprintf("%s|%s|%s|%g|%d|%s|%d|%d",
		req.From, req.To, req.Direction, req.SpeedKmh,
		req.StartTime.UnixMilli(), req.StartTime.Location(),
		req.RestInterval, req.RestMinutes)
}

// computeRoute runs the calculator behind the LRU route cache. Failures are not cached.
func (api *RestAPI) computeRoute(req route.Request) (route.Result, error) {
	key := routeCacheKey(req)
	if cached, err := api.routeCache.Get(key); err == nil {
		if result, ok := cached.(route.Result); ok {
			return result, nil
		}
	}

	result, err := api.Calculator.Compute(req)
	if err != nil {
		return route.Result{}, err
	}

	if err := api.routeCache.Set(key, result); err != nil {
		api.Logger.Warn("failed to cache route", "error", err)
	}
	return result, nil
}
