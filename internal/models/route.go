package models

import (
	"time"

	"loopwalk.dev/internal/render"
	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
)

// RouteEntry is a computed route together with the inputs that produced it.
type RouteEntry struct {
	FromStation    string               `json:"fromStation"`
	ToStation      string               `json:"toStation"`
	Direction      stations.Direction   `json:"direction"`
	WalkingSpeed   string               `json:"walkingSpeed"`
	SpeedKmh       float64              `json:"speedKmh"`
	StartTime      time.Time            `json:"startTime"`
	RestInterval   int                  `json:"restInterval"`
	RestMinutes    int                  `json:"restMinutes"`
	Steps          []route.Step         `json:"steps"`
	TotalDistance  float64              `json:"totalDistance"`
	ElapsedMinutes float64              `json:"elapsedMinutes"`
	RestStops      []string             `json:"restStops"`
	Timeline       []render.TimelineRow `json:"timeline"`
	Polyline       string               `json:"polyline,omitempty"`
}

// NewRouteEntry builds the view of result. Clock times in the timeline use loc.
func NewRouteEntry(reg *stations.Registry, req route.Request, speedLabel string, result route.Result, loc *time.Location) RouteEntry {
	direction := req.Direction
	if direction == "" {
		direction = stations.Clockwise
	}

	return RouteEntry{
		FromStation:    req.From,
		ToStation:      req.To,
		Direction:      direction,
		WalkingSpeed:   speedLabel,
		SpeedKmh:       req.SpeedKmh,
		StartTime:      req.StartTime,
		RestInterval:   req.RestInterval,
		RestMinutes:    req.RestMinutes,
		Steps:          result.Steps,
		TotalDistance:  result.TotalDistance,
		ElapsedMinutes: result.Elapsed().Minutes(),
		RestStops:      nonNil(result.RestStops()),
		Timeline:       render.Timeline(result, loc),
		Polyline:       render.EncodePolyline(reg, result),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
