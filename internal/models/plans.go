package models

import (
	"time"

	"loopwalk.dev/internal/plans"
	"loopwalk.dev/internal/render"
	"loopwalk.dev/internal/stations"
)

// PlanSummary is the list view of a stored plan.
type PlanSummary struct {
	ID             string             `json:"id"`
	CreatedAt      time.Time          `json:"createdAt"`
	FromStation    string             `json:"fromStation"`
	ToStation      string             `json:"toStation"`
	Direction      stations.Direction `json:"direction"`
	WalkingSpeed   string             `json:"walkingSpeed"`
	StartTime      time.Time          `json:"startTime"`
	TotalDistance  float64            `json:"totalDistance"`
	StepCount      int                `json:"stepCount"`
	RestStopCount  int                `json:"restStopCount"`
	ElapsedMinutes float64            `json:"elapsedMinutes"`
}

func NewPlanSummaries(list []plans.Plan) []PlanSummary {
	out := make([]PlanSummary, len(list))
	for i, p := range list {
		result := p.Result()
		out[i] = PlanSummary{
			ID:             p.ID,
			CreatedAt:      p.CreatedAt,
			FromStation:    p.FromStation,
			ToStation:      p.ToStation,
			Direction:      p.Direction,
			WalkingSpeed:   p.WalkingSpeed,
			StartTime:      p.StartTime,
			TotalDistance:  p.TotalDistance,
			StepCount:      len(p.Steps),
			RestStopCount:  len(result.RestStops()),
			ElapsedMinutes: result.Elapsed().Minutes(),
		}
	}
	return out
}

// PlanEntry is a stored plan with its rendered timeline.
type PlanEntry struct {
	plans.Plan
	Timeline []render.TimelineRow `json:"timeline"`
	Polyline string               `json:"polyline,omitempty"`
}

func NewPlanEntry(reg *stations.Registry, p plans.Plan, loc *time.Location) PlanEntry {
	result := p.Result()
	return PlanEntry{
		Plan:     p,
		Timeline: render.Timeline(result, loc),
		Polyline: render.EncodePolyline(reg, result),
	}
}
