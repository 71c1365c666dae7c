package render

import (
	"math"
	"time"

	"loopwalk.dev/internal/route"
)

const clockLayout = "15:04"

// TimelineRow is one station of a vertical timeline. The segment fields
// describe the walk to the next row and are zero on the last one.
type TimelineRow struct {
	StationName       string  `json:"stationName"`
	Role              Role    `json:"role"`
	Arrival           string  `json:"arrival"`
	Departure         string  `json:"departure,omitempty"`
	RestMinutes       int     `json:"restMinutes,omitempty"`
	DistanceFromStart float64 `json:"distanceFromStart"`
	SegmentDistance   float64 `json:"segmentDistance"`
	SegmentIntensity  float64 `json:"segmentIntensity"`
}

// Timeline formats the steps of result as HH:MM rows in loc.
func Timeline(result route.Result, loc *time.Location) []TimelineRow {
	if loc == nil {
		loc = time.UTC
	}

	steps := result.Steps
	rows := make([]TimelineRow, len(steps))
	if len(steps) == 0 {
		return rows
	}

	lo, hi := math.Inf(1), 0.0
	for i := 0; i+1 < len(steps); i++ {
		d := steps[i+1].DistanceFromStart - steps[i].DistanceFromStart
		if d > 0 {
			lo = math.Min(lo, d)
			hi = math.Max(hi, d)
		}
	}

	last := len(steps) - 1
	for i, step := range steps {
		row := TimelineRow{
			StationName:       step.StationName,
			Role:              stepRole(i, last, step),
			Arrival:           step.ArrivalTime.In(loc).Format(clockLayout),
			DistanceFromStart: step.DistanceFromStart,
		}
		if step.IsRestStop && step.DepartureTime != nil {
			row.Departure = step.DepartureTime.In(loc).Format(clockLayout)
			row.RestMinutes = int(step.DepartureTime.Sub(step.ArrivalTime).Round(time.Minute) / time.Minute)
		}
		if i < last {
			row.SegmentDistance = round2(steps[i+1].DistanceFromStart - step.DistanceFromStart)
			if row.SegmentDistance > 0 {
				row.SegmentIntensity = 0.1 + 0.9*math.Pow(normalize(row.SegmentDistance, lo, hi), 1.5)
			}
		}
		rows[i] = row
	}
	return rows
}
