package route

import (
	"math"
	"time"

	"loopwalk.dev/internal/stations"
)

const (
	DefaultRestInterval = 5
	DefaultRestMinutes  = 10
)

// Cycle is the station table the calculator walks over. *stations.Registry
// satisfies it.
type Cycle interface {
	Len() int
	Index(name string) (int, bool)
	Name(i int) string
	Next(i int, d stations.Direction) int
	Distance(i int, d stations.Direction) float64
}

// Request holds every input of a route computation.
type Request struct {
	From      string
	To        string
	SpeedKmh  float64
	StartTime time.Time
	Direction stations.Direction
	// RestInterval inserts a rest after every n-th walked segment. Zero disables rests.
	RestInterval int
	RestMinutes  int
}

type Step struct {
	StationName       string     `json:"stationName"`
	ArrivalTime       time.Time  `json:"arrivalTime"`
	DepartureTime     *time.Time `json:"departureTime,omitempty"`
	IsRestStop        bool       `json:"isRestStop"`
	DistanceFromStart float64    `json:"distanceFromStart"`
}

// LeaveTime is the departure time for rest stops and the arrival time otherwise.
func (s Step) LeaveTime() time.Time {
	if s.DepartureTime != nil {
		return *s.DepartureTime
	}
	return s.ArrivalTime
}

type Result struct {
	Steps         []Step  `json:"steps"`
	TotalDistance float64 `json:"totalDistance"`
}

// Elapsed is the time between leaving the first station and reaching the last.
func (r Result) Elapsed() time.Duration {
	if len(r.Steps) == 0 {
		return 0
	}
	return r.Steps[len(r.Steps)-1].ArrivalTime.Sub(r.Steps[0].ArrivalTime)
}

// RestStops lists the names of the stations where the walker pauses.
func (r Result) RestStops() []string {
	var names []string
	for _, s := range r.Steps {
		if s.IsRestStop {
			names = append(names, s.StationName)
		}
	}
	return names
}

// StationNames lists every visited station in walking order.
func (r Result) StationNames() []string {
	names := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		names[i] = s.StationName
	}
	return names
}

// Calculator computes walking itineraries over a fixed cycle.
type Calculator struct {
	cycle Cycle
}

func NewCalculator(cycle Cycle) *Calculator {
	return &Calculator{cycle: cycle}
}

// Compute walks from req.From to req.To in req.Direction. Walking from a
// station to itself yields a single step with zero distance.
func (c *Calculator) Compute(req Request) (Result, error) {
	if err := validateRequest(req); err != nil {
		return Result{}, err
	}

	direction := req.Direction
	if direction == "" {
		direction = stations.Clockwise
	}

	fromIdx, ok := c.cycle.Index(req.From)
	if !ok {
		return Result{}, &InvalidStationError{Name: req.From}
	}
	toIdx, ok := c.cycle.Index(req.To)
	if !ok {
		return Result{}, &InvalidStationError{Name: req.To}
	}

	n := c.cycle.Len()
	clock := req.StartTime
	total := 0.0
	current := fromIdx
	steps := []Step{{StationName: c.cycle.Name(current), ArrivalTime: clock}}

	for walked := 0; current != toIdx; {
		if walked > n {
			return Result{}, &RouteComputationError{From: req.From, To: req.To, Reason: "destination not reached within one lap"}
		}

		distance := c.cycle.Distance(current, direction)
		if !(distance > 0) || math.IsInf(distance, 0) {
			return Result{}, &RouteComputationError{From: req.From, To: req.To, Reason: "non-positive segment distance"}
		}

		current = c.cycle.Next(current, direction)
		walked++
		clock = clock.Add(walkDuration(distance, req.SpeedKmh))
		total += distance

		step := Step{
			StationName:       c.cycle.Name(current),
			ArrivalTime:       clock,
			DistanceFromStart: total,
		}
		if req.RestInterval > 0 && walked%req.RestInterval == 0 && current != toIdx {
			departure := clock.Add(time.Duration(req.RestMinutes) * time.Minute)
			step.DepartureTime = &departure
			step.IsRestStop = true
			clock = departure
		}
		steps = append(steps, step)
	}

	return Result{Steps: steps, TotalDistance: total}, nil
}

func validateRequest(req Request) error {
	if math.IsNaN(req.SpeedKmh) || math.IsInf(req.SpeedKmh, 0) || req.SpeedKmh <= 0 {
		return &InvalidParameterError{Field: "speed", Reason: "must be a positive number of km/h"}
	}
	if req.RestInterval < 0 {
		return &InvalidParameterError{Field: "restInterval", Reason: "must not be negative"}
	}
	if req.RestMinutes < 0 {
		return &InvalidParameterError{Field: "restMinutes", Reason: "must not be negative"}
	}
	switch req.Direction {
	case "", stations.Clockwise, stations.Counterclockwise:
	default:
		return &InvalidParameterError{Field: "direction", Reason: "must be clockwise or counterclockwise"}
	}
	return nil
}

// walkDuration is rounded to the millisecond.
func walkDuration(distanceKm, speedKmh float64) time.Duration {
	ms := math.Round(distanceKm / speedKmh * float64(time.Hour/time.Millisecond))
	return time.Duration(ms) * time.Millisecond
}
