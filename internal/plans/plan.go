package plans

import (
	"time"

	"github.com/go-playground/validator/v10"
	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
)

// Plan is a saved snapshot of one computed route and the inputs that produced it.
type Plan struct {
	ID            string             `json:"id" validate:"required"`
	CreatedAt     time.Time          `json:"createdAt" validate:"required"`
	FromStation   string             `json:"fromStation" validate:"required"`
	ToStation     string             `json:"toStation" validate:"required"`
	Direction     stations.Direction `json:"direction" validate:"oneof=clockwise counterclockwise"`
	WalkingSpeed  string             `json:"walkingSpeed" validate:"required"`
	StartTime     time.Time          `json:"startTime" validate:"required"`
	RestMinutes   int                `json:"restMinutes" validate:"gte=0"`
	Steps         []route.Step       `json:"steps" validate:"required,min=1,dive"`
	TotalDistance float64            `json:"totalDistance" validate:"gte=0"`
}

// NewDraft builds an unsaved plan from a computation and its request.
// speedLabel is the walking speed preset name shown back to the user.
func NewDraft(req route.Request, speedLabel string, result route.Result) Plan {
	direction := req.Direction
	if direction == "" {
		direction = stations.Clockwise
	}
	return Plan{
		FromStation:   req.From,
		ToStation:     req.To,
		Direction:     direction,
		WalkingSpeed:  speedLabel,
		StartTime:     req.StartTime,
		RestMinutes:   req.RestMinutes,
		Steps:         result.Steps,
		TotalDistance: result.TotalDistance,
	}
}

// Result returns the route part of the plan.
func (p Plan) Result() route.Result {
	return route.Result{Steps: p.Steps, TotalDistance: p.TotalDistance}
}

// inUTC returns a deep copy with every timestamp in UTC and without a
// monotonic clock reading, so that JSON round trips are exact.
func (p Plan) inUTC() Plan {
	out := p
	out.CreatedAt = p.CreatedAt.UTC()
	out.StartTime = p.StartTime.UTC()
	out.Steps = make([]route.Step, len(p.Steps))
	for i, s := range p.Steps {
		s.ArrivalTime = s.ArrivalTime.UTC()
		if s.DepartureTime != nil {
			departure := s.DepartureTime.UTC()
			s.DepartureTime = &departure
		}
		out.Steps[i] = s
	}
	return out
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(planStructLevel, Plan{})
	v.RegisterStructValidation(stepStructLevel, route.Step{})
	return v
}

func stepStructLevel(sl validator.StructLevel) {
	step := sl.Current().Interface().(route.Step)
	if step.StationName == "" {
		sl.ReportError(step.StationName, "stationName", "StationName", "required", "")
	}
	if step.ArrivalTime.IsZero() {
		sl.ReportError(step.ArrivalTime, "arrivalTime", "ArrivalTime", "required", "")
	}
	if step.IsRestStop && step.DepartureTime == nil {
		sl.ReportError(step.DepartureTime, "departureTime", "DepartureTime", "required_if_rest", "")
	}
}

// planStructLevel enforces the endpoint and monotonicity invariants of a plan.
func planStructLevel(sl validator.StructLevel) {
	plan := sl.Current().Interface().(Plan)
	if len(plan.Steps) == 0 {
		return
	}

	if plan.Steps[0].StationName != plan.FromStation {
		sl.ReportError(plan.Steps, "steps", "Steps", "starts_at_from", plan.FromStation)
	}
	if plan.Steps[len(plan.Steps)-1].StationName != plan.ToStation {
		sl.ReportError(plan.Steps, "steps", "Steps", "ends_at_to", plan.ToStation)
	}

	for i := 1; i < len(plan.Steps); i++ {
		prev, cur := plan.Steps[i-1], plan.Steps[i]
		if cur.ArrivalTime.Before(prev.LeaveTime()) || cur.DistanceFromStart < prev.DistanceFromStart {
			sl.ReportError(plan.Steps, "steps", "Steps", "monotonic", "")
			return
		}
	}
}
