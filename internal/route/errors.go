package route

import "fmt"

// InvalidStationError reports a station name that is not part of the cycle.
type InvalidStationError struct {
	Name string
}

func (e *InvalidStationError) Error() string {
	return fmt.Sprintf("invalid station %q", e.Name)
}

// InvalidParameterError reports a request field outside its allowed range.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// RouteComputationError means the traversal broke an invariant of the cycle,
// e.g. the destination was never reached within one lap.
type RouteComputationError struct {
	From   string
	To     string
	Reason string
}

func (e *RouteComputationError) Error() string {
	return fmt.Sprintf("route computation error from %q to %q: %s", e.From, e.To, e.Reason)
}
