package stations

import (
	"errors"
	"fmt"
	"strings"
)

// Station is one stop on the loop. DistanceToNext is the walking distance in
// kilometres to the following station in clockwise order.
type Station struct {
	Name           string   `json:"name"`
	DistanceToNext float64  `json:"distanceToNext"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
}

// Direction of travel around the loop.
type Direction string

const (
	Clockwise        Direction = "clockwise"
	Counterclockwise Direction = "counterclockwise"
)

// ParseDirection accepts clockwise/counterclockwise and the forward/backward aliases.
// An empty string defaults to Clockwise.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clockwise", "forward", "cw":
		return Clockwise, nil
	case "counterclockwise", "backward", "ccw":
		return Counterclockwise, nil
	}
	return "", fmt.Errorf("unknown direction %q", s)
}

// Registry is an immutable, ordered station cycle.
type Registry struct {
	stations []Station
	index    map[string]int
}

// NewRegistry validates and copies the given stations into a Registry.
func NewRegistry(stations []Station) (*Registry, error) {
	if len(stations) < 2 {
		return nil, errors.New("a station cycle needs at least two stations")
	}

	registry := &Registry{
		stations: make([]Station, len(stations)),
		index:    make(map[string]int, len(stations)),
	}
	for i, s := range stations {
		if s.Name == "" {
			return nil, fmt.Errorf("station %d has no name", i)
		}
		if s.DistanceToNext <= 0 {
			return nil, fmt.Errorf("station %q: distance to next must be positive, got %v", s.Name, s.DistanceToNext)
		}
		if (s.Lat == nil) != (s.Lon == nil) {
			return nil, fmt.Errorf("station %q: lat and lon must be set together", s.Name)
		}
		if _, dup := registry.index[s.Name]; dup {
			return nil, fmt.Errorf("duplicate station name %q", s.Name)
		}
		registry.index[s.Name] = i
		registry.stations[i] = s
	}

	return registry, nil
}

func (r *Registry) Len() int {
	return len(r.stations)
}

func (r *Registry) Station(i int) Station {
	return r.stations[i]
}

func (r *Registry) Name(i int) string {
	return r.stations[i].Name
}

// Index returns the position of the named station in the cycle.
func (r *Registry) Index(name string) (int, bool) {
	i, ok := r.index[name]
	return i, ok
}

// Stations returns a copy of the cycle in clockwise order.
func (r *Registry) Stations() []Station {
	out := make([]Station, len(r.stations))
	copy(out, r.stations)
	return out
}

func (r *Registry) Names() []string {
	names := make([]string, len(r.stations))
	for i, s := range r.stations {
		names[i] = s.Name
	}
	return names
}

// Next returns the index reached by one step from i in direction d.
func (r *Registry) Next(i int, d Direction) int {
	n := len(r.stations)
	if d == Counterclockwise {
		return (i - 1 + n) % n
	}
	return (i + 1) % n
}

// Distance returns the length of the edge walked when stepping from i in direction d.
func (r *Registry) Distance(i int, d Direction) float64 {
	if d == Counterclockwise {
		return r.stations[r.Next(i, d)].DistanceToNext
	}
	return r.stations[i].DistanceToNext
}

// HasCoordinates reports whether every station carries a position.
func (r *Registry) HasCoordinates() bool {
	for _, s := range r.stations {
		if s.Lat == nil {
			return false
		}
	}
	return true
}

// DistanceRange returns the shortest and longest edge in the cycle.
func (r *Registry) DistanceRange() (min, max float64) {
	min, max = r.stations[0].DistanceToNext, r.stations[0].DistanceToNext
	for _, s := range r.stations[1:] {
		if s.DistanceToNext < min {
			min = s.DistanceToNext
		}
		if s.DistanceToNext > max {
			max = s.DistanceToNext
		}
	}
	return min, max
}

// LoopLength is the sum of all edges.
func (r *Registry) LoopLength() float64 {
	total := 0.0
	for _, s := range r.stations {
		total += s.DistanceToNext
	}
	return total
}
