package render

import (
	"fmt"
	"math"
	"strings"

	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
)

const (
	MapSize    = 500
	mapRadius  = 180.0
	mapCenter  = 250.0
	labelGap   = 24.0
	labelRunes = 4
)

// Role is how a station takes part in a route.
type Role string

const (
	RoleIdle         Role = "idle"
	RoleStart        Role = "start"
	RoleEnd          Role = "end"
	RoleRest         Role = "rest"
	RoleIntermediate Role = "intermediate"
)

var roleColors = map[Role]struct{ fill, stroke string }{
	RoleIdle:         {"#ffffff", "#9ca3af"},
	RoleStart:        {"#3b82f6", "#3b82f6"},
	RoleEnd:          {"#ef4444", "#ef4444"},
	RoleRest:         {"#f97316", "#f97316"},
	RoleIntermediate: {"#15803d", "#15803d"},
}

type MapNode struct {
	Index  int     `json:"index"`
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	LabelX float64 `json:"labelX"`
	LabelY float64 `json:"labelY"`
	Anchor string  `json:"anchor"`
	Role   Role    `json:"role"`
}

func (n MapNode) Fill() string   { return roleColors[n.Role].fill }
func (n MapNode) Stroke() string { return roleColors[n.Role].stroke }

// MapSegment is the arc from station From to its clockwise successor.
type MapSegment struct {
	From     int     `json:"from"`
	To       int     `json:"to"`
	Path     string  `json:"path"`
	Distance float64 `json:"distance"`
	Opacity  float64 `json:"opacity"`
	OnRoute  bool    `json:"onRoute"`
}

// CircleMap places every station of a cycle on a circle, clockwise from the top.
type CircleMap struct {
	Size        int          `json:"size"`
	Nodes       []MapNode    `json:"nodes"`
	Segments    []MapSegment `json:"segments"`
	RoutePath   string       `json:"routePath,omitempty"`
	MinDistance float64      `json:"minDistance"`
	MaxDistance float64      `json:"maxDistance"`
}

// NewCircleMap lays out reg. A nil result draws the bare line.
func NewCircleMap(reg *stations.Registry, result *route.Result) CircleMap {
	n := reg.Len()
	minDistance, maxDistance := reg.DistanceRange()

	m := CircleMap{
		Size:        MapSize,
		Nodes:       make([]MapNode, n),
		Segments:    make([]MapSegment, n),
		MinDistance: minDistance,
		MaxDistance: maxDistance,
	}

	for i := 0; i < n; i++ {
		x, y := circlePoint(i, n, mapRadius)
		lx, ly := circlePoint(i, n, mapRadius+labelGap)
		m.Nodes[i] = MapNode{
			Index:  i,
			Name:   reg.Name(i),
			Label:  TruncateLabel(reg.Name(i)),
			X:      x,
			Y:      y,
			LabelX: lx,
			LabelY: ly,
			Anchor: labelAnchor(x),
			Role:   RoleIdle,
		}
	}

	for i := 0; i < n; i++ {
		next := reg.Next(i, stations.Clockwise)
		distance := reg.Distance(i, stations.Clockwise)
		m.Segments[i] = MapSegment{
			From:     i,
			To:       next,
			Path:     arcPath(m.Nodes[i], m.Nodes[next]),
			Distance: distance,
			Opacity:  0.2 + 0.8*normalize(distance, minDistance, maxDistance),
		}
	}

	if result != nil && len(result.Steps) > 0 {
		m.markRoute(reg, *result)
	}
	return m
}

func (m *CircleMap) markRoute(reg *stations.Registry, result route.Result) {
	last := len(result.Steps) - 1
	points := make([]string, 0, len(result.Steps))

	for i, step := range result.Steps {
		idx, ok := reg.Index(step.StationName)
		if !ok {
			continue
		}
		node := &m.Nodes[idx]
		cmd := "L"
		if len(points) == 0 {
			cmd = "M"
		}
		points = append(points, fmt.Sprintf("%s %.2f %.2f", cmd, node.X, node.Y))

		// Earlier roles win so the start keeps its colour on a same-station route.
		if node.Role == RoleIdle {
			node.Role = stepRole(i, last, step)
		}

		if i == 0 {
			continue
		}
		prevIdx, ok := reg.Index(result.Steps[i-1].StationName)
		if !ok {
			continue
		}
		if reg.Next(prevIdx, stations.Clockwise) == idx {
			m.Segments[prevIdx].OnRoute = true
		} else {
			m.Segments[idx].OnRoute = true
		}
	}

	if len(points) > 1 {
		m.RoutePath = strings.Join(points, " ")
	}
}

func stepRole(i, last int, step route.Step) Role {
	switch {
	case i == 0:
		return RoleStart
	case i == last:
		return RoleEnd
	case step.IsRestStop:
		return RoleRest
	default:
		return RoleIntermediate
	}
}

// TruncateLabel shortens names longer than four characters with an ellipsis.
func TruncateLabel(name string) string {
	runes := []rune(name)
	if len(runes) <= labelRunes {
		return name
	}
	return string(runes[:labelRunes]) + "…"
}

func circlePoint(i, n int, radius float64) (float64, float64) {
	angle := (float64(i)*360/float64(n) - 90) * math.Pi / 180
	return round2(mapCenter + radius*math.Cos(angle)), round2(mapCenter + radius*math.Sin(angle))
}

func labelAnchor(x float64) string {
	switch {
	case x > mapCenter+1:
		return "start"
	case x < mapCenter-1:
		return "end"
	default:
		return "middle"
	}
}

func arcPath(from, to MapNode) string {
	return fmt.Sprintf("M %.2f %.2f A %.0f %.0f 0 0 1 %.2f %.2f", from.X, from.Y, mapRadius, mapRadius, to.X, to.Y)
}

// normalize maps v into [0,1]. A flat range counts as the maximum.
func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 1
	}
	return math.Min(1, math.Max(0, (v-lo)/(hi-lo)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
