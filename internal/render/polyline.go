package render

import (
	"github.com/twpayne/go-polyline"
	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
)

// EncodePolyline returns the visited stations of result as a Google encoded
// polyline, or "" when reg has no coordinates.
func EncodePolyline(reg *stations.Registry, result route.Result) string {
	if !reg.HasCoordinates() {
		return ""
	}

	coords := make([][]float64, 0, len(result.Steps))
	for _, step := range result.Steps {
		idx, ok := reg.Index(step.StationName)
		if !ok {
			continue
		}
		s := reg.Station(idx)
		point := []float64{*s.Lat, *s.Lon}
		if n := len(coords); n > 0 && coords[n-1][0] == point[0] && coords[n-1][1] == point[1] {
			continue
		}
		coords = append(coords, point)
	}

	if len(coords) < 2 {
		return ""
	}
	return string(polyline.EncodeCoords(coords))
}
