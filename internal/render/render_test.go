package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"loopwalk.dev/internal/route"
	"loopwalk.dev/internal/stations"
)

var tokyo = time.FixedZone("JST", 9*60*60)

// fourStationLoop is A(1.0) B(2.0) C(1.0) D(3.0).
func fourStationLoop(t *testing.T) *stations.Registry {
	t.Helper()
	reg, err := stations.NewRegistry([]stations.Station{
		{Name: "A", DistanceToNext: 1.0},
		{Name: "B", DistanceToNext: 2.0},
		{Name: "C", DistanceToNext: 1.0},
		{Name: "D", DistanceToNext: 3.0},
	})
	require.NoError(t, err)
	return reg
}

func compute(t *testing.T, reg *stations.Registry, req route.Request) route.Result {
	t.Helper()
	if req.SpeedKmh == 0 {
		req.SpeedKmh = 5
	}
	if req.StartTime.IsZero() {
		req.StartTime = time.Date(2024, 4, 1, 9, 0, 0, 0, tokyo)
	}
	result, err := route.NewCalculator(reg).Compute(req)
	require.NoError(t, err)
	return result
}
