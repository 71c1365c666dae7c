package route

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"loopwalk.dev/internal/stations"
)

var midnight = time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

func abcCalculator(t *testing.T) *Calculator {
	t.Helper()
	registry, err := stations.NewRegistry([]stations.Station{
		{Name: "A", DistanceToNext: 1.0},
		{Name: "B", DistanceToNext: 2.0},
		{Name: "C", DistanceToNext: 1.5},
	})
	require.NoError(t, err)
	return NewCalculator(registry)
}

func TestComputeForwardScenario(t *testing.T) {
	calc := abcCalculator(t)

	result, err := calc.Compute(Request{
		From:      "A",
		To:        "C",
		SpeedKmh:  5,
		StartTime: midnight,
		Direction: stations.Clockwise,
	})
	require.NoError(t, err)

	require.Len(t, result.Steps, 3)
	assert.Equal(t, []string{"A", "B", "C"}, result.StationNames())
	assert.Equal(t, midnight, result.Steps[0].ArrivalTime)
	assert.Equal(t, midnight.Add(12*time.Minute), result.Steps[1].ArrivalTime)
	assert.Equal(t, midnight.Add(36*time.Minute), result.Steps[2].ArrivalTime)
	assert.InDelta(t, 3.0, result.TotalDistance, 1e-9)
	assert.Equal(t, 36*time.Minute, result.Elapsed())
	assert.Empty(t, result.RestStops())

	for _, s := range result.Steps {
		assert.Nil(t, s.DepartureTime)
		assert.False(t, s.IsRestStop)
	}
}

func TestComputeBackwardUsesPreviousEdges(t *testing.T) {
	calc := abcCalculator(t)

	result, err := calc.Compute(Request{
		From:      "A",
		To:        "C",
		SpeedKmh:  5,
		StartTime: midnight,
		Direction: stations.Counterclockwise,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "C"}, result.StationNames())
	assert.InDelta(t, 1.5, result.TotalDistance, 1e-9)
	assert.Equal(t, midnight.Add(18*time.Minute), result.Steps[1].ArrivalTime)
}

func TestComputeWrapsAroundTheLoop(t *testing.T) {
	calc := abcCalculator(t)

	result, err := calc.Compute(Request{From: "C", To: "B", SpeedKmh: 5, StartTime: midnight})
	require.NoError(t, err)

	assert.Equal(t, []string{"C", "A", "B"}, result.StationNames())
	assert.InDelta(t, 2.5, result.TotalDistance, 1e-9)
}

func TestComputeSameStation(t *testing.T) {
	calc := abcCalculator(t)

	for _, d := range []stations.Direction{stations.Clockwise, stations.Counterclockwise} {
		result, err := calc.Compute(Request{From: "B", To: "B", SpeedKmh: 4, StartTime: midnight, Direction: d, RestInterval: 1, RestMinutes: 10})
		require.NoError(t, err)

		require.Len(t, result.Steps, 1)
		assert.Equal(t, "B", result.Steps[0].StationName)
		assert.Equal(t, midnight, result.Steps[0].ArrivalTime)
		assert.Zero(t, result.TotalDistance)
		assert.Zero(t, result.Elapsed())
	}
}

func TestComputeRestStops(t *testing.T) {
	calc := NewCalculator(stations.Yamanote())

	result, err := calc.Compute(Request{
		From:         "東京",
		To:           "池袋",
		SpeedKmh:     5,
		StartTime:    midnight,
		Direction:    stations.Clockwise,
		RestInterval: 5,
		RestMinutes:  10,
	})
	require.NoError(t, err)

	require.Len(t, result.Steps, 13)
	assert.Equal(t, []string{"鶯谷", "巣鴨"}, result.RestStops())

	rest := result.Steps[5]
	assert.True(t, rest.IsRestStop)
	require.NotNil(t, rest.DepartureTime)
	assert.Equal(t, rest.ArrivalTime.Add(10*time.Minute), *rest.DepartureTime)

	// The next leg starts from the departure time, not the arrival time.
	next := result.Steps[6]
	assert.Equal(t, rest.DepartureTime.Add(walkDuration(1.1, 5)), next.ArrivalTime)

	// Twelve segments, two rests.
	walking := walkDuration(result.TotalDistance, 5)
	assert.InDelta(t, float64(walking+20*time.Minute), float64(result.Elapsed()), float64(10*time.Millisecond))
}

func TestComputeNoRestAtDestination(t *testing.T) {
	calc := abcCalculator(t)

	result, err := calc.Compute(Request{From: "A", To: "C", SpeedKmh: 5, StartTime: midnight, RestInterval: 1, RestMinutes: 15})
	require.NoError(t, err)

	assert.True(t, result.Steps[1].IsRestStop)
	assert.False(t, result.Steps[2].IsRestStop)
	assert.Nil(t, result.Steps[2].DepartureTime)
	assert.Equal(t, midnight.Add(12*time.Minute+15*time.Minute+24*time.Minute), result.Steps[2].ArrivalTime)
}

func TestComputeValidation(t *testing.T) {
	calc := abcCalculator(t)
	base := Request{From: "A", To: "C", SpeedKmh: 5, StartTime: midnight}

	t.Run("unknown stations", func(t *testing.T) {
		req := base
		req.From = "Z"
		_, err := calc.Compute(req)

		var stationErr *InvalidStationError
		require.True(t, errors.As(err, &stationErr))
		assert.Equal(t, "Z", stationErr.Name)

		req = base
		req.To = "Y"
		_, err = calc.Compute(req)
		require.True(t, errors.As(err, &stationErr))
		assert.Equal(t, "Y", stationErr.Name)
	})

	tests := []struct {
		name   string
		mutate func(*Request)
		field  string
	}{
		{"zero speed", func(r *Request) { r.SpeedKmh = 0 }, "speed"},
		{"negative speed", func(r *Request) { r.SpeedKmh = -3 }, "speed"},
		{"NaN speed", func(r *Request) { r.SpeedKmh = math.NaN() }, "speed"},
		{"negative rest interval", func(r *Request) { r.RestInterval = -1 }, "restInterval"},
		{"negative rest minutes", func(r *Request) { r.RestMinutes = -5 }, "restMinutes"},
		{"unknown direction", func(r *Request) { r.Direction = "up" }, "direction"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, err := calc.Compute(req)

			var paramErr *InvalidParameterError
			require.True(t, errors.As(err, &paramErr))
			assert.Equal(t, tt.field, paramErr.Field)
		})
	}
}

// brokenCycle reports three stations but resolves the destination to an
// index the walk can never reach.
type brokenCycle struct {
	distance float64
}

func (b brokenCycle) Len() int { return 3 }

func (b brokenCycle) Index(name string) (int, bool) {
	if name == "ghost" {
		return 7, true
	}
	return 0, true
}

func (b brokenCycle) Name(i int) string { return "s" }

func (b brokenCycle) Next(i int, d stations.Direction) int { return (i + 1) % 3 }

func (b brokenCycle) Distance(i int, d stations.Direction) float64 { return b.distance }

func TestComputeDetectsCorruptCycle(t *testing.T) {
	t.Run("unreachable destination", func(t *testing.T) {
		calc := NewCalculator(brokenCycle{distance: 1})
		_, err := calc.Compute(Request{From: "a", To: "ghost", SpeedKmh: 5, StartTime: midnight})

		var compErr *RouteComputationError
		require.True(t, errors.As(err, &compErr))
		assert.Contains(t, compErr.Error(), "one lap")
	})

	t.Run("non-positive distance", func(t *testing.T) {
		calc := NewCalculator(brokenCycle{distance: 0})
		_, err := calc.Compute(Request{From: "a", To: "ghost", SpeedKmh: 5, StartTime: midnight})

		var compErr *RouteComputationError
		require.True(t, errors.As(err, &compErr))
		assert.Contains(t, compErr.Error(), "non-positive")
	})
}

func TestComputeProperties(t *testing.T) {
	registry := stations.Yamanote()
	calc := NewCalculator(registry)
	names := registry.Names()

	for _, dir := range []stations.Direction{stations.Clockwise, stations.Counterclockwise} {
		for _, from := range names {
			for _, to := range names {
				req := Request{From: from, To: to, SpeedKmh: 4, StartTime: midnight, Direction: dir, RestInterval: 5, RestMinutes: 10}
				result, err := calc.Compute(req)
				require.NoError(t, err)

				require.NotEmpty(t, result.Steps)
				assert.Equal(t, from, result.Steps[0].StationName)
				assert.Equal(t, to, result.Steps[len(result.Steps)-1].StationName)

				// Total distance is the sum of the traversed edges.
				sum := 0.0
				i, _ := registry.Index(from)
				for k := 1; k < len(result.Steps); k++ {
					sum += registry.Distance(i, dir)
					i = registry.Next(i, dir)
				}
				assert.InDelta(t, sum, result.TotalDistance, 1e-9)

				for k := 1; k < len(result.Steps); k++ {
					prev, cur := result.Steps[k-1], result.Steps[k]
					assert.True(t, cur.ArrivalTime.After(prev.LeaveTime()))
					assert.Greater(t, cur.DistanceFromStart, prev.DistanceFromStart)
				}

				again, err := calc.Compute(req)
				require.NoError(t, err)
				assert.Equal(t, result, again)
			}
		}
	}
}

func TestClockwiseAndCounterclockwiseCoverTheLoop(t *testing.T) {
	registry := stations.Yamanote()
	calc := NewCalculator(registry)

	cw, err := calc.Compute(Request{From: "東京", To: "新宿", SpeedKmh: 5, StartTime: midnight, Direction: stations.Clockwise})
	require.NoError(t, err)
	ccw, err := calc.Compute(Request{From: "東京", To: "新宿", SpeedKmh: 5, StartTime: midnight, Direction: stations.Counterclockwise})
	require.NoError(t, err)

	assert.InDelta(t, 17.1, cw.TotalDistance, 1e-9)
	assert.InDelta(t, registry.LoopLength(), cw.TotalDistance+ccw.TotalDistance, 1e-9)
	assert.Len(t, cw.Steps, 17)
	assert.Len(t, ccw.Steps, 15)
}

func TestWalkDurationRoundsToMilliseconds(t *testing.T) {
	assert.Equal(t, 12*time.Minute, walkDuration(1.0, 5))
	assert.Equal(t, 24*time.Minute, walkDuration(2.0, 5))
	assert.Equal(t, 10*time.Minute+30*time.Second, walkDuration(0.7, 4))
}
