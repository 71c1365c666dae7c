package stations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStationLoop(t *testing.T) *Registry {
	t.Helper()
	registry, err := NewRegistry([]Station{
		{Name: "A", DistanceToNext: 1.0},
		{Name: "B", DistanceToNext: 2.0},
		{Name: "C", DistanceToNext: 1.5},
	})
	require.NoError(t, err)
	return registry
}

func TestNewRegistryValidation(t *testing.T) {
	lat := 35.0

	tests := []struct {
		name     string
		stations []Station
		errText  string
	}{
		{
			name:     "too few stations",
			stations: []Station{{Name: "A", DistanceToNext: 1}},
			errText:  "at least two",
		},
		{
			name:     "empty name",
			stations: []Station{{Name: "A", DistanceToNext: 1}, {DistanceToNext: 1}},
			errText:  "no name",
		},
		{
			name:     "zero distance",
			stations: []Station{{Name: "A", DistanceToNext: 1}, {Name: "B"}},
			errText:  "must be positive",
		},
		{
			name:     "duplicate names",
			stations: []Station{{Name: "A", DistanceToNext: 1}, {Name: "A", DistanceToNext: 1}},
			errText:  "duplicate",
		},
		{
			name:     "half a coordinate",
			stations: []Station{{Name: "A", DistanceToNext: 1, Lat: &lat}, {Name: "B", DistanceToNext: 1}},
			errText:  "lat and lon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry, err := NewRegistry(tt.stations)
			assert.Nil(t, registry)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestRegistryIsolatedFromCallerSlice(t *testing.T) {
	input := []Station{{Name: "A", DistanceToNext: 1}, {Name: "B", DistanceToNext: 2}}
	registry, err := NewRegistry(input)
	require.NoError(t, err)

	input[0].DistanceToNext = 99
	assert.Equal(t, 1.0, registry.Station(0).DistanceToNext)

	copied := registry.Stations()
	copied[1].Name = "Z"
	assert.Equal(t, "B", registry.Name(1))
}

func TestRegistryStepping(t *testing.T) {
	registry := threeStationLoop(t)

	t.Run("clockwise wraps to the first station", func(t *testing.T) {
		assert.Equal(t, 1, registry.Next(0, Clockwise))
		assert.Equal(t, 0, registry.Next(2, Clockwise))
		assert.Equal(t, 1.5, registry.Distance(2, Clockwise))
	})

	t.Run("counterclockwise uses the previous station's edge", func(t *testing.T) {
		assert.Equal(t, 2, registry.Next(0, Counterclockwise))
		assert.Equal(t, 1.5, registry.Distance(0, Counterclockwise))
		assert.Equal(t, 1.0, registry.Distance(1, Counterclockwise))
	})

	t.Run("lookup by name", func(t *testing.T) {
		i, ok := registry.Index("C")
		assert.True(t, ok)
		assert.Equal(t, 2, i)

		_, ok = registry.Index("nowhere")
		assert.False(t, ok)
	})

	min, max := registry.DistanceRange()
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 2.0, max)
	assert.InDelta(t, 4.5, registry.LoopLength(), 1e-9)
	assert.False(t, registry.HasCoordinates())
}

func TestParseDirection(t *testing.T) {
	for _, in := range []string{"", "clockwise", "forward", "CW"} {
		d, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, Clockwise, d)
	}
	for _, in := range []string{"counterclockwise", "backward", " ccw "} {
		d, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, Counterclockwise, d)
	}

	_, err := ParseDirection("sideways")
	assert.Error(t, err)
}

func TestYamanote(t *testing.T) {
	registry := Yamanote()

	assert.Equal(t, 30, registry.Len())
	assert.Equal(t, "東京", registry.Name(0))
	assert.Equal(t, "有楽町", registry.Name(29))
	assert.True(t, registry.HasCoordinates())

	i, ok := registry.Index("新宿")
	require.True(t, ok)
	assert.Equal(t, 16, i)

	min, max := registry.DistanceRange()
	assert.Equal(t, 0.5, min)
	assert.Equal(t, 2.0, max)
	assert.InDelta(t, 34.5, registry.LoopLength(), 1e-9)
}

func TestFindSpeed(t *testing.T) {
	speed, err := FindSpeed("")
	require.NoError(t, err)
	assert.Equal(t, "normal", speed.Name)
	assert.Equal(t, 5.0, speed.SpeedKmh)

	speed, err = FindSpeed("slow")
	require.NoError(t, err)
	assert.Equal(t, 4.0, speed.SpeedKmh)

	_, err = FindSpeed("sprint")
	assert.Error(t, err)

	speeds := WalkingSpeeds()
	assert.Len(t, speeds, 3)
	speeds[0].SpeedKmh = 100
	again, _ := FindSpeed("slow")
	assert.Equal(t, 4.0, again.SpeedKmh)
}

func TestResolveSpeed(t *testing.T) {
	tests := []struct {
		value string
		name  string
		kmh   float64
	}{
		{"", "normal", 5},
		{"fast", "fast", 6},
		{"4.5", "4.5km/h", 4.5},
		{" 3km/h ", "3km/h", 3},
	}
	for _, tt := range tests {
		speed, err := ResolveSpeed(tt.value)
		require.NoError(t, err, tt.value)
		assert.Equal(t, tt.name, speed.Name)
		assert.Equal(t, tt.kmh, speed.SpeedKmh)
	}

	for _, bad := range []string{"sprint", "0", "-4", "NaN", "Inf"} {
		_, err := ResolveSpeed(bad)
		assert.Error(t, err, bad)
	}
}
