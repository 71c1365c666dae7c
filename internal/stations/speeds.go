package stations

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WalkingSpeed is a named pace preset.
type WalkingSpeed struct {
	Name     string  `json:"name"`
	SpeedKmh float64 `json:"speedKmh"`
	Label    string  `json:"label"`
}

const DefaultSpeedName = "normal"

var walkingSpeeds = []WalkingSpeed{
	{Name: "slow", SpeedKmh: 4, Label: "ゆっくり歩く (4 km/h)"},
	{Name: "normal", SpeedKmh: 5, Label: "普通に歩く (5 km/h)"},
	{Name: "fast", SpeedKmh: 6, Label: "速く歩く (6 km/h)"},
}

func WalkingSpeeds() []WalkingSpeed {
	out := make([]WalkingSpeed, len(walkingSpeeds))
	copy(out, walkingSpeeds)
	return out
}

// FindSpeed looks a preset up by name. An empty name yields the default preset.
func FindSpeed(name string) (WalkingSpeed, error) {
	if name == "" {
		name = DefaultSpeedName
	}
	for _, s := range walkingSpeeds {
		if s.Name == name {
			return s, nil
		}
	}
	return WalkingSpeed{}, fmt.Errorf("unknown walking speed %q", name)
}

// ResolveSpeed accepts a preset name or a positive km/h figure such as "4.5".
// A custom figure is named after its value, e.g. "4.5km/h".
func ResolveSpeed(value string) (WalkingSpeed, error) {
	value = strings.TrimSpace(value)
	if preset, err := FindSpeed(value); err == nil {
		return preset, nil
	}

	kmh, err := strconv.ParseFloat(strings.TrimSuffix(value, "km/h"), 64)
	if err != nil || kmh <= 0 || math.IsInf(kmh, 0) || math.IsNaN(kmh) {
		return WalkingSpeed{}, fmt.Errorf("unknown walking speed %q", value)
	}

	name := strconv.FormatFloat(kmh, 'f', -1, 64) + "km/h"
	return WalkingSpeed{Name: name, SpeedKmh: kmh, Label: name}, nil
}
