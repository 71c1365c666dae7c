package models

import "loopwalk.dev/internal/stations"

type StationEntry struct {
	Index          int      `json:"index"`
	Name           string   `json:"name"`
	DistanceToNext float64  `json:"distanceToNext"`
	Lat            *float64 `json:"lat,omitempty"`
	Lon            *float64 `json:"lon,omitempty"`
}

// StationsData describes the whole loop.
type StationsData struct {
	Stations    []StationEntry `json:"stations"`
	LoopLength  float64        `json:"loopLength"`
	MinDistance float64        `json:"minDistance"`
	MaxDistance float64        `json:"maxDistance"`
}

func NewStationsData(reg *stations.Registry) StationsData {
	all := reg.Stations()
	entries := make([]StationEntry, len(all))
	for i, s := range all {
		entries[i] = StationEntry{
			Index:          i,
			Name:           s.Name,
			DistanceToNext: s.DistanceToNext,
			Lat:            s.Lat,
			Lon:            s.Lon,
		}
	}

	lo, hi := reg.DistanceRange()
	return StationsData{
		Stations:    entries,
		LoopLength:  reg.LoopLength(),
		MinDistance: lo,
		MaxDistance: hi,
	}
}
