package models

import "loopwalk.dev/internal/stations"

// ReferencesModel References model for related data
type ReferencesModel struct {
	Stations []StationReference `json:"stations"`
}

type StationReference struct {
	Index int      `json:"index"`
	Name  string   `json:"name"`
	Lat   *float64 `json:"lat,omitempty"`
	Lon   *float64 `json:"lon,omitempty"`
}

// NewEmptyReferences creates a new empty References model with initialized empty slices
func NewEmptyReferences() ReferencesModel {
	return ReferencesModel{
		Stations: []StationReference{},
	}
}

// NewStationReferences lists each named station once, in first-seen order.
// Names missing from reg are skipped.
func NewStationReferences(reg *stations.Registry, names []string) ReferencesModel {
	refs := NewEmptyReferences()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		idx, ok := reg.Index(name)
		if !ok {
			continue
		}
		s := reg.Station(idx)
		refs.Stations = append(refs.Stations, StationReference{
			Index: idx,
			Name:  s.Name,
			Lat:   s.Lat,
			Lon:   s.Lon,
		})
	}
	return refs
}
