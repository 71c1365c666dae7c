package stations

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/jamespfennell/gtfs"
)

func rawGtfsData(source string) ([]byte, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		b, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("error reading local GTFS file: %w", err)
		}
		return b, nil
	}

	resp, err := http.Get(source)
	if err != nil {
		return nil, fmt.Errorf("error downloading GTFS data: %w", err)
	}
	defer resp.Body.Close() // nolint

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error downloading GTFS data: %s", resp.Status)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading GTFS data: %w", err)
	}
	return b, nil
}

// LoadGTFS builds a station cycle for routeID from a static GTFS zip found at
// source, which is either a local path or an http(s) URL.
func LoadGTFS(source, routeID string) (*Registry, error) {
	b, err := rawGtfsData(source)
	if err != nil {
		return nil, err
	}
	return ParseGTFS(b, routeID)
}

// ParseGTFS builds a station cycle from raw static GTFS zip bytes.
func ParseGTFS(b []byte, routeID string) (*Registry, error) {
	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return nil, fmt.Errorf("error parsing GTFS data: %w", err)
	}
	return RegistryFromGTFS(staticData, routeID)
}

// RegistryFromGTFS uses the trip of routeID with the most stop times as the
// loop. A trailing stop equal to the first one closes the loop and is dropped.
// Edge lengths are great-circle distances rounded to 10 m.
func RegistryFromGTFS(staticData *gtfs.Static, routeID string) (*Registry, error) {
	var longest *gtfs.ScheduledTrip
	for i := range staticData.Trips {
		trip := &staticData.Trips[i]
		if trip.Route == nil || trip.Route.Id != routeID {
			continue
		}
		if longest == nil || len(trip.StopTimes) > len(longest.StopTimes) {
			longest = trip
		}
	}
	if longest == nil {
		return nil, fmt.Errorf("no trips found for route %q", routeID)
	}

	stopTimes := make([]gtfs.ScheduledStopTime, len(longest.StopTimes))
	copy(stopTimes, longest.StopTimes)
	sort.Slice(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	var stops []*gtfs.Stop
	for _, st := range stopTimes {
		stop := st.Stop
		if stop == nil {
			continue
		}
		if stop.Parent != nil {
			stop = stop.Parent
		}
		if len(stops) > 0 && stops[len(stops)-1].Id == stop.Id {
			continue
		}
		stops = append(stops, stop)
	}
	if len(stops) > 1 && stops[0].Id == stops[len(stops)-1].Id {
		stops = stops[:len(stops)-1]
	}

	list := make([]Station, 0, len(stops))
	for i, stop := range stops {
		next := stops[(i+1)%len(stops)]
		if stop.Latitude == nil || stop.Longitude == nil || next.Latitude == nil || next.Longitude == nil {
			return nil, fmt.Errorf("stop %q has no coordinates", stop.Id)
		}

		lat, lon := *stop.Latitude, *stop.Longitude
		km := haversineKm(lat, lon, *next.Latitude, *next.Longitude)
		list = append(list, Station{
			Name:           stop.Name,
			DistanceToNext: math.Round(km*100) / 100,
			Lat:            &lat,
			Lon:            &lon,
		})
	}

	return NewRegistry(list)
}

func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadiusKm = 6371.0088
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	la1 := lat1 * math.Pi / 180
	la2 := lat2 * math.Pi / 180
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(la1)*math.Cos(la2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}
