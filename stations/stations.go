// Package stations holds the static PATH station and route topology:
// the stations themselves, and per-service checkpoint tables giving
// the scheduled travel time between stations along each route.
//
// The tables are embedded CSV, parsed once at init into an immutable
// registry. They are configuration, not live data; a malformed table
// is a programming error and panics at startup.
package stations

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/spkg/bom"

	"pathboard.dev/pathboard/model"
)

//go:embed data/stations.csv
var stationsCSV []byte

//go:embed data/routes.csv
var routesCSV []byte

// A PATH station. APIName is the key the upstream feed uses.
type Station struct {
	APIName     string
	DisplayName string
	State       string
	Lat         float64
	Lon         float64
}

// A station's position on a route, with the scheduled travel time
// from the route's first station.
type Checkpoint struct {
	Station string
	Offset  time.Duration
}

// One direction of one PATH service pattern. Checkpoints are ordered
// upstream to downstream, with strictly increasing offsets. Headsign
// and Colors together identify the runs the route carries, matching
// the run signature trains report on the departure board.
type Route struct {
	Line        string
	Headsign    string
	Colors      []model.Color
	Checkpoints []Checkpoint

	index map[string]int
}

// Position of a station on the route, or false if the route does not
// serve it.
func (r *Route) Index(station string) (int, bool) {
	i, ok := r.index[station]
	return i, ok
}

// Scheduled travel time from one station on the route to a later one.
func (r *Route) TravelTime(from, to string) (time.Duration, bool) {
	i, ok := r.index[from]
	if !ok {
		return 0, false
	}
	j, ok := r.index[to]
	if !ok || j <= i {
		return 0, false
	}
	return r.Checkpoints[j].Offset - r.Checkpoints[i].Offset, true
}

func (r *Route) Signature() model.RunSignature {
	return model.RunSignature{
		Headsign: r.Headsign,
		Colors:   model.JoinColors(r.Colors),
	}
}

type registry struct {
	stations    []Station
	byAPIName   map[string]Station
	routes      []*Route
	bySignature map[model.RunSignature][]*Route
	byStation   map[string][]*Route
}

var reg *registry

func init() {
	r, err := load(stationsCSV, routesCSV)
	if err != nil {
		panic(fmt.Sprintf("stations: bad embedded topology: %v", err))
	}
	reg = r
}

// All stations, in table order.
func All() []Station {
	out := make([]Station, len(reg.stations))
	copy(out, reg.stations)
	return out
}

// Looks up a station by its feed API name.
func ByAPIName(name string) (Station, bool) {
	s, ok := reg.byAPIName[name]
	return s, ok
}

// Routes carrying runs of the given signature.
func RoutesFor(sig model.RunSignature) []*Route {
	return reg.bySignature[sig]
}

// Routes serving the given station.
func RoutesThrough(station string) []*Route {
	return reg.byStation[station]
}

// All routes, in table order.
func Routes() []*Route {
	out := make([]*Route, len(reg.routes))
	copy(out, reg.routes)
	return out
}

type stationCSV struct {
	APIName     string  `csv:"station"`
	DisplayName string  `csv:"display_name"`
	State       string  `csv:"state"`
	Lat         float64 `csv:"lat"`
	Lon         float64 `csv:"lon"`
}

type checkpointCSV struct {
	Line     string `csv:"line"`
	Headsign string `csv:"headsign"`
	Colors   string `csv:"colors"`
	Seq      int    `csv:"seq"`
	Station  string `csv:"station"`
	Offset   int    `csv:"offset_min"`
}

func load(stationData, routeData []byte) (*registry, error) {
	r := &registry{
		byAPIName:   map[string]Station{},
		bySignature: map[model.RunSignature][]*Route{},
		byStation:   map[string][]*Route{},
	}

	stationRows := []*stationCSV{}
	if err := gocsv.Unmarshal(bom.NewReader(bytes.NewReader(stationData)), &stationRows); err != nil {
		return nil, fmt.Errorf("unmarshaling stations csv: %w", err)
	}
	for _, row := range stationRows {
		if row.APIName == "" {
			return nil, fmt.Errorf("empty station name")
		}
		if _, found := r.byAPIName[row.APIName]; found {
			return nil, fmt.Errorf("repeated station '%s'", row.APIName)
		}
		if row.State != "NJ" && row.State != "NY" {
			return nil, fmt.Errorf("station '%s' has bad state '%s'", row.APIName, row.State)
		}
		station := Station{
			APIName:     row.APIName,
			DisplayName: row.DisplayName,
			State:       row.State,
			Lat:         row.Lat,
			Lon:         row.Lon,
		}
		r.stations = append(r.stations, station)
		r.byAPIName[row.APIName] = station
	}

	checkpointRows := []*checkpointCSV{}
	if err := gocsv.Unmarshal(bom.NewReader(bytes.NewReader(routeData)), &checkpointRows); err != nil {
		return nil, fmt.Errorf("unmarshaling routes csv: %w", err)
	}

	// Rows for the same (line, headsign) form one route. The file
	// lists each route's checkpoints contiguously, but seq is
	// verified anyway.
	byRoute := map[string]*Route{}
	order := []string{}
	for _, row := range checkpointRows {
		key := row.Line + "/" + row.Headsign

		route, found := byRoute[key]
		if !found {
			colors := []model.Color{}
			for _, c := range strings.Split(row.Colors, ",") {
				c = strings.TrimSpace(c)
				if !strings.HasPrefix(c, "#") || len(c) != 7 {
					return nil, fmt.Errorf("route %s has bad color '%s'", key, c)
				}
				colors = append(colors, model.Color(c))
			}
			if len(colors) > 2 {
				return nil, fmt.Errorf("route %s has %d colors", key, len(colors))
			}
			route = &Route{
				Line:     row.Line,
				Headsign: row.Headsign,
				Colors:   colors,
				index:    map[string]int{},
			}
			byRoute[key] = route
			order = append(order, key)
		}

		if _, found := r.byAPIName[row.Station]; !found {
			return nil, fmt.Errorf("route %s references unknown station '%s'", key, row.Station)
		}
		if _, found := route.index[row.Station]; found {
			return nil, fmt.Errorf("route %s repeats station '%s'", key, row.Station)
		}
		if row.Seq != len(route.Checkpoints)+1 {
			return nil, fmt.Errorf("route %s has out of order seq %d", key, row.Seq)
		}

		offset := time.Duration(row.Offset) * time.Minute
		if n := len(route.Checkpoints); n == 0 {
			if offset != 0 {
				return nil, fmt.Errorf("route %s does not start at offset 0", key)
			}
		} else if offset <= route.Checkpoints[n-1].Offset {
			return nil, fmt.Errorf("route %s has non-increasing offset at '%s'", key, row.Station)
		}

		route.index[row.Station] = len(route.Checkpoints)
		route.Checkpoints = append(route.Checkpoints, Checkpoint{
			Station: row.Station,
			Offset:  offset,
		})
	}

	for _, key := range order {
		route := byRoute[key]
		if len(route.Checkpoints) < 2 {
			return nil, fmt.Errorf("route %s has fewer than 2 checkpoints", key)
		}
		r.routes = append(r.routes, route)
		r.bySignature[route.Signature()] = append(r.bySignature[route.Signature()], route)
		for _, cp := range route.Checkpoints {
			r.byStation[cp.Station] = append(r.byStation[cp.Station], route)
		}
	}

	return r, nil
}
