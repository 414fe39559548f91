package model

import (
	"strings"
	"time"
)

// Holds all external facing types for departure boards.

// A line color, as a "#RRGGBB" hex string.
type Color string

// Records where a synthesized train entry came from: the upstream
// station it was observed at, and the arrival reported there.
type BackfillSource struct {
	Station          string
	ProjectedArrival time.Time
}

// A single entry on a station's departure board. Trains sharing
// Headsign and LineColors are considered the same physical run across
// stations.
type Train struct {
	Headsign         string
	ProjectedArrival time.Time
	LineColors       []Color
	Delayed          bool
	BackfillSource   *BackfillSource
}

func (t Train) Backfilled() bool {
	return t.BackfillSource != nil
}

// Identifies a run across stations. Colors are joined into a string so
// the signature is comparable and usable as a map key.
type RunSignature struct {
	Headsign string
	Colors   string
}

func (t Train) Signature() RunSignature {
	return RunSignature{
		Headsign: t.Headsign,
		Colors:   JoinColors(t.LineColors),
	}
}

func JoinColors(colors []Color) string {
	s := make([]string, 0, len(colors))
	for _, c := range colors {
		s = append(s, string(c))
	}
	return strings.Join(s, ",")
}

// Departure board for a set of stations, keyed by station API name.
// Each station's train list is ordered by projected arrival.
type DeparturesMap map[string][]Train
