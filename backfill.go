package pathboard

import (
	"sort"
	"time"

	"pathboard.dev/pathboard/model"
	"pathboard.dev/pathboard/stations"
)

// The upstream feed frequently drops arrivals for some stations while
// still reporting the same run at other stations on the line. Backfill
// reconstructs the missing arrivals: for a station with a gap, take a
// run observed at an upstream station and project it forward by the
// scheduled travel time between the two.

// A candidate within this distance of an arrival already on the board
// is considered a duplicate of it and suppressed. The boundary is
// inclusive: a candidate exactly this far away is still suppressed.
const BackfillTolerance = 5 * time.Minute

type backfillCandidate struct {
	arrival time.Time
	offset  time.Duration
	station string
	source  model.Train
}

// Returns a new departures map where every station's train list is the
// original list plus synthesized entries for runs that upstream
// stations report but the station itself does not. The input is not
// modified.
//
// Synthesized entries carry a BackfillSource naming the upstream
// station and the arrival observed there. Line colors and the delay
// flag are copied from the source train. Backfilled entries never seed
// further backfill, so running the result through WithBackfill again
// adds nothing.
func WithBackfill(board model.DeparturesMap) model.DeparturesMap {
	out := make(model.DeparturesMap, len(board))

	for station, trains := range board {
		list := make([]model.Train, len(trains))
		copy(list, trains)

		// Arrival times already on the board, per run signature.
		reported := map[model.RunSignature][]time.Time{}
		for _, t := range trains {
			sig := t.Signature()
			reported[sig] = append(reported[sig], t.ProjectedArrival)
		}

		candidates := collectCandidates(board, station)

		// Nearest upstream station first, so when two upstream
		// stations would fill the same slot, the one with the
		// least synthesized offset wins.
		sort.SliceStable(candidates, func(i, j int) bool {
			if candidates[i].offset != candidates[j].offset {
				return candidates[i].offset < candidates[j].offset
			}
			return candidates[i].arrival.Before(candidates[j].arrival)
		})

		for _, c := range candidates {
			sig := c.source.Signature()
			if nearExisting(reported[sig], c.arrival) {
				continue
			}
			reported[sig] = append(reported[sig], c.arrival)
			list = append(list, model.Train{
				Headsign:         c.source.Headsign,
				ProjectedArrival: c.arrival,
				LineColors:       c.source.LineColors,
				Delayed:          c.source.Delayed,
				BackfillSource: &model.BackfillSource{
					Station:          c.station,
					ProjectedArrival: c.source.ProjectedArrival,
				},
			})
		}

		sort.SliceStable(list, func(i, j int) bool {
			return list[i].ProjectedArrival.Before(list[j].ProjectedArrival)
		})

		out[station] = list
	}

	return out
}

// Projects every matching run observed upstream of station onto
// station. A run matches a route when its signature equals the route's
// (headsign, colors) pair; its projected arrival here is the upstream
// arrival plus the scheduled travel time between the two stations.
func collectCandidates(board model.DeparturesMap, station string) []backfillCandidate {
	candidates := []backfillCandidate{}

	for _, route := range stations.RoutesThrough(station) {
		pos, ok := route.Index(station)
		if !ok || pos == 0 {
			// First stop on the route has nothing upstream.
			continue
		}

		sig := route.Signature()
		for _, cp := range route.Checkpoints[:pos] {
			offset := route.Checkpoints[pos].Offset - cp.Offset

			for _, t := range board[cp.Station] {
				if t.Signature() != sig {
					continue
				}
				if t.Backfilled() {
					// Never backfill from a backfill.
					continue
				}
				candidates = append(candidates, backfillCandidate{
					arrival: t.ProjectedArrival.Add(offset),
					offset:  offset,
					station: cp.Station,
					source:  t,
				})
			}
		}
	}

	return candidates
}

func nearExisting(existing []time.Time, arrival time.Time) bool {
	for _, e := range existing {
		d := arrival.Sub(e)
		if d < 0 {
			d = -d
		}
		if d <= BackfillTolerance {
			return true
		}
	}
	return false
}
