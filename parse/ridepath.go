// Package parse decodes the two upstream documents: the Port
// Authority's per-station departure feed (ridepath.json) and the
// alerts document. Both are externally owned formats; decoding is
// strict about document structure but skips individual records it
// cannot make sense of.
package parse

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"pathboard.dev/pathboard/model"
	"pathboard.dev/pathboard/stations"
)

// The ridepath.json document. One result per station, destinations
// grouped by direction label ("ToNJ"/"ToNY"), each carrying the
// per-train messages.
type RidePathDocument struct {
	Results []RidePathResult `json:"results"`
}

type RidePathResult struct {
	ConsideredStation string                `json:"consideredStation"`
	Destinations      []RidePathDestination `json:"destinations"`
}

type RidePathDestination struct {
	Label    string            `json:"label"`
	Messages []RidePathMessage `json:"messages"`
}

type RidePathMessage struct {
	Target             string    `json:"target"`
	SecondsToArrival   string    `json:"secondsToArrival"`
	ArrivalTimeMessage string    `json:"arrivalTimeMessage"`
	LineColor          string    `json:"lineColor"`
	HeadSign           string    `json:"headSign"`
	LastUpdated        time.Time `json:"lastUpdated"`
}

// Decodes a ridepath.json document into a departures map. Stations
// not in the static registry and messages lacking a headsign or a
// parseable arrival are skipped. Each station's list comes back
// sorted by projected arrival.
func ParseRidePath(data []byte) (model.DeparturesMap, error) {
	doc := RidePathDocument{}
	if err := json.Unmarshal(bom.Clean(data), &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling ridepath document")
	}

	board := model.DeparturesMap{}
	for _, result := range doc.Results {
		if _, found := stations.ByAPIName(result.ConsideredStation); !found {
			continue
		}

		trains := []model.Train{}
		for _, dest := range result.Destinations {
			for _, msg := range dest.Messages {
				train, ok := parseMessage(msg)
				if !ok {
					continue
				}
				trains = append(trains, train)
			}
		}

		sort.SliceStable(trains, func(i, j int) bool {
			return trains[i].ProjectedArrival.Before(trains[j].ProjectedArrival)
		})

		board[result.ConsideredStation] = trains
	}

	return board, nil
}

func parseMessage(msg RidePathMessage) (model.Train, bool) {
	if msg.HeadSign == "" || msg.LastUpdated.IsZero() {
		return model.Train{}, false
	}

	secs, err := strconv.Atoi(strings.TrimSpace(msg.SecondsToArrival))
	if err != nil || secs < 0 {
		return model.Train{}, false
	}

	colors := ParseLineColors(msg.LineColor)
	if len(colors) == 0 {
		return model.Train{}, false
	}

	return model.Train{
		Headsign:         msg.HeadSign,
		ProjectedArrival: msg.LastUpdated.Add(time.Duration(secs) * time.Second),
		LineColors:       colors,
		Delayed:          msg.ArrivalTimeMessage == "Delayed",
	}, true
}

// The feed gives lineColor as 1-2 comma separated hex colors, with or
// without the leading '#'. Normalized to "#RRGGBB" uppercase so they
// compare equal to the route tables.
func ParseLineColors(s string) []model.Color {
	colors := []model.Color{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		part = strings.ToUpper(strings.TrimPrefix(part, "#"))
		if len(part) != 6 {
			continue
		}
		colors = append(colors, model.Color("#"+part))
		if len(colors) == 2 {
			break
		}
	}
	return colors
}
