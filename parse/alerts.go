package parse

import (
	"encoding/json"

	"github.com/pkg/errors"
	"github.com/spkg/bom"

	"pathboard.dev/pathboard/model"
)

// The alerts document, as published out of band from the departure
// feed.
type AlertsDocument struct {
	Alerts []model.Alert `json:"alerts"`
}

// Decodes the alerts document. Alerts referencing unknown stations or
// carrying malformed schedules are kept as-is; they simply never
// match anything at evaluation time.
func ParseAlerts(data []byte) ([]model.Alert, error) {
	doc := AlertsDocument{}
	if err := json.Unmarshal(bom.Clean(data), &doc); err != nil {
		return nil, errors.Wrap(err, "unmarshaling alerts document")
	}
	return doc.Alerts, nil
}
