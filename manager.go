// Package pathboard turns the Port Authority's per-station PATH
// departure feed into augmented departure boards, and evaluates
// schedule based service alerts against them.
//
// The two engines, WithBackfill and the alert schedule evaluation, are
// pure functions over immutable snapshots. Manager is the thin calling
// layer that feeds them: it pulls snapshots through the feed client
// and converts instants into the transit system's local time.
package pathboard

import (
	"context"
	"fmt"
	"time"

	"pathboard.dev/pathboard/feed"
	"pathboard.dev/pathboard/model"
	"pathboard.dev/pathboard/parse"
	"pathboard.dev/pathboard/storage"
)

// Alert schedules are written in the transit system's local time, so
// evaluation happens there too, never in the device's timezone.
const ReferenceTimezone = "America/New_York"

type Manager struct {
	RidePathURL string
	AlertsURL   string

	feed     *feed.Client
	location *time.Location
}

func NewManager(client *feed.Client) (*Manager, error) {
	location, err := time.LoadLocation(ReferenceTimezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone: %w", err)
	}

	return &Manager{
		RidePathURL: feed.DefaultRidePathURL,
		AlertsURL:   feed.DefaultAlertsURL,
		feed:        client,
		location:    location,
	}, nil
}

// Returns the backfilled departure board from the latest feed
// snapshot, along with the snapshot's fetch time.
func (m *Manager) Board(ctx context.Context, force bool) (model.DeparturesMap, time.Time, error) {
	payload, fetchedAt, err := m.feed.Get(ctx, storage.SnapshotRidePath, m.RidePathURL, force)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("getting departures: %w", err)
	}

	board, err := parse.ParseRidePath(payload)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("parsing departures: %w", err)
	}

	return WithBackfill(board), fetchedAt, nil
}

// Returns the current alert set.
func (m *Manager) Alerts(ctx context.Context, force bool) ([]model.Alert, error) {
	payload, _, err := m.feed.Get(ctx, storage.SnapshotAlerts, m.AlertsURL, force)
	if err != nil {
		return nil, fmt.Errorf("getting alerts: %w", err)
	}

	alerts, err := parse.ParseAlerts(payload)
	if err != nil {
		return nil, fmt.Errorf("parsing alerts: %w", err)
	}

	return alerts, nil
}

// Filters alerts down to those applying to the given train at the
// given station at an instant.
func (m *Manager) ActiveAlerts(station string, train model.Train, at time.Time, alerts []model.Alert) []model.Alert {
	return ActiveAlertsFor(station, train, model.DateTimeOf(at.In(m.location)), alerts)
}
