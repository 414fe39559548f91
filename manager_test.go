package pathboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathboard.dev/pathboard"
	"pathboard.dev/pathboard/feed"
	"pathboard.dev/pathboard/model"
	"pathboard.dev/pathboard/storage"
)

type stubSource struct {
	byURL map[string][]byte
}

func (s *stubSource) Get(ctx context.Context, url string) ([]byte, error) {
	return s.byURL[url], nil
}

func buildManager(t *testing.T, byURL map[string][]byte) *pathboard.Manager {
	client := feed.NewClient(&stubSource{byURL: byURL}, storage.NewMemoryStorage(), zerolog.Nop())

	manager, err := pathboard.NewManager(client)
	require.NoError(t, err)
	return manager
}

func TestManagerBoard(t *testing.T) {
	manager := buildManager(t, map[string][]byte{
		feed.DefaultRidePathURL: []byte(`{
		  "results": [
		    {
		      "consideredStation": "WTC",
		      "destinations": [
		        {
		          "label": "ToNJ",
		          "messages": [
		            {
		              "secondsToArrival": "0",
		              "arrivalTimeMessage": "0 min",
		              "lineColor": "D93A30",
		              "headSign": "Newark",
		              "lastUpdated": "2024-04-06T10:00:00-04:00"
		            }
		          ]
		        }
		      ]
		    },
		    {
		      "consideredStation": "EXP",
		      "destinations": []
		    }
		  ]
		}`),
	})

	board, fetchedAt, err := manager.Board(context.Background(), false)
	require.NoError(t, err)
	assert.False(t, fetchedAt.IsZero())

	// The parsed board comes back backfilled: WTC's Newark train is
	// projected onto Exchange Place.
	require.Len(t, board["WTC"], 1)
	require.Len(t, board["EXP"], 1)
	assert.Equal(t, "Newark", board["EXP"][0].Headsign)
	assert.True(t, board["EXP"][0].Backfilled())
	assert.True(t, board["EXP"][0].ProjectedArrival.Equal(
		board["WTC"][0].ProjectedArrival.Add(3*time.Minute),
	))
}

func TestManagerAlerts(t *testing.T) {
	manager := buildManager(t, map[string][]byte{
		feed.DefaultAlertsURL: []byte(`{
		  "alerts": [
		    {
		      "stations": ["GRV"],
		      "schedule": {
		        "once": {"from": "2024-04-06T10:00", "to": "2024-04-06T14:00"}
		      },
		      "message": {"en": "Escalator out of service"}
		    }
		  ]
		}`),
	})

	alerts, err := manager.Alerts(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, []string{"GRV"}, alerts[0].Stations)
}

func TestManagerActiveAlertsUsesReferenceTimezone(t *testing.T) {
	manager := buildManager(t, nil)

	alerts := []model.Alert{
		{
			Stations: []string{"GRV"},
			Schedule: model.Schedule{
				Once: &model.OnceWindow{
					From: model.NewDateTime(2024, time.April, 6, 10, 0),
					To:   model.NewDateTime(2024, time.April, 6, 14, 0),
				},
			},
		},
	}

	// 15:00 UTC is 11:00 in New York on this date, inside the
	// window; 19:00 UTC is 15:00 local, outside it.
	train := nwkWtcTrain(10, 0)
	inside := time.Date(2024, time.April, 6, 15, 0, 0, 0, time.UTC)
	outside := time.Date(2024, time.April, 6, 19, 0, 0, 0, time.UTC)

	assert.Len(t, manager.ActiveAlerts("GRV", train, inside, alerts), 1)
	assert.Empty(t, manager.ActiveAlerts("GRV", train, outside, alerts))
}
