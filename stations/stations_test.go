package stations_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pathboard.dev/pathboard/model"
	"pathboard.dev/pathboard/stations"
)

func TestAllStations(t *testing.T) {
	all := stations.All()
	require.Len(t, all, 13)

	names := map[string]bool{}
	for _, station := range all {
		names[station.APIName] = true
		assert.NotEmpty(t, station.DisplayName)
		assert.Contains(t, []string{"NJ", "NY"}, station.State)
		assert.NotZero(t, station.Lat)
		assert.NotZero(t, station.Lon)
	}
	for _, name := range []string{
		"NWK", "HAR", "JSQ", "GRV", "EXP", "NEW", "HOB",
		"WTC", "CHR", "09S", "14S", "23S", "33S",
	} {
		assert.True(t, names[name], "missing station %s", name)
	}
}

func TestByAPIName(t *testing.T) {
	station, found := stations.ByAPIName("EXP")
	require.True(t, found)
	assert.Equal(t, "Exchange Place", station.DisplayName)
	assert.Equal(t, "NJ", station.State)

	_, found = stations.ByAPIName("PENN")
	assert.False(t, found)
}

func TestRoutesWellFormed(t *testing.T) {
	routes := stations.Routes()
	require.Len(t, routes, 8)

	for _, route := range routes {
		require.GreaterOrEqual(t, len(route.Checkpoints), 2, route.Line)
		require.NotEmpty(t, route.Colors, route.Line)

		assert.Equal(t, time.Duration(0), route.Checkpoints[0].Offset)
		for i := 1; i < len(route.Checkpoints); i++ {
			assert.Greater(t,
				route.Checkpoints[i].Offset,
				route.Checkpoints[i-1].Offset,
				"%s %s", route.Line, route.Headsign,
			)
		}

		for i, cp := range route.Checkpoints {
			j, found := route.Index(cp.Station)
			require.True(t, found)
			assert.Equal(t, i, j)
		}
	}
}

func TestRoutesFor(t *testing.T) {
	newark := stations.RoutesFor(model.RunSignature{
		Headsign: "Newark",
		Colors:   "#D93A30",
	})
	require.Len(t, newark, 1)
	assert.Equal(t, "NWK-WTC", newark[0].Line)
	assert.Equal(t, "WTC", newark[0].Checkpoints[0].Station)
	assert.Equal(t, "NWK", newark[0].Checkpoints[len(newark[0].Checkpoints)-1].Station)

	assert.Empty(t, stations.RoutesFor(model.RunSignature{
		Headsign: "Newark",
		Colors:   "#4D92FB",
	}))
}

func TestRoutesThrough(t *testing.T) {
	// Exchange Place sits on both WTC lines, in both directions.
	exp := stations.RoutesThrough("EXP")
	require.Len(t, exp, 4)
	for _, route := range exp {
		assert.Contains(t, []string{"NWK-WTC", "HOB-WTC"}, route.Line)
	}

	// 33rd St sees only the uptown lines.
	for _, route := range stations.RoutesThrough("33S") {
		assert.Contains(t, []string{"JSQ-33", "HOB-33"}, route.Line)
	}

	assert.Empty(t, stations.RoutesThrough("PENN"))
}

func TestTravelTime(t *testing.T) {
	newark := stations.RoutesFor(model.RunSignature{
		Headsign: "Newark",
		Colors:   "#D93A30",
	})[0]

	d, ok := newark.TravelTime("WTC", "EXP")
	require.True(t, ok)
	assert.Equal(t, 3*time.Minute, d)

	d, ok = newark.TravelTime("WTC", "NWK")
	require.True(t, ok)
	assert.Equal(t, 20*time.Minute, d)

	// Only forward along the route.
	_, ok = newark.TravelTime("EXP", "WTC")
	assert.False(t, ok)
	_, ok = newark.TravelTime("WTC", "HOB")
	assert.False(t, ok)

	toWtc := stations.RoutesFor(model.RunSignature{
		Headsign: "World Trade Center",
		Colors:   "#D93A30",
	})[0]
	d, ok = toWtc.TravelTime("GRV", "EXP")
	require.True(t, ok)
	assert.Equal(t, 3*time.Minute, d)

	hobWtc := stations.RoutesFor(model.RunSignature{
		Headsign: "World Trade Center",
		Colors:   "#4D92FB",
	})[0]
	d, ok = hobWtc.TravelTime("NEW", "EXP")
	require.True(t, ok)
	assert.Equal(t, 5*time.Minute, d)
}
