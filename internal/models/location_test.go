package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocationMarshalJSON(t *testing.T) {
	loc := Location{Lat: 24.5791, Lng: 73.6919}

	data, err := json.Marshal(loc)
	require.NoError(t, err)
	assert.JSONEq(t, `[24.5791,73.6919]`, string(data))
}

func TestLocationUnmarshalJSON(t *testing.T) {
	for _, tt := range []struct {
		name    string
		input   string
		want    Location
		wantErr bool
	}{
		{name: "valid pair", input: `[24.5791, 73.6919]`, want: Location{Lat: 24.5791, Lng: 73.6919}},
		{name: "integers", input: `[24, 73]`, want: Location{Lat: 24, Lng: 73}},
		{name: "too few elements", input: `[24.5791]`, wantErr: true},
		{name: "too many elements", input: `[24.5791, 73.6919, 0]`, wantErr: true},
		{name: "object form rejected", input: `{"lat": 24.5791, "lng": 73.6919}`, wantErr: true},
	} {
		t.Run(tt.name, func(t *testing.T) {
			var got Location
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoadRecordJSONShape(t *testing.T) {
	rec := RoadRecord{
		Name:          "MG Road",
		Position:      Location{Lat: 24.5791, Lng: 73.6919},
		CongestionPct: 55,
		Accidents:     1,
		AvgSpeedKmh:   32,
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"road": "MG Road",
		"location": [24.5791, 73.6919],
		"congestion": 55,
		"accidents": 1,
		"averageSpeed": 32
	}`, string(data))

	var back RoadRecord
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, rec, back)
}

func TestCloneRoadsIsIndependent(t *testing.T) {
	orig := []RoadRecord{{Name: "MG Road", CongestionPct: 10}}
	clone := CloneRoads(orig)

	clone[0].CongestionPct = 99
	assert.Equal(t, 10, orig[0].CongestionPct)
}

func TestDistanceKm(t *testing.T) {
	fatehpura := Location{Lat: 24.6095, Lng: 73.6802}
	surajpole := Location{Lat: 24.5799, Lng: 73.6997}

	d := fatehpura.DistanceKm(surajpole)
	assert.InDelta(t, 3.85, d, 0.5)
	assert.Zero(t, fatehpura.DistanceKm(fatehpura))
}
