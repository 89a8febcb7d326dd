package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/monxcode/GeoSense-Udaipur/internal/simulator"
)

type discardOutput struct{}

func (discardOutput) WriteMessage(topic string, msg []byte) error { return nil }
func (discardOutput) Close() error                                { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &models.Config{
		Seed:     7,
		CityName: "Udaipur",
	}
	sim := simulator.New(cfg)
	sim.Roads = []models.RoadRecord{
		{Name: "MG Road", Position: models.Location{Lat: 24.5760, Lng: 73.6900}, CongestionPct: 30, Accidents: 0, AvgSpeedKmh: 45},
		{Name: "Fatehpura Circle", Position: models.Location{Lat: 24.6100, Lng: 73.7010}, CongestionPct: 75, Accidents: 2, AvgSpeedKmh: 15},
		{Name: "Lake Palace Road", Position: models.Location{Lat: 24.5754, Lng: 73.6800}, CongestionPct: 20, Accidents: 0, AvgSpeedKmh: 50},
	}
	return New(cfg, sim, discardOutput{})
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeRoads(t *testing.T, rec *httptest.ResponseRecorder) []models.RoadRecord {
	t.Helper()
	var roads []models.RoadRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &roads))
	return roads
}

func roadNames(roads []models.RoadRecord) []string {
	names := make([]string, len(roads))
	for i, r := range roads {
		names[i] = r.Name
	}
	return names
}

func TestRoadsEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/roads")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Len(t, decodeRoads(t, rec), 3)

	rec = doRequest(t, h, http.MethodGet, "/api/roads?band=low")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"MG Road", "Lake Palace Road"}, roadNames(decodeRoads(t, rec)))

	rec = doRequest(t, h, http.MethodGet, "/api/roads?q=lake")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Lake Palace Road"}, roadNames(decodeRoads(t, rec)))

	rec = doRequest(t, h, http.MethodGet, "/api/roads?band=gridlock")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoadsGeoJSONEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/roads/geojson")
	require.Equal(t, http.StatusOK, rec.Code)

	var fc struct {
		Type     string `json:"type"`
		Features []struct {
			Geometry struct {
				Coordinates []float64 `json:"coordinates"`
			} `json:"geometry"`
			Properties map[string]interface{} `json:"properties"`
		} `json:"features"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fc))
	require.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)
	assert.Equal(t, []float64{73.6900, 24.5760}, fc.Features[0].Geometry.Coordinates)
	assert.Equal(t, "MG Road", fc.Features[0].Properties["road"])
	assert.Equal(t, "#2ecc71", fc.Features[0].Properties["color"])
}

func TestKPIsEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/kpis")
	require.Equal(t, http.StatusOK, rec.Code)

	var kpis models.TrafficKPIs
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &kpis))
	assert.Equal(t, models.TrafficKPIs{
		AvgCongestion:  42,
		TotalAccidents: 2,
		AvgSpeed:       37,
		SafeRouteCount: 2,
	}, kpis)
}

func TestStatusEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/status")
	require.Equal(t, http.StatusOK, rec.Code)

	var status statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "Udaipur", status.City)
	assert.Equal(t, 3, status.RoadCount)
	assert.Equal(t, int64(0), status.Tick)
	assert.Equal(t, "normal", status.Trend)
	assert.Equal(t, "moderate", status.SafetyStatus)
}

func TestSafeRoutesEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/safe-routes")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Lake Palace Road", "MG Road"}, roadNames(decodeRoads(t, rec)))

	rec = doRequest(t, h, http.MethodGet, "/api/safe-routes?limit=1")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Lake Palace Road"}, roadNames(decodeRoads(t, rec)))

	rec = doRequest(t, h, http.MethodGet, "/api/safe-routes?limit=0")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeRoads(t, rec))

	rec = doRequest(t, h, http.MethodGet, "/api/safe-routes?limit=five")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHotspotsEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/api/hotspots")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"Fatehpura Circle"}, roadNames(decodeRoads(t, rec)))
}

func TestTickEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodPost, "/api/tick")
	require.Equal(t, http.StatusOK, rec.Code)

	var status statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, int64(1), status.Tick)

	rec = doRequest(t, h, http.MethodGet, "/api/tick")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHealthzEndpoint(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodGet, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestMethodGuard(t *testing.T) {
	h := newTestServer(t).Handler()

	rec := doRequest(t, h, http.MethodPost, "/api/roads")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORSHeader(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/kpis", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
