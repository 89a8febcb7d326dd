package metrics

import (
	"reflect"
	"testing"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

func testRoads() []models.RoadRecord {
	return []models.RoadRecord{
		{Name: "MG Road", CongestionPct: 30, Accidents: 0, AvgSpeedKmh: 45},
		{Name: "Fatehpura Circle", CongestionPct: 75, Accidents: 2, AvgSpeedKmh: 15},
		{Name: "Chetak Circle", CongestionPct: 55, Accidents: 1, AvgSpeedKmh: 25},
		{Name: "Lake Palace Road", CongestionPct: 20, Accidents: 0, AvgSpeedKmh: 50},
		{Name: "Surajpole", CongestionPct: 45, Accidents: 0, AvgSpeedKmh: 35},
		{Name: "Hathipole", CongestionPct: 45, Accidents: 3, AvgSpeedKmh: 18},
	}
}

func roadNames(roads []models.RoadRecord) []string {
	names := make([]string, len(roads))
	for i, rec := range roads {
		names[i] = rec.Name
	}
	return names
}

func TestFilterByBand(t *testing.T) {
	roads := testRoads()

	cases := []struct {
		band Band
		want []string
	}{
		{BandLow, []string{"MG Road", "Lake Palace Road"}},
		{BandMedium, []string{"Chetak Circle", "Surajpole", "Hathipole"}},
		{BandHigh, []string{"Fatehpura Circle"}},
		{BandAll, roadNames(roads)},
	}
	for _, tc := range cases {
		got := roadNames(FilterByBand(roads, tc.band))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("FilterByBand(%s) = %v, want %v", tc.band, got, tc.want)
		}
	}
}

func TestFilterByName(t *testing.T) {
	roads := testRoads()

	cases := []struct {
		query string
		want  []string
	}{
		{"circle", []string{"Fatehpura Circle", "Chetak Circle"}},
		{"CIRCLE", []string{"Fatehpura Circle", "Chetak Circle"}},
		{"road", []string{"MG Road", "Lake Palace Road"}},
		{"pole", []string{"Surajpole", "Hathipole"}},
		{"", roadNames(roads)},
		{"ring road", []string{}},
	}
	for _, tc := range cases {
		got := roadNames(FilterByName(roads, tc.query))
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("FilterByName(%q) = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestTopSafeRoutes(t *testing.T) {
	roads := testRoads()

	// Eligible: MG Road (30), Lake Palace Road (20), Surajpole (45),
	// ascending by congestion.
	got := roadNames(TopSafeRoutes(roads, 5))
	want := []string{"Lake Palace Road", "MG Road", "Surajpole"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopSafeRoutes(5) = %v, want %v", got, want)
	}

	got = roadNames(TopSafeRoutes(roads, 2))
	want = []string{"Lake Palace Road", "MG Road"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopSafeRoutes(2) = %v, want %v", got, want)
	}

	if got := TopSafeRoutes(roads, 0); len(got) != 0 {
		t.Errorf("TopSafeRoutes(0) = %v, want empty", roadNames(got))
	}
	if got := TopSafeRoutes(roads, -1); len(got) != 0 {
		t.Errorf("TopSafeRoutes(-1) = %v, want empty", roadNames(got))
	}
}

func TestTopSafeRoutesExcludesUnsafe(t *testing.T) {
	roads := []models.RoadRecord{
		{Name: "accident road", CongestionPct: 10, Accidents: 1},
		{Name: "busy road", CongestionPct: 50, Accidents: 0},
		{Name: "jammed road", CongestionPct: 90, Accidents: 0},
	}
	if got := TopSafeRoutes(roads, 10); len(got) != 0 {
		t.Errorf("TopSafeRoutes returned unsafe roads: %v", roadNames(got))
	}
}

func TestTopSafeRoutesStableOnTies(t *testing.T) {
	roads := []models.RoadRecord{
		{Name: "first", CongestionPct: 30, Accidents: 0},
		{Name: "second", CongestionPct: 30, Accidents: 0},
		{Name: "third", CongestionPct: 30, Accidents: 0},
	}
	got := roadNames(TopSafeRoutes(roads, 3))
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tied safe routes reordered: %v", got)
	}
}

func TestAccidentHotspots(t *testing.T) {
	roads := testRoads()

	got := roadNames(AccidentHotspots(roads))
	want := []string{"Hathipole", "Fatehpura Circle", "Chetak Circle"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("AccidentHotspots = %v, want %v", got, want)
	}
}

func TestAccidentHotspotsStableOnTies(t *testing.T) {
	roads := []models.RoadRecord{
		{Name: "quiet", Accidents: 0},
		{Name: "first", Accidents: 2},
		{Name: "second", Accidents: 2},
	}
	got := roadNames(AccidentHotspots(roads))
	want := []string{"first", "second"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tied hotspots reordered: %v", got)
	}
}

func TestQueriesDoNotMutateInput(t *testing.T) {
	roads := testRoads()
	snapshot := models.CloneRoads(roads)

	FilterByBand(roads, BandLow)
	FilterByName(roads, "circle")
	TopSafeRoutes(roads, 3)
	AccidentHotspots(roads)
	ComputeKPIs(roads)

	if !reflect.DeepEqual(roads, snapshot) {
		t.Errorf("query functions mutated the dataset:\n got %v\nwant %v", roads, snapshot)
	}
}
