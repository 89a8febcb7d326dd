package metrics

import (
	"testing"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

func TestComputeKPIsEmptyDataset(t *testing.T) {
	got := ComputeKPIs(nil)
	if got != (models.TrafficKPIs{}) {
		t.Errorf("ComputeKPIs(nil) = %+v, want zero value", got)
	}
	got = ComputeKPIs([]models.RoadRecord{})
	if got != (models.TrafficKPIs{}) {
		t.Errorf("ComputeKPIs(empty) = %+v, want zero value", got)
	}
}

func TestComputeKPIs(t *testing.T) {
	got := ComputeKPIs(testRoads())

	// congestion: (30+75+55+20+45+45)/6 = 45, speed: (45+15+25+50+35+18)/6 = 31.33
	want := models.TrafficKPIs{
		AvgCongestion:  45,
		TotalAccidents: 6,
		AvgSpeed:       31,
		SafeRouteCount: 3,
	}
	if got != want {
		t.Errorf("ComputeKPIs = %+v, want %+v", got, want)
	}
}

func TestComputeKPIsRoundsHalfUp(t *testing.T) {
	cases := []struct {
		name        string
		congestions []int
		want        int
	}{
		{"exact half rounds up", []int{1, 2}, 2},
		{"below half rounds down", []int{1, 1, 2}, 1},
		{"above half rounds up", []int{1, 2, 2}, 2},
		{"whole number untouched", []int{10, 20, 30}, 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			roads := make([]models.RoadRecord, len(tc.congestions))
			for i, c := range tc.congestions {
				roads[i] = models.RoadRecord{CongestionPct: c}
			}
			if got := ComputeKPIs(roads).AvgCongestion; got != tc.want {
				t.Errorf("AvgCongestion of %v = %d, want %d", tc.congestions, got, tc.want)
			}
		})
	}
}

func TestComputeKPIsSingleRoad(t *testing.T) {
	roads := []models.RoadRecord{
		{Name: "MG Road", CongestionPct: 42, Accidents: 1, AvgSpeedKmh: 37},
	}
	want := models.TrafficKPIs{AvgCongestion: 42, TotalAccidents: 1, AvgSpeed: 37, SafeRouteCount: 0}
	if got := ComputeKPIs(roads); got != want {
		t.Errorf("ComputeKPIs = %+v, want %+v", got, want)
	}
}

func TestTrendLabel(t *testing.T) {
	cases := []struct {
		avg  int
		want Trend
	}{
		{0, TrendFalling},
		{39, TrendFalling},
		{40, TrendNormal},
		{60, TrendNormal},
		{61, TrendRising},
		{100, TrendRising},
	}
	for _, tc := range cases {
		if got := TrendLabel(tc.avg); got != tc.want {
			t.Errorf("TrendLabel(%d) = %s, want %s", tc.avg, got, tc.want)
		}
	}
}

func TestSafetyStatusLabel(t *testing.T) {
	cases := []struct {
		total int
		want  SafetyStatus
	}{
		{0, SafetySafe},
		{1, SafetyModerate},
		{5, SafetyModerate},
		{6, SafetyCaution},
		{12, SafetyCaution},
	}
	for _, tc := range cases {
		if got := SafetyStatusLabel(tc.total); got != tc.want {
			t.Errorf("SafetyStatusLabel(%d) = %s, want %s", tc.total, got, tc.want)
		}
	}
}
