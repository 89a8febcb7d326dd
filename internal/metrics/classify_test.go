package metrics

import (
	"testing"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
)

func TestCongestionLevel(t *testing.T) {
	cases := []struct {
		pct  int
		want Band
	}{
		{0, BandLow},
		{39, BandLow},
		{40, BandMedium},
		{55, BandMedium},
		{70, BandMedium},
		{71, BandHigh},
		{85, BandHigh},
		{100, BandHigh},
		{-10, BandLow},
		{140, BandHigh},
	}
	for _, tc := range cases {
		if got := CongestionLevel(tc.pct); got != tc.want {
			t.Errorf("CongestionLevel(%d) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestCongestionLevelCoversWholeRange(t *testing.T) {
	for pct := 0; pct <= 100; pct++ {
		switch CongestionLevel(pct) {
		case BandLow, BandMedium, BandHigh:
		default:
			t.Fatalf("CongestionLevel(%d) produced no band", pct)
		}
	}
}

func TestCongestionColor(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{10, ColorLow},
		{40, ColorMedium},
		{70, ColorMedium},
		{90, ColorHigh},
	}
	for _, tc := range cases {
		if got := CongestionColor(tc.pct); got != tc.want {
			t.Errorf("CongestionColor(%d) = %s, want %s", tc.pct, got, tc.want)
		}
	}
}

func TestParseBand(t *testing.T) {
	cases := []struct {
		input   string
		want    Band
		wantErr bool
	}{
		{"", BandAll, false},
		{"all", BandAll, false},
		{"low", BandLow, false},
		{"medium", BandMedium, false},
		{"high", BandHigh, false},
		{"HIGH", "", true},
		{"severe", "", true},
	}
	for _, tc := range cases {
		got, err := ParseBand(tc.input)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseBand(%q) expected error, got %s", tc.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseBand(%q) unexpected error: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseBand(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}
}

func TestSafetyGrade(t *testing.T) {
	cases := []struct {
		name       string
		congestion int
		accidents  int
		want       Grade
	}{
		{"clear quiet road", 35, 0, GradeA},
		{"no accidents just under cut", 49, 0, GradeA},
		{"no accidents at fifty", 50, 0, GradeB},
		{"one accident moderate", 69, 1, GradeB},
		{"no accidents but jammed", 70, 0, GradeC},
		{"two accidents quiet road", 10, 2, GradeC},
		{"gridlocked with three accidents", 85, 3, GradeD},
		{"three accidents empty road", 0, 3, GradeD},
		{"accident count beyond cap", 0, 5, GradeD},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := models.RoadRecord{CongestionPct: tc.congestion, Accidents: tc.accidents}
			if got := SafetyGrade(rec); got != tc.want {
				t.Errorf("SafetyGrade(congestion=%d, accidents=%d) = %s, want %s",
					tc.congestion, tc.accidents, got, tc.want)
			}
		})
	}
}
