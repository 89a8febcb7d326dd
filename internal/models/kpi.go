package models

// TrafficKPIs is the dashboard's headline tuple, recomputed from the
// whole dataset after every tick. Averages are rounded half up to the
// nearest integer; an empty dataset yields the zero value.
type TrafficKPIs struct {
	AvgCongestion  int `json:"avgCongestion"`
	TotalAccidents int `json:"totalAccidents"`
	AvgSpeed       int `json:"avgSpeed"`
	SafeRouteCount int `json:"safeRouteCount"`
}
