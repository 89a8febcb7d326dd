package models

// Field ranges enforced by the simulation. Dataset sources are allowed
// to deliver values outside these bounds; clamping happens at mutation
// time only.
const (
	CongestionMin = 0
	CongestionMax = 100

	SpeedMinKmh = 5
	SpeedMaxKmh = 80

	MaxAccidents = 3
)

// RoadRecord is one monitored road segment and its live traffic state.
// Name is unique within a dataset and Position never changes after
// load; the three numeric fields are mutated in place by the
// simulation tick.
type RoadRecord struct {
	Name          string   `json:"road"`
	Position      Location `json:"location"`
	CongestionPct int      `json:"congestion"`
	Accidents     int      `json:"accidents"`
	AvgSpeedKmh   int      `json:"averageSpeed"`
}

// CloneRoads returns an independent copy of a dataset so callers can
// hand snapshots out while the live slice keeps mutating.
func CloneRoads(roads []RoadRecord) []RoadRecord {
	if roads == nil {
		return nil
	}
	out := make([]RoadRecord, len(roads))
	copy(out, roads)
	return out
}
