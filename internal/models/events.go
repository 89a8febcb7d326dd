package models

import (
	"fmt"

	"github.com/lucsky/cuid"
)

const (
	EventRoadSnapshot = "RoadSnapshot"
	EventTrafficKPIs  = "TrafficKPIs"
	EventRoadAccident = "RoadAccident"
)

// Topics group the events every output destination understands.
const (
	TopicRoadSnapshots = "road_snapshot_events"
	TopicTrafficKPIs   = "traffic_kpi_events"
	TopicRoadAccidents = "road_accident_events"
)

// Every event repeats the envelope fields (eventId, timestamp,
// eventType, tick) instead of embedding a shared struct: the parquet
// schema walker only sees tagged fields, and embedding would silently
// drop the envelope columns from the files.

// RoadSnapshotEvent captures the state of one road after a tick,
// classification included, so downstream consumers never have to
// re-derive bands or grades.
type RoadSnapshotEvent struct {
	EventID       string  `json:"eventId" parquet:"name=eventId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp     int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType     string  `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Tick          int64   `json:"tick" parquet:"name=tick,type=INT64"`
	Road          string  `json:"road" parquet:"name=road,type=BYTE_ARRAY,convertedtype=UTF8"`
	Lat           float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lng           float64 `json:"lng" parquet:"name=lng,type=DOUBLE"`
	CongestionPct int32   `json:"congestion" parquet:"name=congestion,type=INT32"`
	Accidents     int32   `json:"accidents" parquet:"name=accidents,type=INT32"`
	AvgSpeedKmh   int32   `json:"averageSpeed" parquet:"name=averageSpeed,type=INT32"`
	Band          string  `json:"band" parquet:"name=band,type=BYTE_ARRAY,convertedtype=UTF8"`
	Color         string  `json:"color" parquet:"name=color,type=BYTE_ARRAY,convertedtype=UTF8"`
	SafetyGrade   string  `json:"safetyGrade" parquet:"name=safetyGrade,type=BYTE_ARRAY,convertedtype=UTF8"`
}

// TrafficKPIEvent carries the dashboard headline numbers for one tick.
type TrafficKPIEvent struct {
	EventID        string `json:"eventId" parquet:"name=eventId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp      int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType      string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Tick           int64  `json:"tick" parquet:"name=tick,type=INT64"`
	AvgCongestion  int32  `json:"avgCongestion" parquet:"name=avgCongestion,type=INT32"`
	TotalAccidents int32  `json:"totalAccidents" parquet:"name=totalAccidents,type=INT32"`
	AvgSpeed       int32  `json:"avgSpeed" parquet:"name=avgSpeed,type=INT32"`
	SafeRouteCount int32  `json:"safeRouteCount" parquet:"name=safeRouteCount,type=INT32"`
	Trend          string `json:"trend" parquet:"name=trend,type=BYTE_ARRAY,convertedtype=UTF8"`
	SafetyStatus   string `json:"safetyStatus" parquet:"name=safetyStatus,type=BYTE_ARRAY,convertedtype=UTF8"`
	RoadCount      int32  `json:"roadCount" parquet:"name=roadCount,type=INT32"`
}

// RoadAccidentEvent is emitted once per road whose accident count grew
// during a tick.
type RoadAccidentEvent struct {
	EventID       string  `json:"eventId" parquet:"name=eventId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Timestamp     int64   `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType     string  `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	Tick          int64   `json:"tick" parquet:"name=tick,type=INT64"`
	Road          string  `json:"road" parquet:"name=road,type=BYTE_ARRAY,convertedtype=UTF8"`
	Lat           float64 `json:"lat" parquet:"name=lat,type=DOUBLE"`
	Lng           float64 `json:"lng" parquet:"name=lng,type=DOUBLE"`
	Accidents     int32   `json:"accidents" parquet:"name=accidents,type=INT32"`
	CongestionPct int32   `json:"congestion" parquet:"name=congestion,type=INT32"`
}

// NewEventID returns a collision-resistant identifier for one event.
func NewEventID() string {
	return cuid.New()
}

// NewEventForTopic returns a pointer to a zero event of the type a
// topic carries, for sinks that decode messages back into structs.
func NewEventForTopic(topic string) (interface{}, error) {
	switch topic {
	case TopicRoadSnapshots:
		return new(RoadSnapshotEvent), nil
	case TopicTrafficKPIs:
		return new(TrafficKPIEvent), nil
	case TopicRoadAccidents:
		return new(RoadAccidentEvent), nil
	default:
		return nil, fmt.Errorf("unknown topic: %s", topic)
	}
}
