package providers

import (
	"context"
	"io"
	"math/rand"
	"os"

	"github.com/monxcode/GeoSense-Udaipur/internal/models"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// roadClassSpeeds lists the highway classes worth watching on an urban
// dashboard, with a typical free flow speed for each.
var roadClassSpeeds = map[string]int{
	"motorway":     70,
	"trunk":        60,
	"primary":      50,
	"secondary":    45,
	"tertiary":     40,
	"unclassified": 35,
	"residential":  30,
}

// OSMProvider derives a dataset from an OpenStreetMap .osm.pbf
// extract. The file is scanned twice: ways first, then the nodes they
// reference. Ways sharing a name collapse into one record positioned
// at the first segment's midpoint. Congestion and speed have no OSM
// equivalent, so they are seeded from the highway class plus noise.
type OSMProvider struct {
	Path     string
	MaxRoads int
	Seed     int64

	// When RadiusKm > 0, roads farther than that from Center are
	// skipped. Extracts usually cover far more than one city.
	Center   models.Location
	RadiusKm float64
}

func (p *OSMProvider) Name() string { return models.SourceOSM }

type osmWay struct {
	name    string
	class   string
	nodeIDs []osm.NodeID
}

func (p *OSMProvider) Load(ctx context.Context) ([]models.RoadRecord, error) {
	if p.Path == "" {
		return nil, errors.New("osm_file is not set")
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, errors.Wrap(err, "can not open osm extract")
	}
	defer f.Close()

	ways, nodesSeen, err := scanWays(ctx, f)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, errors.Wrap(err, "can not rewind osm extract")
	}
	nodes, err := scanNodes(ctx, f, nodesSeen)
	if err != nil {
		return nil, err
	}

	maxRoads := p.MaxRoads
	if maxRoads <= 0 {
		maxRoads = 25
	}
	rng := rand.New(rand.NewSource(p.Seed))

	seen := make(map[string]bool, maxRoads)
	roads := make([]models.RoadRecord, 0, maxRoads)
	for _, way := range ways {
		if seen[way.name] {
			continue
		}
		pos, ok := wayMidpoint(way, nodes)
		if !ok {
			continue
		}
		if p.RadiusKm > 0 && p.Center.DistanceKm(pos) > p.RadiusKm {
			continue
		}
		seen[way.name] = true

		speed := roadClassSpeeds[way.class] + rng.Intn(21) - 10
		if speed < models.SpeedMinKmh {
			speed = models.SpeedMinKmh
		}

		roads = append(roads, models.RoadRecord{
			Name:          way.name,
			Position:      pos,
			CongestionPct: 20 + rng.Intn(61),
			Accidents:     0,
			AvgSpeedKmh:   speed,
		})
		if len(roads) == maxRoads {
			break
		}
	}
	return roads, nil
}

func scanWays(ctx context.Context, f *os.File) ([]osmWay, map[osm.NodeID]bool, error) {
	scanner := osmpbf.New(ctx, f, 4)
	defer scanner.Close()

	var ways []osmWay
	nodesSeen := make(map[osm.NodeID]bool)
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tagMap := way.TagMap()
		class, ok := tagMap["highway"]
		if !ok {
			continue
		}
		if _, ok := roadClassSpeeds[class]; !ok {
			continue
		}
		name := tagMap["name"]
		if name == "" {
			continue
		}
		nodeIDs := make([]osm.NodeID, 0, len(way.Nodes))
		for _, node := range way.Nodes {
			nodesSeen[node.ID] = true
			nodeIDs = append(nodeIDs, node.ID)
		}
		ways = append(ways, osmWay{name: name, class: class, nodeIDs: nodeIDs})
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "error while scanning ways")
	}
	return ways, nodesSeen, nil
}

func scanNodes(ctx context.Context, f *os.File, nodesSeen map[osm.NodeID]bool) (map[osm.NodeID]models.Location, error) {
	scanner := osmpbf.New(ctx, f, 4)
	defer scanner.Close()

	nodes := make(map[osm.NodeID]models.Location, len(nodesSeen))
	for scanner.Scan() {
		obj := scanner.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if !nodesSeen[node.ID] {
			continue
		}
		nodes[node.ID] = models.Location{Lat: node.Lat, Lng: node.Lon}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "error while scanning nodes")
	}
	return nodes, nil
}

// wayMidpoint prefers the middle node; extracts clipped at a boundary
// can miss it, so any resolvable node will do.
func wayMidpoint(way osmWay, nodes map[osm.NodeID]models.Location) (models.Location, bool) {
	if len(way.nodeIDs) == 0 {
		return models.Location{}, false
	}
	if pos, ok := nodes[way.nodeIDs[len(way.nodeIDs)/2]]; ok {
		return pos, true
	}
	for _, id := range way.nodeIDs {
		if pos, ok := nodes[id]; ok {
			return pos, true
		}
	}
	return models.Location{}, false
}
