package poiparser

import (
	"context"
	"math"
	"os"
	"regexp"
	"strconv"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"
)

// default visit duration (minutes) per accepted category
var acceptedTourismType = map[string]float64{
	"attraction": 60,
	"museum":     90,
	"viewpoint":  30,
	"gallery":    60,
	"zoo":        150,
	"theme_park": 180,
	"artwork":    15,
}

const parkVisitMinutes = 60

var chargeNumber = regexp.MustCompile(`[0-9]+(?:[.,][0-9]+)?`)

// OsmPOIParser. named tourism=* and leisure=park nodes of an OpenStreetMap pbf extract.
type OsmPOIParser struct {
	mapFile string
	log     *zap.Logger
}

func NewOsmPOIParser(mapFile string, log *zap.Logger) *OsmPOIParser {
	return &OsmPOIParser{mapFile: mapFile, log: log}
}

func (p *OsmPOIParser) Load(ctx context.Context) ([]da.Point, error) {
	return p.Parse(ctx)
}

func (p *OsmPOIParser) Parse(ctx context.Context) ([]da.Point, error) {
	f, err := os.Open(p.mapFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p.log.Info("scanning openstreetmap nodes for points of interest", zap.String("mapFile", p.mapFile))

	scanner := osmpbf.New(ctx, f, 0)
	scanner.SkipWays = true
	scanner.SkipRelations = true
	defer scanner.Close()

	raws := make([]rawPoint, 0, 128)
	countNodes := 0
	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		countNodes++
		if countNodes%1000000 == 0 {
			p.log.Sugar().Infof("scanning openstreetmap nodes: %d...", countNodes)
		}

		if rp, ok := nodeToPOI(node); ok {
			raws = append(raws, rp)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	p.log.Info("openstreetmap points of interest found", zap.Int("count", len(raws)))
	return finalize(raws)
}

// nodeToPOI. popularity grows with how well mapped the node is (number of tags, wiki links), capped
// at 100. OSM has no ratings so rating is 0.
func nodeToPOI(node *osm.Node) (rawPoint, bool) {
	name := node.Tags.Find("name")
	if name == "" {
		return rawPoint{}, false
	}

	category := ""
	visit := 0.0
	if tourism := node.Tags.Find("tourism"); tourism != "" {
		minutes, ok := acceptedTourismType[tourism]
		if !ok {
			return rawPoint{}, false
		}
		category, visit = tourism, minutes
	} else if node.Tags.Find("leisure") == "park" {
		category, visit = "park", parkVisitMinutes
	} else {
		return rawPoint{}, false
	}

	popularity := 5.0 * float64(len(node.Tags))
	if node.Tags.Find("wikidata") != "" {
		popularity += 20
	}
	if node.Tags.Find("wikipedia") != "" {
		popularity += 10
	}
	popularity = math.Min(popularity, 100)

	entryCost := 0.0
	if node.Tags.Find("fee") == "yes" {
		if m := chargeNumber.FindString(node.Tags.Find("charge")); m != "" {
			if v, err := strconv.ParseFloat(commaToDot(m), 64); err == nil {
				entryCost = v
			}
		}
	}

	return rawPoint{
		id:           int64(node.ID),
		name:         name,
		lat:          node.Lat,
		lon:          node.Lon,
		category:     category,
		popularity:   popularity,
		entryCost:    &entryCost,
		visitMinutes: &visit,
	}, true
}

func commaToDot(s string) string {
	b := []byte(s)
	for i := range b {
		if b[i] == ',' {
			b[i] = '.'
		}
	}
	return string(b)
}
