package poiparser

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
)

func TestNodeToPOI(t *testing.T) {
	testCases := []struct {
		name         string
		tags         osm.Tags
		wantOK       bool
		wantCategory string
		wantVisit    float64
		wantCost     float64
	}{
		{
			name:         "museum with fee",
			tags:         osm.Tags{{Key: "name", Value: "Museu Paranaense"}, {Key: "tourism", Value: "museum"}, {Key: "fee", Value: "yes"}, {Key: "charge", Value: "12,50 BRL"}},
			wantOK:       true,
			wantCategory: "museum",
			wantVisit:    90,
			wantCost:     12.5,
		},
		{
			name:         "park",
			tags:         osm.Tags{{Key: "name", Value: "Parque Barigui"}, {Key: "leisure", Value: "park"}},
			wantOK:       true,
			wantCategory: "park",
			wantVisit:    60,
		},
		{
			name:   "hotel is not a point of interest",
			tags:   osm.Tags{{Key: "name", Value: "Hotel"}, {Key: "tourism", Value: "hotel"}},
			wantOK: false,
		},
		{
			name:   "unnamed attraction",
			tags:   osm.Tags{{Key: "tourism", Value: "attraction"}},
			wantOK: false,
		},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			node := &osm.Node{ID: 42, Lat: -25.43, Lon: -49.27, Tags: tt.tags}
			rp, ok := nodeToPOI(node)
			assert.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, int64(42), rp.id)
			assert.Equal(t, tt.wantCategory, rp.category)
			assert.Equal(t, tt.wantVisit, *rp.visitMinutes)
			assert.Equal(t, tt.wantCost, *rp.entryCost)
			assert.LessOrEqual(t, rp.popularity, 100.0)
		})
	}
}
