package poiparser

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const turismoCSV = `Unnamed: 0,id,nome,latitude,longitude,categoria,avaliacao,popularidade,custo_entrada,tempo_visita_min
0,1,Jardim Botanico,-25.4431,-49.2390,Parque,4.7,95,,60
1,2,Museu Oscar Niemeyer,-25.4101,-49.2672,Museu,4.8,90,30,120
2,3,Opera de Arame,-25.3847,-49.2762,Cultura,4.6,80,0,
3,4,Largo da Ordem,-25.4275,-49.2713,Historico,4.5,70,0,90
`

func TestReadCSV(t *testing.T) {
	points, err := ReadCSV(strings.NewReader(turismoCSV))
	require.NoError(t, err)
	require.Len(t, points, 4)

	testCases := []struct {
		name      string
		idx       int
		wantID    int64
		wantName  string
		wantCost  float64
		wantVisit float64
	}{
		{name: "missing entry cost is free", idx: 0, wantID: 1, wantName: "Jardim Botanico", wantCost: 0, wantVisit: 60},
		{name: "complete row", idx: 1, wantID: 2, wantName: "Museu Oscar Niemeyer", wantCost: 30, wantVisit: 120},
		{name: "missing visit minutes is the median", idx: 2, wantID: 3, wantName: "Opera de Arame", wantCost: 0, wantVisit: 90},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			p := points[tt.idx]
			assert.Equal(t, tt.wantID, p.GetID())
			assert.Equal(t, tt.wantName, p.GetName())
			assert.Equal(t, tt.wantCost, p.GetEntryCost())
			assert.Equal(t, tt.wantVisit, p.GetVisitMinutes())
		})
	}
	assert.Equal(t, "Museu", points[1].GetCategory())
	assert.Equal(t, 4.8, points[1].GetRating())
}

func TestReadCSVEnglishHeader(t *testing.T) {
	in := "id,name,lat,lon,category,rating,popularity,entry_cost,visit_minutes\n7.0,Tower,-25.4,-49.3,View,4,50,15,40\n"
	points, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, int64(7), points[0].GetID())
	assert.Equal(t, 40.0, points[0].GetVisitMinutes())
}

func TestReadCSVErrors(t *testing.T) {
	testCases := []struct {
		name    string
		in      string
		wantErr error
	}{
		{name: "missing latitude column", in: "id,nome,longitude\n1,a,2\n", wantErr: ErrMissingColumn},
		{name: "duplicate id", in: "id,nome,latitude,longitude\n1,a,0,0\n1,b,1,1\n", wantErr: ErrDuplicateID},
		{name: "no rows", in: "id,nome,latitude,longitude\n", wantErr: ErrNoPoints},
		{name: "empty input", in: "", wantErr: ErrNoPoints},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in))
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := ReadCSV(strings.NewReader("id,nome,latitude,longitude\n1,a,north,0\n"))
	require.Error(t, err)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	points, err := ReadCSV(strings.NewReader(turismoCSV))
	require.NoError(t, err)

	for _, name := range []string{"points.csv", "points.csv.bz2"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, WriteCSV(path, points))

			got, err := NewCSVSource(path, zap.NewNop()).Load(context.Background())
			require.NoError(t, err)
			require.Len(t, got, len(points))
			for i := range points {
				assert.Equal(t, points[i], got[i])
			}
		})
	}
}

func TestNewSourceKind(t *testing.T) {
	src, err := NewSource(context.Background(), "./data/TurismoCWB.csv", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &CSVSource{}, src)

	src, err = NewSource(context.Background(), "./data/curitiba.osm.pbf", zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &OsmPOIParser{}, src)
}

func TestFinalizeAllVisitMissing(t *testing.T) {
	points, err := finalize([]rawPoint{{id: 1, name: "a"}, {id: 2, name: "b"}})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0}, []float64{points[0].GetVisitMinutes(), points[1].GetVisitMinutes()})
	assert.IsType(t, da.Point{}, points[0])
}
