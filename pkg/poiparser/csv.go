package poiparser

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"go.uber.org/zap"
)

const (
	colID = iota
	colName
	colLat
	colLon
	colCategory
	colRating
	colPopularity
	colEntryCost
	colVisitMinutes
	numColumns
)

var columnAliases = map[string]int{
	"id":               colID,
	"nome":             colName,
	"name":             colName,
	"latitude":         colLat,
	"lat":              colLat,
	"longitude":        colLon,
	"lon":              colLon,
	"categoria":        colCategory,
	"category":         colCategory,
	"avaliacao":        colRating,
	"rating":           colRating,
	"popularidade":     colPopularity,
	"popularity":       colPopularity,
	"custo_entrada":    colEntryCost,
	"entry_cost":       colEntryCost,
	"tempo_visita_min": colVisitMinutes,
	"visit_minutes":    colVisitMinutes,
}

var canonicalHeader = []string{"id", "nome", "latitude", "longitude", "categoria", "avaliacao",
	"popularidade", "custo_entrada", "tempo_visita_min"}

type CSVSource struct {
	path string
	log  *zap.Logger
}

func NewCSVSource(path string, log *zap.Logger) *CSVSource {
	return &CSVSource{path: path, log: log}
}

func (s *CSVSource) Load(ctx context.Context) ([]da.Point, error) {
	s.log.Info("reading points of interest from csv", zap.String("path", s.path))
	points, err := ParseCSV(s.path)
	if err != nil {
		return nil, err
	}
	s.log.Info("points of interest loaded", zap.Int("count", len(points)))
	return points, nil
}

// ParseCSV. reads path, transparently decompressing *.bz2 files.
func ParseCSV(path string) ([]da.Point, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".bz2") {
		bz, err := bzip2.NewReader(f, nil)
		if err != nil {
			return nil, err
		}
		defer bz.Close()
		r = bz
	}
	return ReadCSV(r)
}

/*
ReadCSV. header row first. columns are matched by name (portuguese or english), unknown columns such as
a leading pandas index ("Unnamed: 0" or empty) are ignored. id, name, latitude and longitude are
required in every row; empty entry cost / visit minutes cells are defaulted (see finalize).
*/
func ReadCSV(r io.Reader) ([]da.Point, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoPoints
		}
		return nil, err
	}

	colIdx := make([]int, numColumns)
	for i := range colIdx {
		colIdx[i] = -1
	}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if c, ok := columnAliases[h]; ok && colIdx[c] == -1 {
			colIdx[c] = i
		}
	}
	for _, c := range []int{colID, colName, colLat, colLon} {
		if colIdx[c] == -1 {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, canonicalHeader[c])
		}
	}

	raws := make([]rawPoint, 0, 64)
	line := 1
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++

		cell := func(c int) string {
			if colIdx[c] == -1 || colIdx[c] >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[colIdx[c]])
		}

		rp := rawPoint{name: cell(colName), category: cell(colCategory)}
		if rp.id, err = parseID(cell(colID)); err != nil {
			return nil, fmt.Errorf("line %d: id: %w", line, err)
		}
		if rp.lat, err = util.StringToFloat64(cell(colLat)); err != nil {
			return nil, fmt.Errorf("line %d: latitude: %w", line, err)
		}
		if rp.lon, err = util.StringToFloat64(cell(colLon)); err != nil {
			return nil, fmt.Errorf("line %d: longitude: %w", line, err)
		}
		if rp.rating, err = parseOptional(cell(colRating), 0); err != nil {
			return nil, fmt.Errorf("line %d: rating: %w", line, err)
		}
		if rp.popularity, err = parseOptional(cell(colPopularity), 0); err != nil {
			return nil, fmt.Errorf("line %d: popularity: %w", line, err)
		}
		if rp.entryCost, err = parseNullable(cell(colEntryCost)); err != nil {
			return nil, fmt.Errorf("line %d: entry cost: %w", line, err)
		}
		if rp.visitMinutes, err = parseNullable(cell(colVisitMinutes)); err != nil {
			return nil, fmt.Errorf("line %d: visit minutes: %w", line, err)
		}
		raws = append(raws, rp)
	}

	return finalize(raws)
}

// parseID. accepts "7" and the "7.0" pandas writes for float typed id columns.
func parseID(s string) (int64, error) {
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("non integral id %q", s)
	}
	return int64(f), nil
}

func isMissing(s string) bool {
	switch strings.ToLower(s) {
	case "", "nan", "null", "na":
		return true
	}
	return false
}

func parseOptional(s string, def float64) (float64, error) {
	if isMissing(s) {
		return def, nil
	}
	return util.StringToFloat64(s)
}

func parseNullable(s string) (*float64, error) {
	if isMissing(s) {
		return nil, nil
	}
	v, err := util.StringToFloat64(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteCSV. canonical header, bzip2 compressed when path ends with .bz2.
func WriteCSV(path string, points []da.Point) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var (
		w  io.Writer = f
		bz *bzip2.Writer
	)
	if strings.HasSuffix(path, ".bz2") {
		bz, err = bzip2.NewWriter(f, &bzip2.WriterConfig{})
		if err != nil {
			return err
		}
		w = bz
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(canonicalHeader); err != nil {
		return err
	}
	for _, p := range points {
		record := []string{
			strconv.FormatInt(p.GetID(), 10),
			p.GetName(),
			formatFloat(p.GetLat()),
			formatFloat(p.GetLon()),
			p.GetCategory(),
			formatFloat(p.GetRating()),
			formatFloat(p.GetPopularity()),
			formatFloat(p.GetEntryCost()),
			formatFloat(p.GetVisitMinutes()),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	if bz != nil {
		return bz.Close()
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
