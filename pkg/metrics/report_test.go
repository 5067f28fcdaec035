package metrics

import (
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportFile(t *testing.T) {
	report := NewReport()
	report.Add(ExperimentRow{ID: "a1", Name: "subset 1", N: 5, ExactCost: 12.5, OracleCost: 12.5,
		HeuristicCost: 13.25, NodesExpanded: 40, PruningCount: 11, Elapsed: 3 * time.Millisecond,
		Verdict: VerdictMatch})
	report.Add(ExperimentRow{ID: "a2", Name: "subset-2", N: 12, ExactCost: 30.125, OracleCost: math.NaN(),
		HeuristicCost: 33, NodesExpanded: 90000, PruningCount: 4000, Elapsed: time.Second,
		Verdict: VerdictSkipped})

	filename := filepath.Join(t.TempDir(), "report.txt")
	require.NoError(t, report.WriteToFile(filename))

	got, err := ReadFromFile(filename)
	require.NoError(t, err)
	rows := got.GetRows()
	require.Len(t, rows, 2)

	assert.Equal(t, "subset_1", rows[0].Name)
	assert.Equal(t, 12.5, rows[0].OracleCost)
	assert.Equal(t, 3*time.Millisecond, rows[0].Elapsed)
	assert.Equal(t, int64(90000), rows[1].NodesExpanded)
	assert.True(t, math.IsNaN(rows[1].OracleCost))
	assert.Equal(t, 1, got.CountVerdict(VerdictSkipped))
}

func TestReadFromFileInvalid(t *testing.T) {
	_, err := ReadFromFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
}
