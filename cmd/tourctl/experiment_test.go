package main

import (
	"context"
	"testing"

	"github.com/lintang-b-s/TourPlanner/pkg/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperimentJobs(t *testing.T) {
	jobs := experimentJobs(3, 5, 2, 10)
	require.Len(t, jobs, 6)
	assert.Equal(t, 3, jobs[0].n)
	assert.Equal(t, 5, jobs[5].n)

	seen := make(map[uint64]bool)
	for _, j := range jobs {
		assert.False(t, seen[j.seed], "seed %d reused", j.seed)
		seen[j.seed] = true
	}
}

func TestSolveExperiment(t *testing.T) {
	tests := []struct {
		name        string
		n           int
		oracleMax   int
		wantVerdict string
	}{
		{"checked by oracle", 7, 8, metrics.VerdictMatch},
		{"too large for oracle", 7, 6, metrics.VerdictSkipped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row, err := solveExperiment(context.Background(), experimentJob{name: tt.name, n: tt.n, seed: 5}, tt.oracleMax)
			require.NoError(t, err)
			assert.Equal(t, tt.wantVerdict, row.Verdict)
			assert.NotEmpty(t, row.ID)
			assert.Greater(t, row.ExactCost, 0.0)
			assert.LessOrEqual(t, row.ExactCost, row.HeuristicCost+1e-9)
			assert.Greater(t, row.NodesExpanded, int64(0))
			if tt.wantVerdict == metrics.VerdictMatch {
				assert.InDelta(t, row.ExactCost, row.OracleCost, 1e-6)
			}
		})
	}
}
