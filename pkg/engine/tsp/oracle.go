package tsp

import (
	"context"
	"fmt"
	"math"
	"time"

	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
)

const (
	StatusOptimal     = "Optimal"
	StatusInterrupted = "Interrupted"

	defaultBruteForceMaxN = 11
)

// OracleResult. independent reference answer for the same point subset.
type OracleResult struct {
	Cost    float64
	Path    []int
	Elapsed time.Duration
	Status  string
}

// Oracle. any exact reference solver the branch and bound can be validated against.
type Oracle interface {
	Name() string
	Solve(ctx context.Context, m *da.DistanceMatrix) (OracleResult, error)
}

// BruteForceOracle. enumerates all (n-1)! orderings of positions 1..n-1.
type BruteForceOracle struct {
	maxN int
}

func NewBruteForceOracle(maxN int) *BruteForceOracle {
	if maxN <= 0 {
		maxN = defaultBruteForceMaxN
	}
	return &BruteForceOracle{maxN: maxN}
}

func (o *BruteForceOracle) Name() string {
	return "brute-force"
}

func (o *BruteForceOracle) Solve(ctx context.Context, m *da.DistanceMatrix) (OracleResult, error) {
	n := m.Size()
	if n < 2 {
		return OracleResult{}, ErrInsufficientPoints
	}
	if n > o.maxN {
		return OracleResult{}, fmt.Errorf("%w: n=%d, limit %d", ErrOracleTooLarge, n, o.maxN)
	}
	start := time.Now()
	cost, path, err := BruteForce(ctx, m)
	res := OracleResult{
		Cost:    cost,
		Path:    path,
		Elapsed: time.Since(start),
		Status:  StatusOptimal,
	}
	if err != nil {
		res.Status = StatusInterrupted
		return res, err
	}
	return res, nil
}

// BruteForce. cheapest closed tour fixing position 0, over orderings of 1..n-1 in lexicographic
// order; the first strictly cheapest one is kept.
func BruteForce(ctx context.Context, m *da.DistanceMatrix) (float64, []int, error) {
	n := m.Size()
	if n < 2 {
		return 0, nil, ErrInsufficientPoints
	}

	perm := make([]int, n-1)
	for i := range perm {
		perm[i] = i + 1
	}

	bestCost := math.Inf(1)
	bestPath := make([]int, n+1)
	tour := make([]int, n+1)

	for iter := 0; ; iter++ {
		if iter%4096 == 0 && ctx != nil && ctx.Err() != nil {
			return bestCost, bestPath, ErrSearchInterrupted
		}

		tour[0] = 0
		copy(tour[1:n], perm)
		tour[n] = 0
		if c := da.TourCost(m, tour); c < bestCost {
			bestCost = c
			copy(bestPath, tour)
		}

		if !nextPermutation(perm) {
			break
		}
	}
	return bestCost, bestPath, nil
}

// nextPermutation. rearranges a into its lexicographic successor, false when a is the last one.
func nextPermutation(a []int) bool {
	i := len(a) - 2
	for i >= 0 && a[i] >= a[i+1] {
		i--
	}
	if i < 0 {
		return false
	}
	j := len(a) - 1
	for a[j] <= a[i] {
		j--
	}
	a[i], a[j] = a[j], a[i]
	for l, r := i+1, len(a)-1; l < r; l, r = l+1, r-1 {
		a[l], a[r] = a[r], a[l]
	}
	return true
}

// CrossCheck. the exact cost must match the oracle within util.AllClose tolerance; any mismatch is
// reported as ErrSolverDivergence.
func CrossCheck(exactCost float64, oracle OracleResult) error {
	if !util.AllClose(exactCost, oracle.Cost) {
		return fmt.Errorf("%w: exact %.9f km, oracle %.9f km", ErrSolverDivergence, exactCost, oracle.Cost)
	}
	return nil
}
