package main

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/google/uuid"
	"github.com/lintang-b-s/TourPlanner/pkg/concurrent"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/tsp"
	"github.com/lintang-b-s/TourPlanner/pkg/geo"
	"github.com/lintang-b-s/TourPlanner/pkg/metrics"
	"github.com/lintang-b-s/TourPlanner/pkg/poiparser"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
)

var (
	experimentMinN      int
	experimentMaxN      int
	experimentInstances int
	experimentSeed      uint64
	experimentWorkers   int
	experimentOracleMax int
	experimentReport    string
)

var experimentCmd = &cobra.Command{
	Use:   "experiment",
	Short: "Solve random instances and cross check every exact tour against the oracle",
	Long: `Generate random instances for every size in [min-n, max-n], solve each with the exact solver on
a worker pool and compare the cost with the brute force oracle (sizes above oracle-max are skipped).
The rows are written to a report file; any divergence makes the command exit non zero.

Examples:
  tourctl experiment --min-n 4 --max-n 9 --instances 5
  tourctl experiment --max-n 12 --oracle-max 10 --report ./data/experiment.txt`,
	RunE: runExperiment,
}

func init() {
	experimentCmd.Flags().IntVar(&experimentMinN, "min-n", 3, "smallest instance size")
	experimentCmd.Flags().IntVar(&experimentMaxN, "max-n", 8, "largest instance size")
	experimentCmd.Flags().IntVar(&experimentInstances, "instances", 3, "instances per size")
	experimentCmd.Flags().Uint64Var(&experimentSeed, "seed", 1, "base random seed")
	experimentCmd.Flags().IntVar(&experimentWorkers, "workers", runtime.NumCPU(), "concurrent solvers")
	experimentCmd.Flags().IntVar(&experimentOracleMax, "oracle-max", 10, "largest size checked by the oracle")
	experimentCmd.Flags().StringVar(&experimentReport, "report", "./data/experiment.txt", "report output file")
	rootCmd.AddCommand(experimentCmd)
}

type experimentJob struct {
	name string
	n    int
	seed uint64
}

func experimentJobs(minN, maxN, instances int, baseSeed uint64) []experimentJob {
	jobs := make([]experimentJob, 0)
	for n := minN; n <= maxN; n++ {
		for k := 0; k < instances; k++ {
			seed := baseSeed + uint64(n)*1000 + uint64(k)
			jobs = append(jobs, experimentJob{name: fmt.Sprintf("random n=%d #%d", n, k+1), n: n, seed: seed})
		}
	}
	return jobs
}

// solveExperiment. one row: exact tour, then the oracle when the instance is small enough. every job
// runs its own solver so the statistics never mix.
func solveExperiment(ctx context.Context, job experimentJob, oracleMax int) (metrics.ExperimentRow, error) {
	rd := rand.New(rand.NewSource(job.seed))
	points := poiparser.GeneratePoints(rd, job.n, geo.NewCoordinate(-25.4284, -49.2733), 8)
	m := da.NewDistanceMatrix(points)

	row := metrics.ExperimentRow{
		ID:         uuid.NewString(),
		Name:       job.name,
		N:          job.n,
		OracleCost: math.NaN(),
		Verdict:    metrics.VerdictSkipped,
	}

	res, err := tsp.NewSolver(tsp.Options{}).SolveWithMatrix(ctx, job.name, points, m)
	if err != nil {
		return row, err
	}
	row.ExactCost = res.Cost
	row.HeuristicCost = res.HeuristicCost
	row.NodesExpanded = res.NodesExpanded
	row.PruningCount = res.PruningCount
	row.Elapsed = res.ElapsedTime

	if job.n > oracleMax {
		return row, nil
	}
	oracle, err := tsp.NewBruteForceOracle(oracleMax).Solve(ctx, m)
	if err != nil {
		return row, err
	}
	row.OracleCost = oracle.Cost
	row.Verdict = metrics.VerdictMatch
	if err := tsp.CrossCheck(res.Cost, oracle); err != nil {
		row.Verdict = metrics.VerdictDiverged
	}
	return row, nil
}

type experimentOutcome struct {
	row metrics.ExperimentRow
	err error
}

func runExperiment(cmd *cobra.Command, args []string) error {
	if experimentMinN < 2 || experimentMaxN < experimentMinN {
		return fmt.Errorf("invalid size range [%d, %d]", experimentMinN, experimentMaxN)
	}
	ctx := cmd.Context()
	jobs := experimentJobs(experimentMinN, experimentMaxN, experimentInstances, experimentSeed)
	log.Info("running experiment", zap.Int("instances", len(jobs)), zap.Int("workers", experimentWorkers))

	outcomes := concurrent.Run(experimentWorkers, jobs, func(job experimentJob) experimentOutcome {
		row, err := solveExperiment(ctx, job, experimentOracleMax)
		return experimentOutcome{row: row, err: err}
	})

	report := metrics.NewReport()
	var errs []error
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.row.Name, o.err))
			continue
		}
		report.Add(o.row)
		if o.row.Verdict == metrics.VerdictDiverged {
			log.Error("exact solver diverged from oracle", zap.String("instance", o.row.Name),
				zap.Float64("exact", o.row.ExactCost), zap.Float64("oracle", o.row.OracleCost))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return err
	}
	if err := report.WriteToFile(experimentReport); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-20s %4s %12s %12s %12s %12s %10s %s\n", "instance", "n", "exact km", "oracle km",
		"heuristic km", "nodes", "pruned", "verdict")
	for _, row := range report.GetRows() {
		fmt.Fprintf(out, "%-20s %4d %12.4f %12.4f %12.4f %12d %10d %s\n", row.Name, row.N, row.ExactCost,
			row.OracleCost, row.HeuristicCost, row.NodesExpanded, row.PruningCount, row.Verdict)
	}
	fmt.Fprintf(out, "match %d, skipped %d, diverged %d, report %s\n", report.CountVerdict(metrics.VerdictMatch),
		report.CountVerdict(metrics.VerdictSkipped), report.CountVerdict(metrics.VerdictDiverged), experimentReport)

	if n := report.CountVerdict(metrics.VerdictDiverged); n > 0 {
		return fmt.Errorf("%d instances diverged from the oracle: %w", n, tsp.ErrSolverDivergence)
	}
	return nil
}
