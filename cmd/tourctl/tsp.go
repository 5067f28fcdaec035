package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lintang-b-s/TourPlanner/pkg/engine"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/tsp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	tspStart   int64
	tspPoints  []int64
	tspTimeout time.Duration
)

var tspCmd = &cobra.Command{
	Use:   "tsp",
	Short: "Optimal closed tour from a start point through selected points",
	Long: `Solve the exact tour (branch and bound seeded with the nearest neighbour tour) over the start
point and the selected points, and print the tour with its search statistics.

Examples:
  tourctl tsp --start 1 --points 2,3,5,8
  tourctl tsp --source ./data/TurismoCWB.csv --points 4,6,7 --timeout 10s`,
	RunE: runTSP,
}

func init() {
	tspCmd.Flags().Int64Var(&tspStart, "start", 0, "start point id (default START_POINT_ID)")
	tspCmd.Flags().Int64SliceVar(&tspPoints, "points", nil, "ids of the points to visit")
	tspCmd.Flags().DurationVar(&tspTimeout, "timeout", 0, "search deadline, 0 for none")
	_ = tspCmd.MarkFlagRequired("points")
	rootCmd.AddCommand(tspCmd)
}

func startID(cmd *cobra.Command, flagValue int64) int64 {
	if cmd.Flags().Changed("start") {
		return flagValue
	}
	return viper.GetInt64("START_POINT_ID")
}

func searchContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func runTSP(cmd *cobra.Command, args []string) error {
	ctx, cancel := searchContext(tspTimeout)
	defer cancel()

	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}

	start := startID(cmd, tspStart)
	tour, err := e.SolveTour(ctx, start, tspPoints)
	if err != nil && !errors.Is(err, tsp.ErrSearchInterrupted) {
		return err
	}
	if err != nil {
		log.Warn("search interrupted, printing best tour found", zap.Duration("timeout", tspTimeout))
	}

	printTour(cmd, tour)
	return nil
}

func printTour(cmd *cobra.Command, tour *engine.Tour) {
	out := cmd.OutOrStdout()
	res := tour.Result
	ids := make([]int64, len(res.Path))
	for i, pos := range res.Path {
		ids[i] = tour.Subset[pos].GetID()
	}

	fmt.Fprintf(out, "%s\n", res.Name)
	fmt.Fprintf(out, "  route:           %s\n", res.PathDescription())
	fmt.Fprintf(out, "  ids:             %s\n", formatIDs(ids))
	fmt.Fprintf(out, "  cost:            %.4f km\n", res.Cost)
	fmt.Fprintf(out, "  nearest nbr:     %.4f km\n", res.HeuristicCost)
	fmt.Fprintf(out, "  nodes expanded:  %d\n", res.NodesExpanded)
	fmt.Fprintf(out, "  pruned branches: %d\n", res.PruningCount)
	fmt.Fprintf(out, "  elapsed:         %s\n", res.ElapsedTime)
	if res.Partial {
		fmt.Fprintf(out, "  partial:         search interrupted, tour may not be optimal\n")
	}
	fmt.Fprintf(out, "  polyline:        %s\n", tour.Polyline)
}
