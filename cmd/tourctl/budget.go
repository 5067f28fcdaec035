package main

import (
	"errors"
	"fmt"

	"github.com/lintang-b-s/TourPlanner/pkg/engine/budget"
	"github.com/spf13/cobra"
)

var (
	budgetStart      int64
	budgetMaxMinutes float64
	budgetMaxCost    float64
	budgetVerbose    bool
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Greedy route maximizing popularity within a time and a cost budget",
	Long: `Build an open route from the start point, repeatedly adding the point with the best
popularity / (travel + visit + 1) ratio that keeps total minutes and total cost within budget.

Examples:
  tourctl budget --max-minutes 480 --max-cost 100
  tourctl budget --start 3 --max-minutes 240 --max-cost 0 -v`,
	RunE: runBudget,
}

func init() {
	budgetCmd.Flags().Int64Var(&budgetStart, "start", 0, "start point id (default START_POINT_ID)")
	budgetCmd.Flags().Float64Var(&budgetMaxMinutes, "max-minutes", 480, "time budget in minutes")
	budgetCmd.Flags().Float64Var(&budgetMaxCost, "max-cost", 100, "entry cost budget")
	budgetCmd.Flags().BoolVarP(&budgetVerbose, "verbose", "v", false, "print the selection log")
	rootCmd.AddCommand(budgetCmd)
}

func runBudget(cmd *cobra.Command, args []string) error {
	e, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}

	res := e.BudgetRoute(startID(cmd, budgetStart), budgetMaxMinutes, budgetMaxCost)
	out := cmd.OutOrStdout()
	if budgetVerbose {
		for _, line := range res.Log {
			fmt.Fprintln(out, line)
		}
	}
	if errors.Is(res.Err, budget.ErrStartNotFound) {
		return res.Err
	}
	if res.IsEmpty() {
		fmt.Fprintf(out, "no route: %s\n", res.Diagnostic)
		return nil
	}

	fmt.Fprintf(out, "%-4s %-32s %10s %10s %10s %10s\n", "#", "point", "travel km", "minutes", "cost", "popularity")
	for i, stop := range res.Route {
		fmt.Fprintf(out, "%-4d %-32s %10.2f %10.1f %10.2f %10.1f\n", i+1, stop.Point.GetName(), stop.TravelKm,
			stop.CumulativeMinutes, stop.CumulativeCost, stop.CumulativePopularity)
	}
	s := res.Summary
	fmt.Fprintf(out, "route:      %s\n", s.PathNames)
	fmt.Fprintf(out, "popularity: %.1f\n", s.Popularity)
	fmt.Fprintf(out, "minutes:    %.1f / %.1f\n", s.TotalMinutes, s.MaxMinutes)
	fmt.Fprintf(out, "cost:       %.2f / %.2f\n", s.TotalCost, s.MaxCost)
	return nil
}
