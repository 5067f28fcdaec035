package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Descriptive statistics of the points of interest dataset",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	e, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}

	s := e.Summary()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "points:             %d\n", s.NumPoints)
	fmt.Fprintf(out, "mean entry cost:    %.2f\n", s.MeanEntryCost)
	fmt.Fprintf(out, "mean visit minutes: %.1f\n", s.MeanVisitMinutes)
	fmt.Fprintf(out, "mean rating:        %.2f\n", s.MeanRating)
	fmt.Fprintf(out, "mean popularity:    %.1f\n", s.MeanPopularity)
	fmt.Fprintf(out, "bounding box:       (%.5f, %.5f) - (%.5f, %.5f)\n", s.MinLat, s.MinLon, s.MaxLat, s.MaxLon)
	fmt.Fprintln(out, "categories:")
	for _, c := range s.Categories {
		fmt.Fprintf(out, "  %-24s %d\n", c.Category, c.Count)
	}
	return nil
}
