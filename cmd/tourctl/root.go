package main

import (
	"context"
	"strconv"
	"strings"

	"github.com/lintang-b-s/TourPlanner/pkg/engine"
	"github.com/lintang-b-s/TourPlanner/pkg/logger"
	"github.com/lintang-b-s/TourPlanner/pkg/poiparser"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var log = zap.NewNop()

var rootCmd = &cobra.Command{
	Use:   "tourctl",
	Short: "Plan tours over points of interest from the command line",
	Long: `tourctl loads a points of interest dataset (csv, csv.bz2, osm .pbf or a postgres:// dsn)
and runs the planner on it: exact tours, budget constrained routes, oracle cross checks and
experiments over random instances.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := util.ReadConfig(); err != nil {
			return err
		}
		var err error
		log, err = logger.New()
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().String("source", "", "points of interest source (default POI_FILE)")
	rootCmd.PersistentFlags().Float64("speed", 0, "average travel speed in km/h (default AVG_SPEED_KMH)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (default LOG_LEVEL)")

	_ = viper.BindPFlag("POI_FILE", rootCmd.PersistentFlags().Lookup("source"))
	_ = viper.BindPFlag("AVG_SPEED_KMH", rootCmd.PersistentFlags().Lookup("speed"))
	_ = viper.BindPFlag("LOG_LEVEL", rootCmd.PersistentFlags().Lookup("log-level"))
}

func engineConfig() engine.Config {
	cfg := engine.DefaultConfig()
	if v := viper.GetFloat64("AVG_SPEED_KMH"); v > 0 {
		cfg.SpeedKmh = v
	}
	cfg.MaxTourPoints = viper.GetInt("MAX_TOUR_POINTS")
	cfg.OracleMaxPoints = viper.GetInt("ORACLE_MAX_POINTS")
	return cfg
}

// loadEngine. engine over the configured source; the source is closed once loaded.
func loadEngine(ctx context.Context) (*engine.Engine, error) {
	uri := viper.GetString("POI_FILE")
	src, err := poiparser.NewSource(ctx, uri, log)
	if err != nil {
		return nil, err
	}
	if closer, ok := src.(interface{ Close() }); ok {
		defer closer.Close()
	}
	return engine.LoadEngine(ctx, src, engineConfig(), log)
}

func formatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
