package main

import (
	"context"
	"errors"
	"flag"

	"github.com/lintang-b-s/TourPlanner/pkg/engine"
	"github.com/lintang-b-s/TourPlanner/pkg/engine/tsp"
	"github.com/lintang-b-s/TourPlanner/pkg/http"
	"github.com/lintang-b-s/TourPlanner/pkg/http/usecases"
	"github.com/lintang-b-s/TourPlanner/pkg/logger"
	"github.com/lintang-b-s/TourPlanner/pkg/poiparser"
	"github.com/lintang-b-s/TourPlanner/pkg/util"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	poiFile      = flag.String("poi_file", "", "points of interest source: csv(.bz2) file, osm .pbf file or postgres:// dsn (default POI_FILE)")
	useRateLimit = flag.Bool("rate_limit", false, "enable per client rate limiting (RATE_LIMIT_RPS, RATE_LIMIT_BURST)")
	tspTimeout   = flag.Duration("tsp_timeout", -1, "deadline of one exact tour search, 0 for none (default TSP_TIMEOUT)")
)

func main() {
	flag.Parse()
	if err := util.ReadConfig(); err != nil {
		panic(err)
	}
	logger, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	ctx, cleanup, err := NewContext()
	if err != nil {
		panic(err)
	}

	uri := viper.GetString("POI_FILE")
	if *poiFile != "" {
		uri = *poiFile
	}
	timeout := viper.GetDuration("TSP_TIMEOUT")
	if *tspTimeout >= 0 {
		timeout = *tspTimeout
	}

	src, err := poiparser.NewSource(ctx, uri, logger)
	if err != nil {
		logger.Fatal("opening points of interest source", zap.String("source", uri), zap.Error(err))
	}
	plannerEngine, err := engine.LoadEngine(ctx, src, engineConfig(), logger)
	if closer, ok := src.(interface{ Close() }); ok {
		closer.Close()
	}
	if err != nil {
		logger.Fatal("loading tour planner engine", zap.String("source", uri), zap.Error(err))
	}
	logger.Info("points of interest loaded", zap.Int("points", len(plannerEngine.GetPoints())),
		zap.Float64("speedKmh", plannerEngine.GetSpeed()))

	api := http.NewServer(logger)

	tourService := usecases.NewTourService(logger, plannerEngine, timeout)
	pointService := usecases.NewPointService(logger, plannerEngine, viper.GetFloat64("NEAREST_RADIUS_KM"))

	if _, err := api.Use(ctx, logger, *useRateLimit || viper.GetBool("RATE_LIMIT"), tourService,
		pointService); err != nil {
		panic(err)
	}

	go func() {
		if err := api.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("server stopped with error", zap.Error(err))
		}
	}()

	signal := http.GracefulShutdown()

	logger.Info("Tour Planner Server Stopped", zap.String("signal", signal.String()))
	cleanup()
	_ = api.Wait()
}

func engineConfig() engine.Config {
	return engine.Config{
		SpeedKmh:        viper.GetFloat64("AVG_SPEED_KMH"),
		MaxTourPoints:   viper.GetInt("MAX_TOUR_POINTS"),
		OracleMaxPoints: viper.GetInt("ORACLE_MAX_POINTS"),
		SolverOptions:   tsp.Options{},
	}
}

func NewContext() (context.Context, func(), error) {
	ctx, cancel := context.WithCancel(context.Background())
	cb := func() {
		cancel()
	}

	return ctx, cb, nil
}
