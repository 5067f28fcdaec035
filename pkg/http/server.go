package http

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	http_router "github.com/lintang-b-s/TourPlanner/pkg/http/router"
	"github.com/lintang-b-s/TourPlanner/pkg/http/router/controllers"
	http_server "github.com/lintang-b-s/TourPlanner/pkg/http/server"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Server struct {
	Log *zap.Logger
	g   *errgroup.Group
}

func NewServer(log *zap.Logger) *Server {
	return &Server{Log: log}
}

// Use. starts the http api, the websocket api and its proxy in the background. they stop when ctx is
// cancelled; Wait returns the first error.
func (s *Server) Use(
	ctx context.Context,
	log *zap.Logger,

	useRateLimit bool,
	tourService controllers.TourService,
	pointService controllers.PointService,
) (*Server, error) {
	config := http_server.ConfigFromViper()

	defaults := controllers.Defaults{
		StartID:           viper.GetInt64("START_POINT_ID"),
		CostPerKm:         viper.GetFloat64("COST_PER_KM"),
		CostPerHour:       viper.GetFloat64("COST_PER_HOUR"),
		SpeedKmh:          viper.GetFloat64("AVG_SPEED_KMH"),
		NearestRadiusKm:   viper.GetFloat64("NEAREST_RADIUS_KM"),
		SensitivityFrom:   viper.GetFloat64("SENSITIVITY_FROM"),
		SensitivityTo:     viper.GetFloat64("SENSITIVITY_TO"),
		SensitivitySample: viper.GetInt("SENSITIVITY_SAMPLES"),
	}

	api := http_router.NewAPI(log)

	g, ctx := errgroup.WithContext(ctx)
	s.g = g
	g.Go(func() error {
		return api.Run(
			ctx, config, log,
			useRateLimit, defaults, tourService, pointService,
		)
	})

	return s, nil
}

func (s *Server) Wait() error {
	if s.g == nil {
		return nil
	}
	return s.g.Wait()
}

// GracefulShutdown. blocks until SIGINT or SIGTERM.
func GracefulShutdown() os.Signal {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	return <-quit
}
