package poiparser

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	da "github.com/lintang-b-s/TourPlanner/pkg/datastructure"
	"go.uber.org/zap"
)

const poiTable = "points_of_interest"

const createPOITable = `CREATE TABLE IF NOT EXISTS points_of_interest (
	id            BIGINT PRIMARY KEY,
	name          TEXT NOT NULL,
	latitude      DOUBLE PRECISION NOT NULL,
	longitude     DOUBLE PRECISION NOT NULL,
	category      TEXT,
	rating        DOUBLE PRECISION,
	popularity    DOUBLE PRECISION,
	entry_cost    DOUBLE PRECISION,
	visit_minutes DOUBLE PRECISION
)`

type PostgresSource struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func NewPostgresSource(ctx context.Context, dsn string, log *zap.Logger) (*PostgresSource, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresSource{pool: pool, log: log}, nil
}

func (s *PostgresSource) Close() {
	s.pool.Close()
}

// Load. rows ordered by id; NULL entry_cost / visit_minutes get the same defaults as the csv loader.
func (s *PostgresSource) Load(ctx context.Context) ([]da.Point, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, latitude, longitude, COALESCE(category, ''),
		COALESCE(rating, 0), COALESCE(popularity, 0), entry_cost, visit_minutes
		FROM points_of_interest ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	raws := make([]rawPoint, 0, 64)
	for rows.Next() {
		var rp rawPoint
		if err := rows.Scan(&rp.id, &rp.name, &rp.lat, &rp.lon, &rp.category, &rp.rating, &rp.popularity,
			&rp.entryCost, &rp.visitMinutes); err != nil {
			return nil, err
		}
		raws = append(raws, rp)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.log.Info("points of interest loaded from postgres", zap.Int("count", len(raws)))
	return finalize(raws)
}

// Store. creates the table if needed and replaces its contents with points.
func (s *PostgresSource) Store(ctx context.Context, points []da.Point) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, createPOITable); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "TRUNCATE "+poiTable); err != nil {
		return err
	}

	n, err := tx.CopyFrom(ctx, pgx.Identifier{poiTable},
		[]string{"id", "name", "latitude", "longitude", "category", "rating", "popularity", "entry_cost",
			"visit_minutes"},
		pgx.CopyFromSlice(len(points), func(i int) ([]any, error) {
			p := points[i]
			return []any{p.GetID(), p.GetName(), p.GetLat(), p.GetLon(), p.GetCategory(), p.GetRating(),
				p.GetPopularity(), p.GetEntryCost(), p.GetVisitMinutes()}, nil
		}))
	if err != nil {
		return err
	}
	if int(n) != len(points) {
		return fmt.Errorf("copied %d of %d points", n, len(points))
	}
	return tx.Commit(ctx)
}
