package db

import (
	"context"
	"fmt"

	"github.com/dickeyy/readme-prs/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Store keeps a history of every PR the tool has listed.
type Store struct {
	pool *pgxpool.Pool
}

func Open(ctx context.Context, connString string) (*Store, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info().Msg("connected to Postgres")

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS listed_prs (
			repo TEXT NOT NULL,
			number INTEGER NOT NULL,
			title TEXT NOT NULL,
			url TEXT NOT NULL,
			state TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			last_seen_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			PRIMARY KEY (repo, number)
		);
	`)
	return err
}

const upsertPR = `
	INSERT INTO listed_prs (repo, number, title, url, state, created_at, updated_at, last_seen_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, now())
	ON CONFLICT (repo, number)
	DO UPDATE SET
		title = EXCLUDED.title,
		url = EXCLUDED.url,
		state = EXCLUDED.state,
		created_at = EXCLUDED.created_at,
		updated_at = EXCLUDED.updated_at,
		last_seen_at = EXCLUDED.last_seen_at;
`

// RecordPRs upserts prs in a single transaction.
func (s *Store) RecordPRs(ctx context.Context, prs []types.PullRequest) error {
	if len(prs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, pr := range prs {
		batch.Queue(upsertPR, pr.Repo, pr.Number, pr.Title, pr.URL, pr.State, pr.CreatedAt, pr.UpdatedAt)
	}

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("record prs: %w", err)
	}
	log.Debug().Int("count", len(prs)).Msg("recorded PR rows")
	return nil
}

// ListedPRs returns stored rows, most recently updated first.
func (s *Store) ListedPRs(ctx context.Context) ([]types.PullRequest, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT repo, number, title, url, state, created_at, updated_at
		FROM listed_prs
		ORDER BY updated_at DESC;
	`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (types.PullRequest, error) {
		var pr types.PullRequest
		err := row.Scan(&pr.Repo, &pr.Number, &pr.Title, &pr.URL, &pr.State, &pr.CreatedAt, &pr.UpdatedAt)
		return pr, err
	})
}

func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}
