package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"marketTags/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS market_tags (
	contract_address TEXT PRIMARY KEY,
	public_name_tag  TEXT NOT NULL,
	project_name     TEXT NOT NULL,
	website_link     TEXT NOT NULL,
	public_note      TEXT NOT NULL,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS tagger_state (
	chain_id       TEXT PRIMARY KEY,
	last_timestamp BIGINT NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Store provides Postgres persistence for tags and cursor state.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the market_tags and tagger_state tables if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// PutTags inserts or updates tags keyed by contract address.
func (s *Store) PutTags(ctx context.Context, tags []model.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, tag := range tags {
		batch.Queue(`
			INSERT INTO market_tags (
				contract_address, public_name_tag, project_name, website_link, public_note, created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, now(), now())
			ON CONFLICT (contract_address)
			DO UPDATE SET
				public_name_tag = EXCLUDED.public_name_tag,
				project_name = EXCLUDED.project_name,
				website_link = EXCLUDED.website_link,
				public_note = EXCLUDED.public_note,
				updated_at = now()
		`,
			tag.ContractAddress,
			tag.PublicNameTag,
			tag.ProjectName,
			tag.UIWebsiteLink,
			tag.PublicNote,
		)
	}

	br := s.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range tags {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("upsert tag: %w", err)
		}
	}
	return nil
}

// listTags returns stored tags whose address starts with prefix, ordered by address.
func (s *Store) listTags(ctx context.Context, prefix string) ([]model.Tag, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT contract_address, public_name_tag, project_name, website_link, public_note
		FROM market_tags
		WHERE contract_address LIKE $1 || '%'
		ORDER BY contract_address
	`, prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]model.Tag, 0)
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ContractAddress, &tag.PublicNameTag, &tag.ProjectName, &tag.UIWebsiteLink, &tag.PublicNote); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// LoadCursor returns the stored cursor for a chain.
func (s *Store) LoadCursor(ctx context.Context, chainID string) (uint64, bool, error) {
	if chainID == "" {
		return 0, false, fmt.Errorf("chain id required")
	}
	var ts int64
	row := s.pool.QueryRow(ctx, `SELECT last_timestamp FROM tagger_state WHERE chain_id=$1`, chainID)
	if err := row.Scan(&ts); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("load cursor: %w", err)
	}
	return uint64(ts), true, nil
}

// SaveCursor stores the cursor for a chain. A lower cursor than the one
// already stored is ignored.
func (s *Store) SaveCursor(ctx context.Context, chainID string, ts uint64) error {
	if chainID == "" {
		return fmt.Errorf("chain id required")
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO tagger_state (chain_id, last_timestamp, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (chain_id) DO UPDATE
		SET last_timestamp = GREATEST(tagger_state.last_timestamp, EXCLUDED.last_timestamp),
			updated_at = now()
	`, chainID, int64(ts))
	if err != nil {
		return fmt.Errorf("save cursor: %w", err)
	}
	return nil
}
