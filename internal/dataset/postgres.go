package dataset

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"civic-relevance-workers/internal/models"
)

const (
	selectProfilesSQL = `SELECT payload FROM explorer_profiles ORDER BY position`
	selectIssuesSQL   = `SELECT payload FROM explorer_issues ORDER BY position`

	upsertProfileSQL = `INSERT INTO explorer_profiles (id, position, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position, payload = EXCLUDED.payload, updated_at = now()`

	upsertIssueSQL = `INSERT INTO explorer_issues (position, title, payload, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (position) DO UPDATE SET title = EXCLUDED.title, payload = EXCLUDED.payload, updated_at = now()`
)

// PostgresStore keeps the dataset in the explorer_profiles and
// explorer_issues JSONB tables.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Name() string {
	return "postgres"
}

func (s *PostgresStore) Load(ctx context.Context) (*Dataset, error) {
	return fetchBoth(ctx, s.selectArray(selectProfilesSQL), s.selectArray(selectIssuesSQL))
}

// selectArray reassembles one JSON array from the payload column so the
// rows go through the same schema validation as a file.
func (s *PostgresStore) selectArray(query string) fetchFunc {
	return func(ctx context.Context) ([]byte, error) {
		rows, err := s.db.QueryContext(ctx, query)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		var buf bytes.Buffer
		buf.WriteByte('[')
		for n := 0; rows.Next(); n++ {
			var payload []byte
			if err := rows.Scan(&payload); err != nil {
				return nil, err
			}
			if n > 0 {
				buf.WriteByte(',')
			}
			buf.Write(payload)
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
		buf.WriteByte(']')
		return buf.Bytes(), nil
	}
}

// SaveProfiles upserts profiles in one transaction, keeping their order.
func (s *PostgresStore) SaveProfiles(ctx context.Context, profiles []*models.Profile) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i, p := range profiles {
			payload, err := json.Marshal(p)
			if err != nil {
				return fmt.Errorf("encode profile %s: %w", p.ID, err)
			}
			if _, err := tx.ExecContext(ctx, upsertProfileSQL, p.ID, i, payload); err != nil {
				return fmt.Errorf("upsert profile %s: %w", p.ID, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) SaveIssues(ctx context.Context, issues []*models.Issue) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for i, is := range issues {
			payload, err := json.Marshal(is)
			if err != nil {
				return fmt.Errorf("encode issue %d: %w", i, err)
			}
			if _, err := tx.ExecContext(ctx, upsertIssueSQL, i, is.Title, payload); err != nil {
				return fmt.Errorf("upsert issue %d: %w", i, err)
			}
		}
		return nil
	})
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
