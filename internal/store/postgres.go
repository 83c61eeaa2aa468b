package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/go-lounge-pos/internal/database"
)

// Postgres stores each collection as one JSONB row in the collections table.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Get(ctx context.Context, name string) ([]byte, error) {
	var doc []byte

	err := p.db.QueryRowContext(ctx,
		`SELECT document FROM collections WHERE name = $1`,
		name).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get collection %s: %w", name, err)
	}

	return doc, nil
}

func (p *Postgres) Put(ctx context.Context, name string, doc []byte) error {
	return database.WithRetry(ctx, p.db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO collections (name, document, version, updated_at)
			 VALUES ($1, $2::jsonb, 1, NOW())
			 ON CONFLICT (name) DO UPDATE
			 SET document = EXCLUDED.document,
			     version = collections.version + 1,
			     updated_at = NOW()`,
			name, string(doc))
		if err != nil {
			return fmt.Errorf("put collection %s: %w", name, err)
		}
		return nil
	})
}

// Version reports how many times a collection has been replaced; 0 if never written.
func (p *Postgres) Version(ctx context.Context, name string) (int, error) {
	var version int

	err := p.db.QueryRowContext(ctx,
		`SELECT version FROM collections WHERE name = $1`,
		name).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("get collection version %s: %w", name, err)
	}

	return version, nil
}

func (p *Postgres) Close() error {
	return p.db.Close()
}
