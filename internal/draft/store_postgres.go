package draft

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

// PostgresStore persists drafts as JSONB payloads. Schema:
//
//	CREATE TABLE filing_drafts (
//	    id         UUID PRIMARY KEY,
//	    form_type  TEXT NOT NULL,
//	    payload    JSONB NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL,
//	    updated_at TIMESTAMPTZ NOT NULL
//	);
type PostgresStore struct {
	db    *sql.DB
	codec *payloadCodec
}

// NewPostgresStore creates a PostgreSQL-backed draft store.
func NewPostgresStore(db *sql.DB, opts ...Option) (*PostgresStore, error) {
	codec, err := codecFromOptions(opts)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db, codec: codec}, nil
}

// Save writes a draft snapshot and returns its draft ID.
func (s *PostgresStore) Save(ctx context.Context, record models.FilingRecord) (uuid.UUID, error) {
	payload, err := s.codec.encode(record)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	now := time.Now()
	query := `
		INSERT INTO filing_drafts (id, form_type, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
	`
	if _, err := s.db.ExecContext(ctx, query, id, record.FormType.String(), payload, now); err != nil {
		return uuid.Nil, fmt.Errorf("insert draft: %w", err)
	}
	return id, nil
}

// Load reads the draft snapshot for id.
func (s *PostgresStore) Load(ctx context.Context, id uuid.UUID) (models.FilingRecord, error) {
	query := `SELECT payload FROM filing_drafts WHERE id = $1`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return models.FilingRecord{}, fmt.Errorf("draft %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.FilingRecord{}, fmt.Errorf("query draft: %w", err)
	}

	return s.codec.decode(payload)
}
