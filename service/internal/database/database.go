// Package database stores encoded hand records in PostgreSQL.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jason-s-yu/riichi/service/internal/archive"
)

// ErrNotFound is returned when no record matches.
var ErrNotFound = errors.New("hand record not found")

// Querier is the subset of pgx used by Store. *pgxpool.Pool, *pgx.Conn and
// pgx.Tx all satisfy it.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Record is one stored hand.
type Record struct {
	ID          uuid.UUID
	Digest      string // blake3 of the uncompressed CBOR
	Compression archive.Compression
	Payload     []byte // compressed CBOR
	Steps       int
	CreatedAt   time.Time
}

// Store reads and writes hand_records.
type Store struct {
	db Querier
}

// New wraps an open connection or pool.
func New(db Querier) *Store {
	return &Store{db: db}
}

// Open connects a pool to the database at url.
func Open(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS hand_records (
	id          uuid PRIMARY KEY,
	digest      text NOT NULL UNIQUE,
	compression text NOT NULL,
	payload     bytea NOT NULL,
	steps       integer NOT NULL,
	created_at  timestamptz NOT NULL DEFAULT now()
)`

// Migrate creates the hand_records table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate hand_records: %w", err)
	}
	return nil
}

// Insert stores rec and returns the id the hand is stored under. When a
// record with the same digest already exists its id is returned instead and
// nothing is written.
func (s *Store) Insert(ctx context.Context, rec Record) (uuid.UUID, error) {
	const q = `
INSERT INTO hand_records (id, digest, compression, payload, steps)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (digest) DO UPDATE SET digest = EXCLUDED.digest
RETURNING id`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, q, rec.ID, rec.Digest, string(rec.Compression), rec.Payload, rec.Steps).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert hand %s: %w", rec.ID, err)
	}
	return id, nil
}

// Get loads the record stored under id.
func (s *Store) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	const q = `
SELECT id, digest, compression, payload, steps, created_at
FROM hand_records WHERE id = $1`

	var (
		rec         Record
		compression string
	)
	err := s.db.QueryRow(ctx, q, id).Scan(&rec.ID, &rec.Digest, &compression, &rec.Payload, &rec.Steps, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, fmt.Errorf("get hand %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("get hand %s: %w", id, err)
	}
	rec.Compression, err = archive.ParseCompression(compression)
	if err != nil {
		return Record{}, fmt.Errorf("get hand %s: %w", id, err)
	}
	return rec, nil
}

// FindByDigest returns the id of the record with the given digest.
func (s *Store) FindByDigest(ctx context.Context, digest string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.db.QueryRow(ctx, `SELECT id FROM hand_records WHERE digest = $1`, digest).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("find digest %s: %w", digest, err)
	}
	return id, nil
}
