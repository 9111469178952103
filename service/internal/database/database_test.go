package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jason-s-yu/riichi/service/internal/archive"
)

type call struct {
	sql  string
	args []any
}

// fakeQuerier records statements and answers QueryRow from a script.
type fakeQuerier struct {
	execs   []call
	queries []call
	rows    []fakeRow
	execErr error
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.execs = append(f.execs, call{sql, args})
	return pgconn.NewCommandTag("CREATE TABLE"), f.execErr
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.queries = append(f.queries, call{sql, args})
	if len(f.rows) == 0 {
		return fakeRow{err: pgx.ErrNoRows}
	}
	r := f.rows[0]
	f.rows = f.rows[1:]
	return r
}

type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(r.values))
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *uuid.UUID:
			*p = r.values[i].(uuid.UUID)
		case *string:
			*p = r.values[i].(string)
		case *[]byte:
			*p = r.values[i].([]byte)
		case *int:
			*p = r.values[i].(int)
		case *time.Time:
			*p = r.values[i].(time.Time)
		default:
			return fmt.Errorf("scan: unsupported destination %T", d)
		}
	}
	return nil
}

func TestMigrate(t *testing.T) {
	q := &fakeQuerier{}
	require.NoError(t, New(q).Migrate(context.Background()))
	require.Len(t, q.execs, 1)
	assert.Contains(t, q.execs[0].sql, "CREATE TABLE IF NOT EXISTS hand_records")

	q.execErr = errors.New("permission denied")
	assert.ErrorContains(t, New(q).Migrate(context.Background()), "permission denied")
}

func TestInsert(t *testing.T) {
	id := uuid.New()
	q := &fakeQuerier{rows: []fakeRow{{values: []any{id}}}}

	rec := Record{ID: id, Digest: "abc", Compression: archive.CompressionZstd, Payload: []byte{1, 2}, Steps: 7}
	got, err := New(q).Insert(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	require.Len(t, q.queries, 1)
	assert.Contains(t, q.queries[0].sql, "ON CONFLICT (digest)")
	assert.Equal(t, []any{id, "abc", "zstd", []byte{1, 2}, 7}, q.queries[0].args)
}

func TestInsertReturnsExistingID(t *testing.T) {
	existing := uuid.New()
	q := &fakeQuerier{rows: []fakeRow{{values: []any{existing}}}}

	got, err := New(q).Insert(context.Background(), Record{ID: uuid.New(), Digest: "abc"})
	require.NoError(t, err)
	assert.Equal(t, existing, got)
}

func TestGet(t *testing.T) {
	id := uuid.New()
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	q := &fakeQuerier{rows: []fakeRow{{values: []any{id, "abc", "lz4", []byte{9}, 3, created}}}}

	rec, err := New(q).Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, Record{
		ID:          id,
		Digest:      "abc",
		Compression: archive.CompressionLZ4,
		Payload:     []byte{9},
		Steps:       3,
		CreatedAt:   created,
	}, rec)
	assert.Equal(t, []any{id}, q.queries[0].args)
}

func TestGetNotFound(t *testing.T) {
	_, err := New(&fakeQuerier{}).Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetRejectsUnknownCompression(t *testing.T) {
	id := uuid.New()
	q := &fakeQuerier{rows: []fakeRow{{values: []any{id, "abc", "brotli", []byte{9}, 3, time.Now()}}}}
	_, err := New(q).Get(context.Background(), id)
	assert.ErrorContains(t, err, "brotli")
}

func TestFindByDigest(t *testing.T) {
	id := uuid.New()
	q := &fakeQuerier{rows: []fakeRow{{values: []any{id}}}}

	got, err := New(q).FindByDigest(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, id, got)
	assert.True(t, strings.Contains(q.queries[0].sql, "WHERE digest = $1"))

	_, err = New(q).FindByDigest(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
