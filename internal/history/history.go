package history

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// QueryRecord is the audit row for one processed question.
type QueryRecord struct {
	bun.BaseModel `bun:"table:query_records,alias:qr"`

	ID             int64     `bun:",pk,autoincrement"`
	Query          string    `bun:",notnull"`
	Intent         string    `bun:",notnull"`
	Success        bool      `bun:",notnull"`
	ResultCount    int       `bun:",notnull"`
	ElapsedSeconds float64   `bun:",notnull"`
	CreatedAt      time.Time `bun:",nullzero,notnull,default:current_timestamp"`
}

// Store keeps the query audit trail in SQLite via bun. Recording is
// best-effort: a failed insert is logged, never surfaced.
type Store struct {
	db *bun.DB
}

// NewStore opens the SQLite database at dsn and ensures the audit table
// exists.
func NewStore(dsn string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	bunDB := bun.NewDB(sqldb, sqlitedialect.New())

	ctx := context.Background()
	if _, err := bunDB.NewCreateTable().Model((*QueryRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to create query_records table: %w", err)
	}

	return &Store{db: bunDB}, nil
}

// Record appends one audit row.
func (s *Store) Record(ctx context.Context, record *QueryRecord) {
	if _, err := s.db.NewInsert().Model(record).Exec(ctx); err != nil {
		log.Printf("[History] Failed to record query: %v", err)
	}
}

// Recent returns the newest records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]QueryRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	var records []QueryRecord
	if err := s.db.NewSelect().Model(&records).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to load query history: %w", err)
	}
	return records, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
