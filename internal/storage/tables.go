package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// TableEntry describes a saved pattern database file.
type TableEntry struct {
	Projection string
	Path       string
	Size       uint64
	Width      uint8
	MaxDepth   uint8
	Checksum   uint32
	BuildTime  time.Duration
	BuiltAt    time.Time
}

// TableRepository records which tables have been built and where they are.
type TableRepository struct {
	db *DB
}

// NewTableRepository creates a new table repository.
func NewTableRepository(db *DB) *TableRepository {
	return &TableRepository{db: db}
}

// Record inserts or replaces the entry for e.Projection.
func (r *TableRepository) Record(e TableEntry) error {
	if e.BuiltAt.IsZero() {
		e.BuiltAt = time.Now()
	}
	_, err := r.db.Exec(`
		INSERT INTO tables (projection, path, size, width, max_depth, checksum, build_ms, built_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(projection) DO UPDATE SET
			path = excluded.path,
			size = excluded.size,
			width = excluded.width,
			max_depth = excluded.max_depth,
			checksum = excluded.checksum,
			build_ms = excluded.build_ms,
			built_at = excluded.built_at
	`, e.Projection, e.Path, int64(e.Size), int(e.Width), int(e.MaxDepth), int64(e.Checksum),
		e.BuildTime.Milliseconds(), e.BuiltAt.UTC().Format(time.RFC3339))

	if err != nil {
		return fmt.Errorf("failed to record table: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTable(row rowScanner) (*TableEntry, error) {
	var (
		e                  TableEntry
		size, checksum, ms int64
		width, maxDepth    int
		builtAtStr         string
	)
	err := row.Scan(&e.Projection, &e.Path, &size, &width, &maxDepth, &checksum, &ms, &builtAtStr)
	if err != nil {
		return nil, err
	}
	e.Size = uint64(size)
	e.Width = uint8(width)
	e.MaxDepth = uint8(maxDepth)
	e.Checksum = uint32(checksum)
	e.BuildTime = time.Duration(ms) * time.Millisecond
	e.BuiltAt, _ = time.Parse(time.RFC3339, builtAtStr)
	return &e, nil
}

// Get retrieves the entry for a projection, or nil if it was never built.
func (r *TableRepository) Get(projection string) (*TableEntry, error) {
	row := r.db.QueryRow(`
		SELECT projection, path, size, width, max_depth, checksum, build_ms, built_at
		FROM tables
		WHERE projection = ?
	`, projection)

	e, err := scanTable(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get table: %w", err)
	}
	return e, nil
}

// List retrieves all entries ordered by projection.
func (r *TableRepository) List() ([]TableEntry, error) {
	rows, err := r.db.Query(`
		SELECT projection, path, size, width, max_depth, checksum, build_ms, built_at
		FROM tables
		ORDER BY projection
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer rows.Close()

	var entries []TableEntry
	for rows.Next() {
		e, err := scanTable(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		entries = append(entries, *e)
	}
	return entries, rows.Err()
}

// Delete removes the entry for a projection.
func (r *TableRepository) Delete(projection string) error {
	_, err := r.db.Exec("DELETE FROM tables WHERE projection = ?", projection)
	if err != nil {
		return fmt.Errorf("failed to delete table: %w", err)
	}
	return nil
}

// Prune removes the entries whose file keep rejects, in one transaction,
// and returns their projections.
func (r *TableRepository) Prune(keep func(TableEntry) bool) ([]string, error) {
	entries, err := r.List()
	if err != nil {
		return nil, err
	}

	var removed []string
	err = r.db.Transaction(func(tx *sql.Tx) error {
		for _, e := range entries {
			if keep(e) {
				continue
			}
			if _, err := tx.Exec("DELETE FROM tables WHERE projection = ?", e.Projection); err != nil {
				return fmt.Errorf("failed to prune table %s: %w", e.Projection, err)
			}
			removed = append(removed, e.Projection)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
