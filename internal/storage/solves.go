package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeFormat sorts lexically in time order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Solve is one recorded run of a solver.
type Solve struct {
	SolveID        string
	CreatedAt      time.Time
	Algorithm      string
	ScrambleText   *string
	StateFacelets  string
	SolutionText   *string
	SolutionLength *int
	Expanded       uint64
	HeuristicCalls uint64
	DurationMs     int64
	Error          *string
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Create stores s with a new ID and returns it. CreatedAt defaults to now.
func (r *SolveRepository) Create(s Solve) (string, error) {
	id := uuid.New().String()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, created_at, algorithm, scramble_text, state_facelets,
			solution_text, solution_length, expanded, heuristic_calls, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, s.CreatedAt.UTC().Format(timeFormat), s.Algorithm, s.ScrambleText, s.StateFacelets,
		s.SolutionText, s.SolutionLength, int64(s.Expanded), int64(s.HeuristicCalls), s.DurationMs, s.Error)

	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

const solveColumns = `solve_id, created_at, algorithm, scramble_text, state_facelets,
	solution_text, solution_length, expanded, heuristic_calls, duration_ms, error`

func scanSolve(row rowScanner) (*Solve, error) {
	var (
		s               Solve
		createdAtStr    string
		expanded, calls int64
		length          sql.NullInt64
	)
	err := row.Scan(&s.SolveID, &createdAtStr, &s.Algorithm, &s.ScrambleText, &s.StateFacelets,
		&s.SolutionText, &length, &expanded, &calls, &s.DurationMs, &s.Error)
	if err != nil {
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(timeFormat, createdAtStr)
	s.Expanded = uint64(expanded)
	s.HeuristicCalls = uint64(calls)
	if length.Valid {
		n := int(length.Int64)
		s.SolutionLength = &n
	}
	return &s, nil
}

// Get retrieves a solve by ID, or nil if there is none.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	row := r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID)

	s, err := scanSolve(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`SELECT `+solveColumns+` FROM solves ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}

	return solves, rows.Err()
}

// Delete deletes a solve.
func (r *SolveRepository) Delete(solveID string) error {
	_, err := r.db.Exec("DELETE FROM solves WHERE solve_id = ?", solveID)
	if err != nil {
		return fmt.Errorf("failed to delete solve: %w", err)
	}
	return nil
}
