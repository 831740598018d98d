// Package store keeps the history of compiled integrations in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"hrbridge/internal/gen"
)

// ErrNotFound is returned when no integration has the requested id.
var ErrNotFound = errors.New("integration not found")

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Summary describes a stored integration without its artifact.
type Summary struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	CustomerEmail       string    `json:"customerEmail"`
	DestinationEndpoint string    `json:"destinationEndpoint"`
	MappingCount        int       `json:"mappingCount"`
	WarningCount        int       `json:"warningCount"`
	CreatedAt           time.Time `json:"createdAt"`
}

// Integration is a stored compile result.
type Integration struct {
	Summary
	Artifact *gen.Artifact `json:"artifact"`
}

// Store is a SQLite-backed integration history.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and migrates it.
func Open(path string) (*Store, error) {
	dsn := "file::memory:?_pragma=foreign_keys(1)"

	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("creating store directory: %w", err)
		}

		dsn = fmt.Sprintf("file:%s?cache=shared&_pragma=foreign_keys(1)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	// An in-memory database lives as long as its one connection.
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating store: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveIntegration records a compiled artifact with the request it came from
// and returns the new record.
func (s *Store) SaveIntegration(ctx context.Context, req gen.IntegrationRequest, a *gen.Artifact) (*Integration, error) {
	doc, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("encoding artifact: %w", err)
	}

	rec := &Integration{
		Summary: Summary{
			ID:                  uuid.NewString(),
			Name:                a.Name,
			CustomerEmail:       req.CustomerEmail,
			DestinationEndpoint: req.DestinationEndpoint,
			MappingCount:        len(req.Mappings),
			WarningCount:        len(a.Diagnostics.Warnings),
			CreatedAt:           s.now().UTC(),
		},
		Artifact: a,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `INSERT INTO integrations
		(id, name, customer_email, destination_endpoint, mapping_count, warning_count, artifact, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Name, rec.CustomerEmail, rec.DestinationEndpoint,
		rec.MappingCount, rec.WarningCount, string(doc), rec.CreatedAt.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert integration: %w", err)
	}

	for i, m := range req.Mappings {
		var spec sql.NullString

		if m.Transformation != nil {
			b, err := json.Marshal(m.Transformation)
			if err != nil {
				return nil, fmt.Errorf("encoding transformation: %w", err)
			}

			spec = sql.NullString{String: string(b), Valid: true}
		}

		_, err = tx.ExecContext(ctx, `INSERT INTO integration_mappings
			(integration_id, position, source_path, target_path, transformation)
			VALUES (?, ?, ?, ?, ?)`,
			rec.ID, i, m.SourceField.Path, m.TargetPath, spec)
		if err != nil {
			return nil, fmt.Errorf("insert mapping %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return rec, nil
}

// GetIntegration returns the integration with the given id.
func (s *Store) GetIntegration(ctx context.Context, id string) (*Integration, error) {
	row := s.db.QueryRowContext(ctx, `SELECT
		id, name, customer_email, destination_endpoint, mapping_count, warning_count, created_at, artifact
		FROM integrations WHERE id = ?`, id)

	var (
		rec Integration
		doc string
	)

	sum, err := scanSummary(row, &doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err != nil {
		return nil, err
	}

	rec.Summary = sum
	rec.Artifact = &gen.Artifact{}

	if err := json.Unmarshal([]byte(doc), rec.Artifact); err != nil {
		return nil, fmt.Errorf("decoding artifact %s: %w", id, err)
	}

	return &rec, nil
}

// ListIntegrations returns summaries, newest first. limit <= 0 means all.
func (s *Store) ListIntegrations(ctx context.Context, limit int) ([]Summary, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `SELECT
		id, name, customer_email, destination_endpoint, mapping_count, warning_count, created_at
		FROM integrations ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()

	out := []Summary{}

	for rows.Next() {
		sum, err := scanSummary(rows, nil)
		if err != nil {
			return nil, err
		}

		out = append(out, sum)
	}

	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSummary(row scanner, artifact *string) (Summary, error) {
	var (
		sum     Summary
		created string
	)

	dest := []any{
		&sum.ID, &sum.Name, &sum.CustomerEmail, &sum.DestinationEndpoint,
		&sum.MappingCount, &sum.WarningCount, &created,
	}
	if artifact != nil {
		dest = append(dest, artifact)
	}

	if err := row.Scan(dest...); err != nil {
		return Summary{}, err
	}

	t, err := time.Parse(timeLayout, created)
	if err != nil {
		return Summary{}, fmt.Errorf("parsing created_at of %s: %w", sum.ID, err)
	}

	sum.CreatedAt = t

	return sum, nil
}
