package model

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/username/salarypredictor/src/database"
	"github.com/username/salarypredictor/src/logger"
)

const artifactSlot = 1

// SQLStore keeps the artifact in the single row of model_artifacts. It works
// with both the sqlite and postgres drivers.
type SQLStore struct {
	db     *sql.DB
	driver string
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

// OpenSQLStore opens and migrates the database, then wraps it.
func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	db, err := database.InitDB(driver, dsn)
	if err != nil {
		return nil, err
	}
	return NewSQLStore(db, driver), nil
}

func (s *SQLStore) Save(ctx context.Context, a *Artifact) error {
	payload, err := EncodeArtifact(a)
	if err != nil {
		return err
	}
	query := s.rebind(`
		INSERT INTO model_artifacts (slot, artifact_id, trained_at, payload)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			artifact_id = excluded.artifact_id,
			trained_at = excluded.trained_at,
			payload = excluded.payload,
			updated_at = CURRENT_TIMESTAMP`)
	if _, err := s.db.ExecContext(ctx, query, artifactSlot, a.ID, a.TrainedAt.Format(time.RFC3339Nano), payload); err != nil {
		return fmt.Errorf("failed to save model artifact: %w", err)
	}
	logger.L.Info("Model artifact saved", "store", s.driver, "modelID", a.ID, "bytes", len(payload))
	return nil
}

func (s *SQLStore) Load(ctx context.Context) (*Artifact, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, s.rebind(`SELECT payload FROM model_artifacts WHERE slot = ?`), artifactSlot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArtifactNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load model artifact: %w", err)
	}
	return DecodeArtifact(payload)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}

// rebind rewrites ? placeholders to $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.driver != database.DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
