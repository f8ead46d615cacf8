package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Artifact is one row of the artifact log.
type Artifact struct {
	ID          string
	Object      string
	Sequence    int
	ContentHash string
	SizeBytes   int
	CreatedAt   string
}

// RecordArtifact appends a generation record and returns its id.
func (s *Store) RecordArtifact(ctx context.Context, object string, sequence int, contentHash string, sizeBytes int) (string, error) {
	id := uuid.New().String()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO artifacts (id, object, sequence, content_hash, size_bytes)
		VALUES (?, ?, ?, ?, ?)
	`, id, object, sequence, contentHash, sizeBytes)
	if err != nil {
		return "", fmt.Errorf("record artifact: %w", err)
	}
	return id, nil
}

// ListArtifacts returns all records, oldest first. The rowid tiebreaker
// keeps insertion order when timestamps collide.
//
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) ListArtifacts(ctx context.Context) ([]Artifact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, object, sequence, content_hash, size_bytes, created_at
		FROM artifacts
		ORDER BY created_at ASC, rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	artifacts := []Artifact{}
	for rows.Next() {
		var a Artifact
		if err := rows.Scan(&a.ID, &a.Object, &a.Sequence, &a.ContentHash, &a.SizeBytes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		artifacts = append(artifacts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate artifacts: %w", err)
	}
	return artifacts, nil
}

// LatestArtifact returns the most recent record for an (object, sequence)
// pair, or (nil, nil) when none exists.
func (s *Store) LatestArtifact(ctx context.Context, object string, sequence int) (*Artifact, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, object, sequence, content_hash, size_bytes, created_at
		FROM artifacts
		WHERE object = ? AND sequence = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`, object, sequence)

	var a Artifact
	err := row.Scan(&a.ID, &a.Object, &a.Sequence, &a.ContentHash, &a.SizeBytes, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest artifact: %w", err)
	}
	return &a, nil
}
