package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// TestOpen_Idempotent tests that reopening an existing database succeeds.
func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifacts.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

// TestRecordArtifact_RoundTrip tests writing and listing records.
func TestRecordArtifact_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id1, err := s.RecordArtifact(ctx, "GD_Test.TestBPD:BehaviorProviderDefinition_0", 0, "abc123", 512)
	require.NoError(t, err)
	id2, err := s.RecordArtifact(ctx, "GD_Test.TestBPD:BehaviorProviderDefinition_0", 1, "def456", 64)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	artifacts, err := s.ListArtifacts(ctx)
	require.NoError(t, err)
	require.Len(t, artifacts, 2)
	assert.Equal(t, "abc123", artifacts[0].ContentHash)
	assert.Equal(t, 512, artifacts[0].SizeBytes)
	assert.NotEmpty(t, artifacts[0].CreatedAt)
}

// TestListArtifacts_Empty tests that an empty log lists as an empty slice,
// not nil.
func TestListArtifacts_Empty(t *testing.T) {
	s := openTestStore(t)

	artifacts, err := s.ListArtifacts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, artifacts)
	assert.Empty(t, artifacts)
}

// TestLatestArtifact tests history lookup for one (object, sequence) pair.
func TestLatestArtifact(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.RecordArtifact(ctx, "Obj:BPD_0", 0, "old", 1)
	require.NoError(t, err)
	_, err = s.RecordArtifact(ctx, "Obj:BPD_0", 0, "new", 2)
	require.NoError(t, err)
	_, err = s.RecordArtifact(ctx, "Obj:BPD_0", 1, "other-sequence", 3)
	require.NoError(t, err)

	latest, err := s.LatestArtifact(ctx, "Obj:BPD_0", 0)
	require.NoError(t, err)
	require.NotNil(t, latest)
	// Both rows share a second-resolution timestamp; the rowid tiebreaker
	// still resolves to the last insert.
	assert.Equal(t, "new", latest.ContentHash)

	missing, err := s.LatestArtifact(ctx, "Obj:BPD_0", 9)
	require.NoError(t, err)
	assert.Nil(t, missing)
}
