package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modkit/bpdc/internal/store"
)

func seedHistoryDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "bpdc.db")

	st, err := store.Open(dbPath)
	require.NoError(t, err)
	defer st.Close()

	ctx := context.Background()
	_, err = st.RecordArtifact(ctx, "GD_Weap_Pistol.Barrel.Pistol_Barrel_Alien:BehaviorProviderDefinition_1", 0, "aaaa", 100)
	require.NoError(t, err)
	_, err = st.RecordArtifact(ctx, "GD_Weap_Shotgun.Barrel.SG_Barrel:BehaviorProviderDefinition_0", 0, "bbbb", 200)
	require.NoError(t, err)

	return dbPath
}

func TestHistoryListsArtifacts(t *testing.T) {
	dbPath := seedHistoryDB(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "2 artifact(s)")
	assert.Contains(t, output, "GD_Weap_Pistol.Barrel.Pistol_Barrel_Alien:BehaviorProviderDefinition_1[0]")
	assert.Contains(t, output, "GD_Weap_Shotgun.Barrel.SG_Barrel:BehaviorProviderDefinition_0[0]")
}

func TestHistoryObjectFilter(t *testing.T) {
	dbPath := seedHistoryDB(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath, "--object", "GD_Weap_Shotgun.Barrel.SG_Barrel:BehaviorProviderDefinition_0"})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	artifacts, ok := data["artifacts"].([]interface{})
	require.True(t, ok)
	require.Len(t, artifacts, 1)

	first, ok := artifacts[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "bbbb", first["content_hash"])
}

func TestHistoryEmptyDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "empty.db")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewHistoryCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--db", dbPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No artifacts recorded")
}

func TestHistoryRequiresDB(t *testing.T) {
	cmd := NewHistoryCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	err := cmd.Execute()
	require.Error(t, err)
}
