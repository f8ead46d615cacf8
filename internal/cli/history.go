package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit/bpdc/internal/store"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath string
	Object string // optional - filter to one object path
}

// HistoryResult holds the artifact listing.
type HistoryResult struct {
	Artifacts []ArtifactRecord `json:"artifacts"`
}

// ArtifactRecord is one artifact row in CLI output.
type ArtifactRecord struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	Sequence    int    `json:"sequence"`
	ContentHash string `json:"content_hash"`
	SizeBytes   int    `json:"size_bytes"`
	CreatedAt   string `json:"created_at"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded compilation artifacts",
		Long: `List the artifacts recorded by compile --db, oldest first.

Examples:
  bpdc history --db ./bpdc.db
  bpdc history --db ./bpdc.db --object GD_Weap_AssaultRifle.Barrel.AR_Barrel:BehaviorProviderDefinition_0
  bpdc history --db ./bpdc.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Object, "object", "", "filter to one object path")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	st, err := store.Open(opts.DBPath)
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	artifacts, err := st.ListArtifacts(context.Background())
	if err != nil {
		_ = formatter.Error(ErrCodeDatabase, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to list artifacts", err)
	}

	result := &HistoryResult{Artifacts: make([]ArtifactRecord, 0, len(artifacts))}
	for _, a := range artifacts {
		if opts.Object != "" && a.Object != opts.Object {
			continue
		}
		result.Artifacts = append(result.Artifacts, ArtifactRecord{
			ID:          a.ID,
			Object:      a.Object,
			Sequence:    a.Sequence,
			ContentHash: a.ContentHash,
			SizeBytes:   a.SizeBytes,
			CreatedAt:   a.CreatedAt,
		})
	}

	return outputHistory(formatter, result)
}

// outputHistory outputs the artifact listing.
func outputHistory(formatter *OutputFormatter, result *HistoryResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	if len(result.Artifacts) == 0 {
		fmt.Fprintln(formatter.Writer, "No artifacts recorded")
		return nil
	}

	fmt.Fprintf(formatter.Writer, "%d artifact(s)\n\n", len(result.Artifacts))
	for _, a := range result.Artifacts {
		fmt.Fprintf(formatter.Writer, "%s  %s[%d]\n", a.CreatedAt, a.Object, a.Sequence)
		fmt.Fprintf(formatter.Writer, "  id %s  hash %s  %d byte(s)\n", a.ID, shortHash(a.ContentHash), a.SizeBytes)
	}
	return nil
}

// shortHash truncates a content hash for display.
func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
