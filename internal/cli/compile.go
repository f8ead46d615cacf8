package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/modkit/bpdc/internal/linearize"
	"github.com/modkit/bpdc/internal/render"
	"github.com/modkit/bpdc/internal/store"
)

// CompileOptions holds flags for the compile command.
type CompileOptions struct {
	*RootOptions
	Output string // output file path
	OutDir string // output directory, filename derived from the object path
	DBPath string // optional artifact database
	Inline bool   // force whole-array VariableData output
}

// CompileResult holds a summary of the compiled artifact.
type CompileResult struct {
	Object      string `json:"object"`
	Sequence    int    `json:"sequence"`
	Events      int    `json:"events"`
	Behaviors   int    `json:"behaviors"`
	Variables   int    `json:"variables"`
	ContentHash string `json:"content_hash"`
	SizeBytes   int    `json:"size_bytes"`
	OutputFile  string `json:"output_file,omitempty"`
	ArtifactID  string `json:"artifact_id,omitempty"`
	Commands    string `json:"commands,omitempty"` // set when no output file is written
}

// NewCompileCommand creates the compile command.
func NewCompileCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompileOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compile <def-file>",
		Short: "Compile a definition file to console commands",
		Long: `Compile a behavior sequence definition to engine console commands.

The compiler reads a YAML or CUE definition, assembles the behavior
graph, flattens it into the engine's array layout, and emits the set
commands that install it on the target object.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors - we handle our own error output
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file path")
	cmd.Flags().StringVar(&opts.OutDir, "out-dir", "", "output directory (filename derived from the object path)")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the artifact in this SQLite database")
	cmd.Flags().BoolVar(&opts.Inline, "inline-variables", false, "emit VariableData as one whole-array command")

	return cmd
}

func runCompile(opts *CompileOptions, defPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	doc, builder, err := loadAndBuild(defPath)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	formatter.VerboseLog("Loaded %s: %d variable(s), %d behavior(s), %d event(s)",
		defPath, len(builder.Variables()), len(builder.Behaviors()), len(builder.Events()))

	layout, err := linearize.Run(builder)
	if err != nil {
		return outputCompileError(formatter, err)
	}

	formatter.VerboseLog("Flattened %d behavior record(s), %d behavior link(s), %d variable link(s)",
		len(layout.BehaviorRecords), len(layout.BehaviorLinkRecords), len(layout.VariableLinkRecords))

	renderOpts := render.Options{InlineVariableData: doc.InlineVariableData || opts.Inline}
	var buf bytes.Buffer
	if err := render.Render(&buf, doc.Object, doc.Sequence, layout, builder.Variables(), renderOpts); err != nil {
		return outputCompileError(formatter, err)
	}

	result := &CompileResult{
		Object:      doc.Object,
		Sequence:    doc.Sequence,
		Events:      len(layout.EventRecords),
		Behaviors:   len(layout.BehaviorRecords),
		Variables:   len(builder.Variables()),
		ContentHash: render.Hash(buf.Bytes()),
		SizeBytes:   buf.Len(),
	}

	switch {
	case opts.Output != "":
		result.OutputFile = opts.Output
	case opts.OutDir != "":
		result.OutputFile = filepath.Join(opts.OutDir, render.Filename(doc.Object, doc.Sequence))
	}

	if result.OutputFile == "" {
		result.Commands = buf.String()
	} else {
		if err := os.WriteFile(result.OutputFile, buf.Bytes(), 0644); err != nil {
			_ = formatter.Error(ErrCodeWriteFailed, fmt.Sprintf("writing output file: %v", err), nil)
			return WrapExitError(ExitCommandError, "writing output file", err)
		}
	}

	if opts.DBPath != "" {
		id, err := recordArtifact(opts.DBPath, result)
		if err != nil {
			_ = formatter.Error(ErrCodeDatabase, fmt.Sprintf("recording artifact: %v", err), nil)
			return WrapExitError(ExitCommandError, "recording artifact", err)
		}
		result.ArtifactID = id
	}

	return outputCompileSuccess(formatter, result, &buf)
}

// recordArtifact appends the compilation record to the artifact log.
func recordArtifact(dbPath string, result *CompileResult) (string, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return "", err
	}
	defer st.Close()

	return st.RecordArtifact(context.Background(), result.Object, result.Sequence, result.ContentHash, result.SizeBytes)
}

// outputCompileSuccess outputs the compiled commands and summary.
func outputCompileSuccess(formatter *OutputFormatter, result *CompileResult, buf *bytes.Buffer) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	// Human-readable text output: the commands themselves go to stdout
	// unless they were written to a file.
	if result.OutputFile == "" {
		if _, err := buf.WriteTo(formatter.Writer); err != nil {
			return WrapExitError(ExitCommandError, "writing output", err)
		}
		return nil
	}

	fmt.Fprintf(formatter.Writer, "✓ Compiled %s sequence %d\n", result.Object, result.Sequence)
	fmt.Fprintf(formatter.Writer, "  %d event(s), %d behavior(s), %d variable(s)\n",
		result.Events, result.Behaviors, result.Variables)
	fmt.Fprintf(formatter.Writer, "  Wrote %d byte(s) to %s\n", result.SizeBytes, result.OutputFile)
	if result.ArtifactID != "" {
		fmt.Fprintf(formatter.Writer, "  Recorded artifact %s\n", result.ArtifactID)
	}
	return nil
}

// outputCompileError outputs a compilation error with the right exit code.
func outputCompileError(formatter *OutputFormatter, err error) error {
	code := errorCode(err)
	_ = formatter.Error(code, err.Error(), nil)
	exitCode := ExitFailure
	if isCommandError(err) {
		exitCode = ExitCommandError
	}
	return WrapExitError(exitCode, fmt.Sprintf("%s: %s", code, err.Error()), nil)
}
