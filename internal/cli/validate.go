package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/modkit/bpdc/internal/linearize"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool       `json:"valid"`
	Errors []CLIError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <def-file>",
		Short: "Validate a definition file without emitting output",
		Long: `Validate a behavior sequence definition without emitting commands.

Performs the full load, graph assembly, and flattening passes so that
every error the compiler would hit is reported, but writes nothing.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, defPath string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	doc, builder, err := loadAndBuild(defPath)
	if err != nil {
		if isCommandError(err) {
			_ = formatter.Error(errorCode(err), err.Error(), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", errorCode(err), err.Error()))
		}
		return outputValidationErrors(formatter, []CLIError{{Code: errorCode(err), Message: err.Error()}})
	}

	formatter.VerboseLog("Validating %s: %d variable(s), %d behavior(s), %d event(s)",
		defPath, len(builder.Variables()), len(builder.Behaviors()), len(builder.Events()))

	// The flattening pass catches index errors the builder cannot see
	// until the whole graph is assembled.
	if _, err := linearize.Run(builder); err != nil {
		return outputValidationErrors(formatter, []CLIError{{Code: errorCode(err), Message: err.Error()}})
	}

	return outputValidateSuccess(formatter, doc.Object, doc.Sequence)
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, object string, sequence int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}

	fmt.Fprintf(formatter.Writer, "✓ %s sequence %d valid\n", object, sequence)
	return nil
}

// outputValidationErrors outputs validation errors.
func outputValidationErrors(formatter *OutputFormatter, errs []CLIError) error {
	if formatter.Format == "json" {
		result := ValidationResult{
			Valid:  false,
			Errors: errs,
		}

		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error:  &errs[0],
		}

		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}

		// Validation failures = exit code 1
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	// Text format
	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, err := range errs {
		fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", err.Code, err.Message)
	}

	// Validation failures = exit code 1
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
