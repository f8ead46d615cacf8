package cli

import (
	"errors"

	"github.com/modkit/bpdc/internal/bpd"
	"github.com/modkit/bpdc/internal/deffile"
)

// loadAndBuild loads a definition file and assembles its graph.
func loadAndBuild(path string) (*deffile.Document, *bpd.Builder, error) {
	doc, err := deffile.Load(path)
	if err != nil {
		return nil, nil, err
	}
	builder, err := deffile.Build(doc)
	if err != nil {
		return doc, nil, err
	}
	return doc, builder, nil
}

// errorCode extracts the E-code from a definition or graph error.
// Falls back to the generic code for unclassified errors.
func errorCode(err error) string {
	var loadErr *deffile.LoadError
	if errors.As(err, &loadErr) {
		return loadErr.Code
	}
	var valErr *bpd.ValidationError
	if errors.As(err, &valErr) {
		return valErr.Code
	}
	return ErrCodeGeneric
}

// isCommandError reports whether an error is environmental (unreadable
// file, unsupported extension) rather than a defect in the definition
// itself. Environmental errors exit with ExitCommandError; definition
// defects exit with ExitFailure.
func isCommandError(err error) bool {
	switch errorCode(err) {
	case deffile.ErrCodeRead, deffile.ErrCodeFormat:
		return true
	}
	return false
}
