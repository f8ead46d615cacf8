package deffile

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// Load error codes (E300-E319).
const (
	ErrCodeRead        = "E300" // file could not be read
	ErrCodeFormat      = "E301" // unsupported file extension
	ErrCodeParse       = "E302" // YAML/CUE syntax or schema error
	ErrCodeDocument    = "E303" // document fails structural validation
	ErrCodeDuplicateID = "E304" // behavior ids must be unique
	ErrCodeLinkID      = "E305" // link id out of the signed byte range, or both link_id and link_name given
)

// LoadError represents a definition loading error.
type LoadError struct {
	Code    string
	Message string
	Path    string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Path, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Load reads and parses a definition file. The format is chosen by
// extension: .yaml/.yml are decoded strictly (unknown fields are typos and
// rejected), .cue is compiled and decoded through the CUE runtime.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeRead, Message: err.Error(), Path: path}
	}

	var doc Document
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&doc); err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("parsing YAML: %v", err), Path: path}
		}
	case ".cue":
		ctx := cuecontext.New()
		value := ctx.CompileBytes(data)
		if err := value.Err(); err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("compiling CUE: %v", err), Path: path}
		}
		if err := value.Decode(&doc); err != nil {
			return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("decoding CUE: %v", err), Path: path}
		}
	default:
		return nil, &LoadError{Code: ErrCodeFormat, Message: fmt.Sprintf("unsupported definition format %q (want .yaml, .yml or .cue)", ext), Path: path}
	}

	if err := validateDocument(&doc); err != nil {
		if lerr, ok := err.(*LoadError); ok {
			lerr.Path = path
			return nil, lerr
		}
		return nil, err
	}
	return &doc, nil
}

// validateDocument checks the document's own structure. Graph-level
// validation (variable indices, handles) happens in Build, where the
// registries exist.
func validateDocument(doc *Document) error {
	if doc.Object == "" {
		return &LoadError{Code: ErrCodeDocument, Message: "object is required"}
	}
	if doc.Sequence < 0 {
		return &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("sequence must not be negative, got %d", doc.Sequence)}
	}

	ids := make(map[string]bool, len(doc.Behaviors))
	for i, beh := range doc.Behaviors {
		if beh.ID == "" {
			return &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("behaviors[%d]: id is required", i)}
		}
		if beh.Label == "" {
			return &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("behaviors[%d] (%s): label is required", i, beh.ID)}
		}
		if ids[beh.ID] {
			return &LoadError{Code: ErrCodeDuplicateID, Message: fmt.Sprintf("duplicate behavior id %q", beh.ID)}
		}
		ids[beh.ID] = true
		if err := checkLinkValues(fmt.Sprintf("behaviors[%d] (%s)", i, beh.ID), beh.OutputLinks); err != nil {
			return err
		}
	}
	// Behavior output links may reference behaviors declared later; resolve
	// targets only once all ids are known.
	for i, beh := range doc.Behaviors {
		if err := checkLinkTargets(fmt.Sprintf("behaviors[%d] (%s)", i, beh.ID), beh.OutputLinks, ids); err != nil {
			return err
		}
	}

	for i, ev := range doc.Events {
		if ev.Name == "" {
			return &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("events[%d]: name is required", i)}
		}
		field := fmt.Sprintf("events[%d] (%s)", i, ev.Name)
		if err := checkLinkValues(field, ev.OutputLinks); err != nil {
			return err
		}
		if err := checkLinkTargets(field, ev.OutputLinks, ids); err != nil {
			return err
		}
	}
	return nil
}

// checkLinkValues validates the id-independent parts of a link list:
// link_id range and link_id/link_name exclusivity.
func checkLinkValues(field string, links []BehaviorLinkDef) error {
	for j, link := range links {
		if link.LinkID != nil && link.LinkName != "" {
			return &LoadError{Code: ErrCodeLinkID, Message: fmt.Sprintf("%s output_links[%d]: link_id and link_name are mutually exclusive", field, j)}
		}
		if link.LinkID != nil && (*link.LinkID < math.MinInt8 || *link.LinkID > math.MaxInt8) {
			return &LoadError{Code: ErrCodeLinkID, Message: fmt.Sprintf("%s output_links[%d]: link_id %d outside [-128, 127]", field, j, *link.LinkID)}
		}
	}
	return nil
}

// checkLinkTargets validates that every link names a declared behavior id.
func checkLinkTargets(field string, links []BehaviorLinkDef, ids map[string]bool) error {
	for j, link := range links {
		if link.Behavior == "" {
			return &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("%s output_links[%d]: behavior is required", field, j)}
		}
		if !ids[link.Behavior] {
			return &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("%s output_links[%d]: unknown behavior id %q", field, j, link.Behavior)}
		}
	}
	return nil
}
