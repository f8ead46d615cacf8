// Package render formats a flattened sequence layout into the console's
// property-editing command syntax.
//
// The output grammar is a fixed external contract: field names, boolean
// tokens and number spellings must match what the console parser expects,
// byte for byte. Rendering is pure formatting; every ordering decision was
// already made by the linearizer.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/modkit/bpdc/internal/bpd"
	"github.com/modkit/bpdc/internal/linearize"
)

// Options controls optional parts of the artifact.
type Options struct {
	// InlineVariableData emits the whole VariableData array as one command
	// instead of one command per emit-flagged slot. Setting the whole array
	// is known to crash some engine builds, so per-slot commands are the
	// default.
	InlineVariableData bool
}

// Render writes the full command artifact for one (object, sequence) pair:
// the composite header commands followed by the per-variable commands.
func Render(w io.Writer, object string, sequence int, layout *linearize.Layout, vars []bpd.Variable, opts Options) error {
	if layout == nil {
		return fmt.Errorf("render: nil layout")
	}
	object = norm.NFC.String(object)

	events := make([]string, len(layout.EventRecords))
	for i, ev := range layout.EventRecords {
		events[i] = formatEvent(ev)
	}
	behaviors := make([]string, len(layout.BehaviorRecords))
	for i, rec := range layout.BehaviorRecords {
		behaviors[i] = formatBehavior(rec)
	}
	behaviorLinks := make([]string, len(layout.BehaviorLinkRecords))
	for i, rec := range layout.BehaviorLinkRecords {
		behaviorLinks[i] = formatBehaviorLink(rec)
	}
	variableLinks := make([]string, len(layout.VariableLinkRecords))
	for i, rec := range layout.VariableLinkRecords {
		variableLinks[i] = formatVariableLink(rec)
	}
	pool := make([]string, len(layout.LinkedVariablePool))
	for i, idx := range layout.LinkedVariablePool {
		pool[i] = strconv.Itoa(idx)
	}

	lines := []struct {
		field string
		body  string
	}{
		{"EventData2", strings.Join(events, ",")},
		{"BehaviorData2", strings.Join(behaviors, ",")},
		{"ConsolidatedOutputLinkData", strings.Join(behaviorLinks, ",")},
		{"ConsolidatedVariableLinkData", strings.Join(variableLinks, ",")},
		{"ConsolidatedLinkedVariables", strings.Join(pool, ",")},
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(w, "set %s BehaviorSequences[%d].%s (%s)\n", object, sequence, line.field, line.body); err != nil {
			return err
		}
	}

	if opts.InlineVariableData {
		records := make([]string, len(vars))
		for i, v := range vars {
			records[i] = formatVariable(v)
		}
		_, err := fmt.Fprintf(w, "set %s BehaviorSequences[%d].VariableData (%s)\n", object, sequence, strings.Join(records, ","))
		return err
	}

	for _, v := range vars {
		if !v.Emit {
			continue
		}
		if _, err := fmt.Fprintf(w, "set %s BehaviorSequences[%d].VariableData[%d] %s\n", object, sequence, v.Index, formatVariable(v)); err != nil {
			return err
		}
	}
	return nil
}

// Filename returns the artifact file name for an object path and sequence
// index. Colons are not valid in file names on every platform the console
// runs on, so they become dots.
func Filename(object string, sequence int) string {
	return fmt.Sprintf("%s[%d].txt", strings.ReplaceAll(object, ":", "."), sequence)
}

func formatEvent(ev linearize.EventRecord) string {
	return fmt.Sprintf(
		"(UserData=(EventName=%q,bEnabled=%s,bReplicate=%s,MaxTriggerCount=%d,ReTriggerDelay=%s,FilterObject=%s),OutputVariables=(ArrayIndexAndLength=%d),OutputLinks=(ArrayIndexAndLength=%d))",
		norm.NFC.String(ev.Name),
		formatBool(ev.Enabled),
		formatBool(ev.Replicate),
		ev.MaxTriggerCount,
		formatFloat(ev.RetriggerDelay),
		ev.FilterObject,
		ev.OutputVariables,
		ev.OutputLinks,
	)
}

func formatBehavior(rec linearize.BehaviorRecord) string {
	return fmt.Sprintf(
		"(Behavior=%s,LinkedVariables=(ArrayIndexAndLength=%d),OutputLinks=(ArrayIndexAndLength=%d))",
		norm.NFC.String(rec.Label),
		rec.LinkedVariables,
		rec.OutputLinks,
	)
}

func formatBehaviorLink(rec linearize.BehaviorLinkRecord) string {
	return fmt.Sprintf(
		"(LinkIdAndLinkedBehavior=%d,ActivateDelay=%s)",
		rec.LinkIDAndBehavior,
		formatNumber(rec.Delay),
	)
}

func formatVariableLink(rec linearize.VariableLinkRecord) string {
	return fmt.Sprintf(
		"(PropertyName=%q,VariableLinkType=%s,ConnectionIndex=%d,LinkedVariables=(ArrayIndexAndLength=%d),CachedProperty=None)",
		norm.NFC.String(rec.Property),
		rec.Kind,
		rec.ConnectionIndex,
		rec.IndexAndLength,
	)
}

func formatVariable(v bpd.Variable) string {
	return fmt.Sprintf("(Name=%q,Type=%s)", norm.NFC.String(v.Name), v.Kind)
}

// formatBool renders the console's boolean tokens.
func formatBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// formatFloat always carries a decimal point: ReTriggerDelay renders as 0.0,
// never 0.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// formatNumber drops the decimal point for integral values: ActivateDelay
// renders as 0, 0.25 stays 0.25.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
