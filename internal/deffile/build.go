package deffile

import (
	"fmt"

	"github.com/modkit/bpdc/internal/bpd"
	"github.com/modkit/bpdc/internal/catalog"
)

// Build constructs the graph a document declares. Builder-level validation
// (variable indices, handle ranges) surfaces as bpd.ValidationError; link
// name resolution failures surface as LoadError with ErrCodeLinkID.
//
// Behaviors are created first and links attached in a second pass, so link
// lists may reference any declared behavior regardless of order.
func Build(doc *Document) (*bpd.Builder, error) {
	b := bpd.NewBuilder()

	for i, def := range doc.Variables {
		kind := bpd.VarMax
		if def.Type != "" {
			var err error
			kind, err = bpd.ParseVariableKind(def.Type)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("variables[%d]: %v", i, err)}
			}
		}
		if def.Index != nil {
			if _, err := b.AddVariableAt(*def.Index, kind, def.Name, def.Emit); err != nil {
				return nil, err
			}
			continue
		}
		b.AddVariable(kind, def.Name, def.Emit)
	}

	handles := make(map[string]bpd.BehaviorHandle, len(doc.Behaviors))
	for i, def := range doc.Behaviors {
		linked, err := variableLinks(fmt.Sprintf("behaviors[%d] (%s)", i, def.ID), def.LinkedVariables)
		if err != nil {
			return nil, err
		}
		h, err := b.NewBehavior(def.Label, linked...)
		if err != nil {
			return nil, err
		}
		handles[def.ID] = h
	}

	for i, def := range doc.Behaviors {
		links, err := behaviorLinks(fmt.Sprintf("behaviors[%d] (%s)", i, def.ID), def.OutputLinks, handles)
		if err != nil {
			return nil, err
		}
		for _, link := range links {
			if err := b.LinkBehavior(handles[def.ID], link); err != nil {
				return nil, err
			}
		}
	}

	for i, def := range doc.Events {
		field := fmt.Sprintf("events[%d] (%s)", i, def.Name)
		outputVars, err := variableLinks(field, def.OutputVariables)
		if err != nil {
			return nil, err
		}
		links, err := behaviorLinks(field, def.OutputLinks, handles)
		if err != nil {
			return nil, err
		}

		enabled := true
		if def.Enabled != nil {
			enabled = *def.Enabled
		}
		if _, err := b.AddEvent(bpd.Event{
			Name:            def.Name,
			Enabled:         enabled,
			Replicate:       def.Replicate,
			MaxTriggerCount: def.MaxTriggerCount,
			RetriggerDelay:  def.RetriggerDelay,
			FilterObject:    def.FilterObject,
			OutputVariables: outputVars,
			OutputLinks:     links,
		}); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func variableLinks(field string, defs []VariableLinkDef) ([]bpd.VariableLink, error) {
	links := make([]bpd.VariableLink, 0, len(defs))
	for j, def := range defs {
		kind, err := bpd.ParseLinkKind(def.Link)
		if err != nil {
			return nil, &LoadError{Code: ErrCodeDocument, Message: fmt.Sprintf("%s linked variables[%d]: %v", field, j, err)}
		}
		links = append(links, bpd.VariableLink{
			Vars:            def.Vars,
			Property:        def.Property,
			Kind:            kind,
			ConnectionIndex: def.ConnectionIndex,
		})
	}
	return links, nil
}

func behaviorLinks(field string, defs []BehaviorLinkDef, handles map[string]bpd.BehaviorHandle) ([]bpd.BehaviorLink, error) {
	links := make([]bpd.BehaviorLink, 0, len(defs))
	for j, def := range defs {
		var id int8
		switch {
		case def.LinkName != "":
			resolved, err := catalog.Resolve(def.LinkName)
			if err != nil {
				return nil, &LoadError{Code: ErrCodeLinkID, Message: fmt.Sprintf("%s output_links[%d]: %v", field, j, err)}
			}
			id = resolved
		case def.LinkID != nil:
			id = int8(*def.LinkID)
		}
		links = append(links, bpd.BehaviorLink{
			Target: handles[def.Behavior],
			LinkID: id,
			Delay:  def.Delay,
		})
	}
	return links, nil
}
