package bpd

import "fmt"

// Builder owns the ordered registries for one behavior sequence graph:
// the global variable array, the behavior arena, and the event list.
// The caller threads a Builder through all construction calls; there is no
// hidden global state, so multiple independent graphs may be built in one
// process.
//
// A Builder is not safe for concurrent use. It is expected to be fully
// populated, then handed quiescent to the linearizer.
type Builder struct {
	variables []Variable
	behaviors []Behavior
	events    []Event
}

// NewBuilder returns an empty graph builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddVariable appends a variable at the next free index and returns that
// index.
func (b *Builder) AddVariable(kind VariableKind, name string, emit bool) int {
	idx := len(b.variables)
	b.variables = append(b.variables, Variable{Kind: kind, Name: name, Index: idx, Emit: emit})
	return idx
}

// AddVariableAt places a variable at an explicit index. If the index is
// beyond the current array, the array is grown with placeholder variables
// up to and including that index; the slot itself is overwritten.
func (b *Builder) AddVariableAt(index int, kind VariableKind, name string, emit bool) (int, error) {
	if index < 0 {
		return 0, &ValidationError{
			Field:   "variable.index",
			Message: fmt.Sprintf("explicit index must not be negative, got %d", index),
			Code:    ErrNegativeVarIndex,
		}
	}
	for len(b.variables) <= index {
		// Placeholders mirror the engine's default slot: untyped, unnamed,
		// never emitted.
		b.variables = append(b.variables, Variable{Kind: VarMax, Index: len(b.variables)})
	}
	b.variables[index] = Variable{Kind: kind, Name: name, Index: index, Emit: emit}
	return index, nil
}

// NewBehavior registers a behavior in the arena and returns its handle.
// Linked variables are validated against the current variable array.
func (b *Builder) NewBehavior(label string, linked ...VariableLink) (BehaviorHandle, error) {
	if label == "" {
		return HandleNone, &ValidationError{
			Field:   "behavior.label",
			Message: "behavior label is required",
			Code:    ErrEmptyLabel,
		}
	}
	for i, link := range linked {
		if err := b.checkVariableLink(fmt.Sprintf("behavior %q linked_variables[%d]", label, i), link); err != nil {
			return HandleNone, err
		}
	}
	h := BehaviorHandle(len(b.behaviors))
	b.behaviors = append(b.behaviors, Behavior{Label: label, LinkedVariables: linked})
	return h, nil
}

// AddEvent registers an event and returns its position in the event list.
// Output variable links are validated against the current variable array.
// FilterObject defaults to "None" when empty.
func (b *Builder) AddEvent(ev Event) (int, error) {
	if ev.Name == "" {
		return 0, &ValidationError{
			Field:   "event.name",
			Message: "event name is required",
			Code:    ErrEmptyEventName,
		}
	}
	if ev.FilterObject == "" {
		ev.FilterObject = "None"
	}
	for i, link := range ev.OutputVariables {
		if err := b.checkVariableLink(fmt.Sprintf("event %q output_variables[%d]", ev.Name, i), link); err != nil {
			return 0, err
		}
	}
	for i, link := range ev.OutputLinks {
		if err := b.checkBehaviorLink(fmt.Sprintf("event %q output_links[%d]", ev.Name, i), link); err != nil {
			return 0, err
		}
	}
	b.events = append(b.events, ev)
	return len(b.events) - 1, nil
}

// LinkEvent appends an outbound behavior link to a registered event.
func (b *Builder) LinkEvent(event int, link BehaviorLink) error {
	if event < 0 || event >= len(b.events) {
		return &ValidationError{
			Field:   "event",
			Message: fmt.Sprintf("event index %d out of range (have %d events)", event, len(b.events)),
			Code:    ErrBadEventIndex,
		}
	}
	field := fmt.Sprintf("event %q output_links[%d]", b.events[event].Name, len(b.events[event].OutputLinks))
	if err := b.checkBehaviorLink(field, link); err != nil {
		return err
	}
	b.events[event].OutputLinks = append(b.events[event].OutputLinks, link)
	return nil
}

// LinkBehavior appends an outbound behavior link to a registered behavior.
// Self links and links back to ancestors are allowed; the linearizer is
// cycle safe.
func (b *Builder) LinkBehavior(h BehaviorHandle, link BehaviorLink) error {
	if err := b.checkHandle("behavior", h); err != nil {
		return err
	}
	beh := &b.behaviors[h]
	field := fmt.Sprintf("behavior %q output_links[%d]", beh.Label, len(beh.OutputLinks))
	if err := b.checkBehaviorLink(field, link); err != nil {
		return err
	}
	beh.OutputLinks = append(beh.OutputLinks, link)
	return nil
}

// Variables returns the global variable array in index order. The slice is
// owned by the Builder; callers must treat it as read-only.
func (b *Builder) Variables() []Variable { return b.variables }

// Behaviors returns the behavior arena. The slice index of each entry is its
// handle. Read-only.
func (b *Builder) Behaviors() []Behavior { return b.behaviors }

// Events returns the events in registration order. Read-only.
func (b *Builder) Events() []Event { return b.events }

func (b *Builder) checkVariableLink(field string, link VariableLink) error {
	for _, idx := range link.Vars {
		if idx < 0 || idx >= len(b.variables) {
			return errVarIndex(field, idx, len(b.variables))
		}
	}
	return nil
}

func (b *Builder) checkBehaviorLink(field string, link BehaviorLink) error {
	if link.Target < 0 || int(link.Target) >= len(b.behaviors) {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("behavior handle %d out of range (have %d behaviors)", link.Target, len(b.behaviors)),
			Code:    ErrBadBehaviorHandle,
		}
	}
	return nil
}

func (b *Builder) checkHandle(field string, h BehaviorHandle) error {
	if h < 0 || int(h) >= len(b.behaviors) {
		return &ValidationError{
			Field:   field,
			Message: fmt.Sprintf("behavior handle %d out of range (have %d behaviors)", h, len(b.behaviors)),
			Code:    ErrBadBehaviorHandle,
		}
	}
	return nil
}
