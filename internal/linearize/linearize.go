package linearize

import (
	"fmt"

	"github.com/modkit/bpdc/internal/bpd"
	"github.com/modkit/bpdc/internal/codec"
)

// VariableLinkRecord is one entry of ConsolidatedVariableLinkData.
type VariableLinkRecord struct {
	Property        string
	Kind            bpd.LinkKind
	ConnectionIndex int
	IndexAndLength  int32
}

// BehaviorLinkRecord is one entry of ConsolidatedOutputLinkData.
type BehaviorLinkRecord struct {
	LinkIDAndBehavior int32
	Delay             float64
}

// BehaviorRecord is one entry of BehaviorData2, in final discovery order.
type BehaviorRecord struct {
	Label           string
	LinkedVariables int32
	OutputLinks     int32
}

// EventRecord is one entry of EventData2: the event's user data plus the
// packed spans of its slices in the consolidated arrays.
type EventRecord struct {
	Name            string
	Enabled         bool
	Replicate       bool
	MaxTriggerCount int
	RetriggerDelay  float64
	FilterObject    string
	OutputVariables int32
	OutputLinks     int32
}

// Layout is the flattened form of one sequence graph.
type Layout struct {
	EventRecords        []EventRecord
	BehaviorRecords     []BehaviorRecord
	BehaviorLinkRecords []BehaviorLinkRecord
	VariableLinkRecords []VariableLinkRecord
	LinkedVariablePool  []int
}

// span is the per-behavior scratch a pass computes. It is keyed by handle in
// pass-local state so concurrent or repeated passes never alias.
type span struct {
	variables int32
	outputs   int32
}

// pass carries the state of one linearization run.
type pass struct {
	behaviors []bpd.Behavior

	layout    Layout
	known     []bpd.BehaviorHandle       // discovery order, one slot per behavior
	index     map[bpd.BehaviorHandle]int // handle -> slot in known
	scratch   map[bpd.BehaviorHandle]span
	stack     []bpd.BehaviorHandle
	processed map[bpd.BehaviorHandle]bool
}

// Run flattens the builder's graph. The builder must be fully populated and
// quiescent; Run never mutates it. The returned layout is self-contained,
// so any number of runs over the same builder produce identical results.
func Run(b *bpd.Builder) (*Layout, error) {
	if b == nil {
		return nil, fmt.Errorf("linearize: nil builder")
	}

	p := &pass{
		behaviors: b.Behaviors(),
		index:     make(map[bpd.BehaviorHandle]int),
		scratch:   make(map[bpd.BehaviorHandle]span),
		processed: make(map[bpd.BehaviorHandle]bool),
	}

	// Every registered variable is implicitly available: the pool starts as
	// the identity sequence and only multi-variable links append to it.
	p.layout.LinkedVariablePool = make([]int, len(b.Variables()))
	for i := range p.layout.LinkedVariablePool {
		p.layout.LinkedVariablePool[i] = i
	}

	for _, ev := range b.Events() {
		if err := p.visitEvent(ev); err != nil {
			return nil, err
		}
	}

	p.layout.BehaviorRecords = make([]BehaviorRecord, len(p.known))
	for i, h := range p.known {
		sc := p.scratch[h]
		p.layout.BehaviorRecords[i] = BehaviorRecord{
			Label:           p.behaviors[h].Label,
			LinkedVariables: sc.variables,
			OutputLinks:     sc.outputs,
		}
	}

	return &p.layout, nil
}

// visitEvent appends the event's slices and drains the traversal the event
// seeds. The stack is shared across events: one continuous depth-first walk
// driven by per-event seeding, not independent traversals.
func (p *pass) visitEvent(ev bpd.Event) error {
	// Spans are computed before appending: they locate this event's slices.
	outputVars, err := codec.PackOffsetLength(len(p.layout.VariableLinkRecords), len(ev.OutputVariables))
	if err != nil {
		return fmt.Errorf("event %q output variables: %w", ev.Name, err)
	}
	outputLinks, err := codec.PackOffsetLength(len(p.layout.BehaviorLinkRecords), len(ev.OutputLinks))
	if err != nil {
		return fmt.Errorf("event %q output links: %w", ev.Name, err)
	}

	if err := p.appendVariableLinks(ev.OutputVariables); err != nil {
		return fmt.Errorf("event %q: %w", ev.Name, err)
	}

	p.pushUnknown(ev.OutputLinks)
	if err := p.appendBehaviorLinks(ev.OutputLinks); err != nil {
		return fmt.Errorf("event %q: %w", ev.Name, err)
	}

	p.layout.EventRecords = append(p.layout.EventRecords, EventRecord{
		Name:            ev.Name,
		Enabled:         ev.Enabled,
		Replicate:       ev.Replicate,
		MaxTriggerCount: ev.MaxTriggerCount,
		RetriggerDelay:  ev.RetriggerDelay,
		FilterObject:    ev.FilterObject,
		OutputVariables: outputVars,
		OutputLinks:     outputLinks,
	})

	return p.drain()
}

// drain pops pending behaviors until the stack is empty, flattening each
// exactly once. A behavior's own links may discover and enqueue further
// behaviors, continuing the walk depth first.
func (p *pass) drain() error {
	for len(p.stack) > 0 {
		h := p.stack[len(p.stack)-1]
		p.stack = p.stack[:len(p.stack)-1]
		// A handle queued twice before either pop is tolerated, not
		// double-processed. The push gate makes this unreachable in
		// practice.
		if p.processed[h] {
			continue
		}
		p.processed[h] = true

		beh := p.behaviors[h]

		variables, err := codec.PackOffsetLength(len(p.layout.VariableLinkRecords), len(beh.LinkedVariables))
		if err != nil {
			return fmt.Errorf("behavior %q linked variables: %w", beh.Label, err)
		}
		if err := p.appendVariableLinks(beh.LinkedVariables); err != nil {
			return fmt.Errorf("behavior %q: %w", beh.Label, err)
		}

		outputs, err := codec.PackOffsetLength(len(p.layout.BehaviorLinkRecords), len(beh.OutputLinks))
		if err != nil {
			return fmt.Errorf("behavior %q output links: %w", beh.Label, err)
		}
		p.pushUnknown(beh.OutputLinks)
		if err := p.appendBehaviorLinks(beh.OutputLinks); err != nil {
			return fmt.Errorf("behavior %q: %w", beh.Label, err)
		}

		p.scratch[h] = span{variables: variables, outputs: outputs}
	}
	return nil
}

// pushUnknown pushes the not-yet-known targets of a link list onto the work
// stack, deduplicated, in reverse encounter order so that popping yields
// them in the order the list first references them.
func (p *pass) pushUnknown(links []bpd.BehaviorLink) {
	var fresh []bpd.BehaviorHandle
	seen := make(map[bpd.BehaviorHandle]bool, len(links))
	for _, link := range links {
		if seen[link.Target] {
			continue
		}
		seen[link.Target] = true
		if _, ok := p.index[link.Target]; !ok {
			fresh = append(fresh, link.Target)
		}
	}
	for i := len(fresh) - 1; i >= 0; i-- {
		p.stack = append(p.stack, fresh[i])
	}
}

// appendBehaviorLinks flattens a link list. A target seen for the first
// time is assigned the next behavior index; that index is what the packed
// link encodes, so every later reference resolves to the same slot.
func (p *pass) appendBehaviorLinks(links []bpd.BehaviorLink) error {
	for _, link := range links {
		idx, ok := p.index[link.Target]
		if !ok {
			idx = len(p.known)
			p.index[link.Target] = idx
			p.known = append(p.known, link.Target)
		}
		packed, err := codec.PackLinkID(link.LinkID, idx)
		if err != nil {
			return fmt.Errorf("link to %q: %w", p.behaviors[link.Target].Label, err)
		}
		p.layout.BehaviorLinkRecords = append(p.layout.BehaviorLinkRecords, BehaviorLinkRecord{
			LinkIDAndBehavior: packed,
			Delay:             link.Delay,
		})
	}
	return nil
}

// appendVariableLinks flattens a variable-link list, threading the linked
// variable pool. A single-variable link is stored inline: its offset field
// is the variable's global index and the pool does not grow. Multi-variable
// links append their indices verbatim and reference them through the pool.
func (p *pass) appendVariableLinks(links []bpd.VariableLink) error {
	for _, link := range links {
		offset := 0
		switch k := len(link.Vars); {
		case k > 1:
			offset = len(p.layout.LinkedVariablePool)
			p.layout.LinkedVariablePool = append(p.layout.LinkedVariablePool, link.Vars...)
		case k == 1:
			offset = link.Vars[0]
		}
		packed, err := codec.PackOffsetLength(offset, len(link.Vars))
		if err != nil {
			return fmt.Errorf("variable link %q: %w", link.Property, err)
		}
		p.layout.VariableLinkRecords = append(p.layout.VariableLinkRecords, VariableLinkRecord{
			Property:        link.Property,
			Kind:            link.Kind,
			ConnectionIndex: link.ConnectionIndex,
			IndexAndLength:  packed,
		})
	}
	return nil
}
