// Package deffile loads declarative behavior sequence definitions and
// builds them into a graph.
//
// A definition is a single document in YAML (strict field checking) or CUE,
// selected by file extension. Behaviors are declared with local ids and
// referenced by id from link lists; references are resolved in a second
// pass, so cycles and forward references are expressible.
package deffile

// Document is the top-level structure of a definition file.
type Document struct {
	// Object is the fully-qualified object path the commands address.
	Object string `yaml:"object" json:"object"`

	// Sequence is the behavior sequence index within the object.
	Sequence int `yaml:"sequence" json:"sequence"`

	// InlineVariableData switches the artifact to one whole-array
	// VariableData command instead of per-slot commands.
	InlineVariableData bool `yaml:"inline_variable_data,omitempty" json:"inline_variable_data,omitempty"`

	Variables []VariableDef `yaml:"variables,omitempty" json:"variables,omitempty"`
	Behaviors []BehaviorDef `yaml:"behaviors,omitempty" json:"behaviors,omitempty"`
	Events    []EventDef    `yaml:"events,omitempty" json:"events,omitempty"`
}

// VariableDef declares one entry of the sequence's variable array.
type VariableDef struct {
	// Type is the engine token, e.g. "BVAR_Object". Defaults to "BVAR_MAX",
	// the engine's placeholder kind.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`

	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Emit requests a dedicated console command for this slot.
	Emit bool `yaml:"emit,omitempty" json:"emit,omitempty"`

	// Index places the variable at an explicit slot, growing the array with
	// placeholders if needed. Without it the next free slot is used.
	Index *int `yaml:"index,omitempty" json:"index,omitempty"`
}

// VariableLinkDef declares one variable link on an event or behavior.
type VariableLinkDef struct {
	Vars            []int  `yaml:"vars,omitempty" json:"vars,omitempty"`
	Property        string `yaml:"property" json:"property"`
	Link            string `yaml:"link" json:"link"`
	ConnectionIndex int    `yaml:"connection_index,omitempty" json:"connection_index,omitempty"`
}

// BehaviorLinkDef declares one outbound link. The target is a behavior's
// local id. The link identifier is either a literal link_id or a catalog
// link_name like "Behavior_Gate.Closed"; the two are mutually exclusive.
type BehaviorLinkDef struct {
	Behavior string  `yaml:"behavior" json:"behavior"`
	LinkID   *int    `yaml:"link_id,omitempty" json:"link_id,omitempty"`
	LinkName string  `yaml:"link_name,omitempty" json:"link_name,omitempty"`
	Delay    float64 `yaml:"delay,omitempty" json:"delay,omitempty"`
}

// BehaviorDef declares a behavior node.
type BehaviorDef struct {
	// ID is the local name link lists use to reference this behavior.
	ID string `yaml:"id" json:"id"`

	// Label is the fully-qualified behavior object path.
	Label string `yaml:"label" json:"label"`

	LinkedVariables []VariableLinkDef `yaml:"linked_variables,omitempty" json:"linked_variables,omitempty"`
	OutputLinks     []BehaviorLinkDef `yaml:"output_links,omitempty" json:"output_links,omitempty"`
}

// EventDef declares an event.
type EventDef struct {
	Name string `yaml:"name" json:"name"`

	// Enabled defaults to true when omitted.
	Enabled *bool `yaml:"enabled,omitempty" json:"enabled,omitempty"`

	Replicate       bool    `yaml:"replicate,omitempty" json:"replicate,omitempty"`
	MaxTriggerCount int     `yaml:"max_trigger_count,omitempty" json:"max_trigger_count,omitempty"`
	RetriggerDelay  float64 `yaml:"retrigger_delay,omitempty" json:"retrigger_delay,omitempty"`
	FilterObject    string  `yaml:"filter_object,omitempty" json:"filter_object,omitempty"`

	OutputVariables []VariableLinkDef `yaml:"output_variables,omitempty" json:"output_variables,omitempty"`
	OutputLinks     []BehaviorLinkDef `yaml:"output_links,omitempty" json:"output_links,omitempty"`
}
