package bpd

import "fmt"

// VariableKind identifies the engine-side type of a sequence variable.
// The String form is the literal token the console parser expects.
type VariableKind int

// Variable kinds, in the engine's enum order.
const (
	VarNone VariableKind = iota
	VarBool
	VarInt
	VarFloat
	VarVector
	VarObject
	VarAllPlayers
	VarAttribute
	VarInstanceData
	VarNamedVariable
	VarNamedKismetVariable
	VarDirectionVector
	VarAttachmentLocation
	VarUnaryMath
	VarBinaryMath
	VarFlag
	VarMax
)

var variableKindNames = []string{
	"BVAR_None",
	"BVAR_Bool",
	"BVAR_Int",
	"BVAR_Float",
	"BVAR_Vector",
	"BVAR_Object",
	"BVAR_AllPlayers",
	"BVAR_Attribute",
	"BVAR_InstanceData",
	"BVAR_NamedVariable",
	"BVAR_NamedKismetVariable",
	"BVAR_DirectionVector",
	"BVAR_AttachmentLocation",
	"BVAR_UnaryMath",
	"BVAR_BinaryMath",
	"BVAR_Flag",
	"BVAR_MAX",
}

// String returns the engine token for the kind.
func (k VariableKind) String() string {
	if k < 0 || int(k) >= len(variableKindNames) {
		return fmt.Sprintf("VariableKind(%d)", int(k))
	}
	return variableKindNames[k]
}

// ParseVariableKind resolves an engine token like "BVAR_Object".
func ParseVariableKind(s string) (VariableKind, error) {
	for i, name := range variableKindNames {
		if name == s {
			return VariableKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown variable kind %q", s)
}

// LinkKind identifies how a variable link is consumed by its owner.
// Events only use BVARLINK_Output; behaviors use any of the kinds.
type LinkKind int

// Link kinds, in the engine's enum order.
const (
	LinkUnknown LinkKind = iota
	LinkContext
	LinkInput
	LinkOutput
	LinkMax
)

var linkKindNames = []string{
	"BVARLINK_Unknown",
	"BVARLINK_Context",
	"BVARLINK_Input",
	"BVARLINK_Output",
	"BVARLINK_MAX",
}

// String returns the engine token for the kind.
func (k LinkKind) String() string {
	if k < 0 || int(k) >= len(linkKindNames) {
		return fmt.Sprintf("LinkKind(%d)", int(k))
	}
	return linkKindNames[k]
}

// ParseLinkKind resolves an engine token like "BVARLINK_Context".
func ParseLinkKind(s string) (LinkKind, error) {
	for i, name := range linkKindNames {
		if name == s {
			return LinkKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown link kind %q", s)
}

// Variable is one entry in the sequence's variable array.
//
// Variables only need realistic contents when Emit is set: the generated
// artifact references them by index, so a placeholder is enough for linking.
// When Emit is true a dedicated console command is written for the slot.
type Variable struct {
	Kind  VariableKind
	Name  string
	Index int
	Emit  bool
}

// VariableLink binds one or more variables (by global index) to a named
// property slot on an event or behavior.
//
// ConnectionIndex is meaningful only for LinkOutput links, where it selects
// which output slot of the source routes data. Vars may be empty for
// context-less links.
type VariableLink struct {
	Vars            []int
	Property        string
	Kind            LinkKind
	ConnectionIndex int
}

// BehaviorHandle is a stable arena index identifying a Behavior within its
// Builder. The zero handle is a valid behavior; use HandleNone for "no
// behavior".
type BehaviorHandle int

// HandleNone is the sentinel for an unset behavior reference.
const HandleNone BehaviorHandle = -1

// Behavior is a reusable action node, referenced by a fully-qualified label.
// Link lists are payload, not identity: the handle identifies the behavior.
type Behavior struct {
	Label           string
	LinkedVariables []VariableLink
	OutputLinks     []BehaviorLink
}

// BehaviorLink is a directed edge from an event or behavior to a target
// behavior, carrying a signed link identifier and an activation delay.
type BehaviorLink struct {
	Target BehaviorHandle
	LinkID int8
	Delay  float64
}

// Event is an entry point that triggers behaviors, with its own variable
// outputs.
type Event struct {
	Name            string
	Enabled         bool
	Replicate       bool
	MaxTriggerCount int
	RetriggerDelay  float64
	FilterObject    string
	OutputVariables []VariableLink
	OutputLinks     []BehaviorLink
}
