// Package bpd provides the entity model for behavior sequence graphs.
//
// This package contains the core types (Variable, VariableLink, Behavior,
// BehaviorLink, Event) and the Builder that owns their ordered registries.
// All other internal packages that consume the graph import bpd; bpd imports
// nothing internal. This keeps the model the foundational layer with no
// circular dependencies.
//
// Key design constraints:
//   - Behaviors live in an arena owned by the Builder and are referenced by
//     integer handles, never by shared pointers. Many links may target the
//     same behavior; the handle is its identity.
//   - Registries are explicit: there is no process-wide state, and multiple
//     independent Builders may coexist in one process.
//   - Entities are append-only once registered. The only mutation after
//     construction is appending outbound links.
//   - Variable-link indices are validated eagerly, at the call that attaches
//     the link, never at serialization time.
package bpd
