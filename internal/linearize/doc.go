// Package linearize flattens a behavior sequence graph into the four arrays
// the engine's consolidated format stores.
//
// The traversal order is externally observable: it decides every array
// offset and behavior index in the generated artifact, so it must not be
// simplified. Events are visited in registration order. Each event seeds a
// shared LIFO work stack with the behaviors its links discover, pushed in
// reverse encounter order so they pop in encounter order, and the stack is
// drained depth first before the next event is visited. A behavior is
// assigned its index the first time any link record references it and is
// processed exactly once, which also bounds cyclic graphs.
//
// All traversal state lives in the pass, never on the entities, so repeated
// passes over the same graph are independent and byte-deterministic.
package linearize
