// Package store provides the optional artifact log: a SQLite database
// recording every generated command artifact with its content hash.
//
// The log exists for provenance. Because generation is deterministic, the
// hash of a re-generated artifact only changes when the definition changed,
// so the log doubles as a cheap way to notice drift between a definition
// file and the artifact last shipped from it.
package store
