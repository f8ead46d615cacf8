// Package codec implements the bit layouts the engine expects for the
// packed fields of a behavior sequence.
//
// Both fields are signed 32-bit integers on the wire. ArrayIndexAndLength
// locates a slice inside a flattened array: the offset occupies the high 16
// bits and the length the low 16 bits, so the little-endian byte order is
// [length_lo, length_hi, offset_lo, offset_hi]. LinkIdAndLinkedBehavior
// identifies an outbound link: the behavior index occupies the low 16 bits,
// a zero padding byte follows, and the signed link id sits in the top byte.
//
// Values outside the 16-bit (index, offset, length) or signed 8-bit
// (link id) domains are rejected at pack time rather than silently
// truncated.
package codec

import (
	"fmt"
	"math"
)

// RangeError reports a pack input outside its wire domain.
type RangeError struct {
	Field string
	Value int
	Min   int
	Max   int
}

// Error implements the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d outside [%d, %d]", e.Field, e.Value, e.Min, e.Max)
}

// PackOffsetLength packs a slice span into a single signed 32-bit integer.
// A zero length is the documented empty sentinel: the result is 0 no matter
// the offset, and no offset information survives.
func PackOffsetLength(offset, length int) (int32, error) {
	if offset < 0 || offset > math.MaxUint16 {
		return 0, &RangeError{Field: "offset", Value: offset, Max: math.MaxUint16}
	}
	if length < 0 || length > math.MaxUint16 {
		return 0, &RangeError{Field: "length", Value: length, Max: math.MaxUint16}
	}
	if length == 0 {
		return 0, nil
	}
	return int32(uint32(offset)<<16 | uint32(length)), nil
}

// UnpackOffsetLength is the exact inverse of PackOffsetLength for non-empty
// spans. Unpacking the empty sentinel yields (0, 0).
func UnpackOffsetLength(v int32) (offset, length uint16) {
	return uint16(uint32(v) >> 16), uint16(uint32(v))
}

// PackLinkID packs a signed link id and a behavior index into a single
// signed 32-bit integer. The link id is a signed byte; the int8 parameter
// type makes out-of-range values a compile-time caller error. The behavior
// index must fit in 16 bits.
func PackLinkID(linkID int8, behaviorIndex int) (int32, error) {
	if behaviorIndex < 0 || behaviorIndex > math.MaxUint16 {
		return 0, &RangeError{Field: "behavior index", Value: behaviorIndex, Max: math.MaxUint16}
	}
	return int32(linkID)<<24 | int32(behaviorIndex), nil
}

// UnpackLinkID is the exact inverse of PackLinkID.
func UnpackLinkID(v int32) (linkID int8, behaviorIndex uint16) {
	return int8(uint32(v) >> 24), uint16(uint32(v))
}
