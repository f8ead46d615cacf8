package codec

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPackOffsetLength_EmptySentinel tests that a zero length packs to 0
// regardless of offset.
func TestPackOffsetLength_EmptySentinel(t *testing.T) {
	for _, offset := range []int{0, 1, 500, math.MaxUint16} {
		v, err := PackOffsetLength(offset, 0)
		require.NoError(t, err)
		assert.Equal(t, int32(0), v, "offset %d", offset)
	}
}

// TestPackOffsetLength_ZeroOffsetRoundTrip tests pack(0, L) for L > 0.
func TestPackOffsetLength_ZeroOffsetRoundTrip(t *testing.T) {
	for _, length := range []int{1, 2, 255, 256, math.MaxUint16} {
		v, err := PackOffsetLength(0, length)
		require.NoError(t, err)

		offset, gotLen := UnpackOffsetLength(v)
		assert.Equal(t, uint16(0), offset)
		assert.Equal(t, uint16(length), gotLen)
	}
}

// TestPackOffsetLength_KnownValues pins the exact integer encodings the
// console parser expects.
func TestPackOffsetLength_KnownValues(t *testing.T) {
	tests := []struct {
		offset, length int
		want           int32
	}{
		{0, 1, 1},
		{1, 1, 65537},
		{1, 2, 65538},
		{3, 1, 196609},
		{5, 1, 327681},
		// High bit set: two's-complement wraparound, the field is signed.
		{math.MaxUint16, 1, -65535},
		{0x8000, 0x0001, math.MinInt32 + 1},
	}
	for _, tt := range tests {
		v, err := PackOffsetLength(tt.offset, tt.length)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "pack(%d, %d)", tt.offset, tt.length)
	}
}

// TestPackOffsetLength_ByteLayout tests the little-endian wire layout:
// length in the low half, offset in the high half.
func TestPackOffsetLength_ByteLayout(t *testing.T) {
	v, err := PackOffsetLength(0x0403, 0x0201)
	require.NoError(t, err)

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	assert.Equal(t, [4]byte{0x01, 0x02, 0x03, 0x04}, buf)
}

// TestPackOffsetLength_RangeErrors tests rejection of values outside the
// 16-bit wire domain.
func TestPackOffsetLength_RangeErrors(t *testing.T) {
	tests := []struct {
		name           string
		offset, length int
	}{
		{"offset too large", math.MaxUint16 + 1, 1},
		{"offset negative", -1, 1},
		{"length too large", 0, math.MaxUint16 + 1},
		{"length negative", 0, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PackOffsetLength(tt.offset, tt.length)
			var rerr *RangeError
			require.ErrorAs(t, err, &rerr)
		})
	}
}

// TestPackLinkID_RoundTrip tests the full pack/unpack domain: every link id
// in [-128, 127] against every behavior index in [0, 65535].
func TestPackLinkID_RoundTrip(t *testing.T) {
	for id := math.MinInt8; id <= math.MaxInt8; id++ {
		for idx := 0; idx <= math.MaxUint16; idx++ {
			v, err := PackLinkID(int8(id), idx)
			require.NoError(t, err)

			gotID, gotIdx := UnpackLinkID(v)
			if int8(id) != gotID || uint16(idx) != gotIdx {
				t.Fatalf("round trip (%d, %d) -> %d -> (%d, %d)", id, idx, v, gotID, gotIdx)
			}
		}
	}
}

// TestPackLinkID_KnownValues pins exact encodings, including the negative
// link id used for failure branches.
func TestPackLinkID_KnownValues(t *testing.T) {
	tests := []struct {
		id   int8
		idx  int
		want int32
	}{
		{0, 0, 0},
		{0, 1, 1},
		{1, 0, 16777216},
		{-1, 2, -16777214},
		{-128, math.MaxUint16, math.MinInt32 + math.MaxUint16},
	}
	for _, tt := range tests {
		v, err := PackLinkID(tt.id, tt.idx)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v, "pack(%d, %d)", tt.id, tt.idx)
	}
}

// TestPackLinkID_ByteLayout tests the wire layout: behavior index in the low
// 16 bits, a zero padding byte, link id in the top byte.
func TestPackLinkID_ByteLayout(t *testing.T) {
	v, err := PackLinkID(-1, 0x0201)
	require.NoError(t, err)

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	assert.Equal(t, [4]byte{0x01, 0x02, 0x00, 0xFF}, buf)
}

// TestPackLinkID_IndexRange tests rejection of behavior indices outside the
// 16-bit wire domain.
func TestPackLinkID_IndexRange(t *testing.T) {
	_, err := PackLinkID(0, math.MaxUint16+1)
	var rerr *RangeError
	require.ErrorAs(t, err, &rerr)
	assert.Contains(t, rerr.Error(), "behavior index")

	_, err = PackLinkID(0, -1)
	require.ErrorAs(t, err, &rerr)
}
