package bpd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVariableKind_RoundTrip tests that every kind token parses back to
// itself.
func TestVariableKind_RoundTrip(t *testing.T) {
	for k := VarNone; k <= VarMax; k++ {
		parsed, err := ParseVariableKind(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, parsed)
	}
}

// TestVariableKind_Tokens spot-checks the literal engine tokens.
func TestVariableKind_Tokens(t *testing.T) {
	assert.Equal(t, "BVAR_None", VarNone.String())
	assert.Equal(t, "BVAR_Object", VarObject.String())
	assert.Equal(t, "BVAR_NamedKismetVariable", VarNamedKismetVariable.String())
	assert.Equal(t, "BVAR_MAX", VarMax.String())
}

// TestParseVariableKind_Unknown tests rejection of a token outside the enum.
func TestParseVariableKind_Unknown(t *testing.T) {
	_, err := ParseVariableKind("BVAR_Nope")
	assert.Error(t, err)
}

// TestLinkKind_RoundTrip tests that every link kind token parses back to
// itself.
func TestLinkKind_RoundTrip(t *testing.T) {
	for k := LinkUnknown; k <= LinkMax; k++ {
		parsed, err := ParseLinkKind(k.String())
		require.NoError(t, err, k.String())
		assert.Equal(t, k, parsed)
	}
}

// TestLinkKind_Tokens spot-checks the literal engine tokens.
func TestLinkKind_Tokens(t *testing.T) {
	assert.Equal(t, "BVARLINK_Context", LinkContext.String())
	assert.Equal(t, "BVARLINK_Input", LinkInput.String())
	assert.Equal(t, "BVARLINK_Output", LinkOutput.String())
}
