package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertap/internal/parser"
)

func TestCodes_RegistryComplete(t *testing.T) {
	codes := parser.Codes()
	require.Len(t, codes, 16)

	want := []string{"D1", "D2", "D3", "D4", "D5", "D6", "D7", "DAL", "R1", "R2", "R3", "R4", "R5", "R6", "R7", "RAL"}
	for i, code := range want {
		assert.Equal(t, parser.CriticismCode(code), codes[i].Code)
		assert.NotEmpty(t, codes[i].Description)
	}
}

func TestCodes_ReturnsCopy(t *testing.T) {
	codes := parser.Codes()
	codes[0].Description = "changed"
	assert.NotEqual(t, "changed", parser.Codes()[0].Description)
}

func TestCodes_ContestTypeByPrefix(t *testing.T) {
	for _, info := range parser.Codes() {
		switch info.Code[0] {
		case 'D':
			assert.Equal(t, parser.ContestDocumentation, info.ContestType, info.Code)
		case 'R':
			assert.Equal(t, parser.ContestResult, info.ContestType, info.Code)
		default:
			t.Fatalf("unexpected code %s", info.Code)
		}
	}
}

func TestDescription(t *testing.T) {
	assert.Contains(t, parser.Description("D1"), "experiență similară")
	assert.Contains(t, parser.Description("r2"), "Respingerea ofertei")
	assert.Equal(t, parser.UnknownCodeDescription, parser.Description("Z9"))
}

func TestIsCriticismCode(t *testing.T) {
	for _, tok := range []string{"D1", "d7", "DAL", "ral", "R5"} {
		assert.True(t, parser.IsCriticismCode(tok), tok)
	}
	for _, tok := range []string{"D8", "R0", "X1", "DALL", "", "CPV"} {
		assert.False(t, parser.IsCriticismCode(tok), tok)
	}
}
