package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertap/internal/parser"
)

func reconcileInput(outcome parser.FilenameOutcome, ruling parser.TextRuling) *parser.ParsedDecision {
	return &parser.ParsedDecision{
		FilenameOutcome: outcome,
		Ruling:          ruling,
		CriticismCodes:  []parser.CriticismCode{"R2"},
		CPVCode:         "55520000-1",
	}
}

func TestReconcile_OutcomeMismatch(t *testing.T) {
	d := reconcileInput(parser.OutcomeAdmitted, parser.RulingRejected)

	warnings := parser.Reconcile(d)

	require.Len(t, warnings, 1)
	assert.Equal(t, "ruling mismatch: filename=A, text=REJECTED", warnings[0])
	assert.Equal(t, parser.RulingRejected, d.Ruling)
}

func TestReconcile_Consistent(t *testing.T) {
	tests := []struct {
		outcome parser.FilenameOutcome
		ruling  parser.TextRuling
	}{
		{parser.OutcomeAdmitted, parser.RulingAdmitted},
		{parser.OutcomeAdmitted, parser.RulingPartiallyAdmitted},
		{parser.OutcomeRejected, parser.RulingRejected},
		{parser.OutcomeUnknown, parser.RulingAdmitted},
		{parser.OutcomeUnknown, parser.RulingRejected},
	}
	for _, tt := range tests {
		t.Run(string(tt.outcome)+"_"+string(tt.ruling), func(t *testing.T) {
			d := reconcileInput(tt.outcome, tt.ruling)
			assert.Empty(t, parser.Reconcile(d))
			assert.Equal(t, tt.ruling, d.Ruling)
		})
	}
}

func TestReconcile_PartialAgainstRejectedFilename(t *testing.T) {
	d := reconcileInput(parser.OutcomeRejected, parser.RulingPartiallyAdmitted)

	warnings := parser.Reconcile(d)

	assert.Equal(t, []string{"ruling mismatch: filename=R, text=PARTIALLY_ADMITTED"}, warnings)
	assert.Equal(t, parser.RulingPartiallyAdmitted, d.Ruling)
}

func TestReconcile_OutcomeFallback(t *testing.T) {
	d := reconcileInput(parser.OutcomeAdmitted, parser.RulingNone)
	assert.Empty(t, parser.Reconcile(d))
	assert.Equal(t, parser.RulingAdmitted, d.Ruling)

	d = reconcileInput(parser.OutcomeRejected, parser.RulingNone)
	assert.Empty(t, parser.Reconcile(d))
	assert.Equal(t, parser.RulingRejected, d.Ruling)

	d = reconcileInput(parser.OutcomeUnknown, parser.RulingNone)
	assert.Empty(t, parser.Reconcile(d))
	assert.Equal(t, parser.RulingNone, d.Ruling)
}

func TestReconcile_MissingFields(t *testing.T) {
	d := &parser.ParsedDecision{FilenameOutcome: parser.OutcomeUnknown}

	warnings := parser.Reconcile(d)

	assert.Equal(t, []string{"no criticism codes found", "no CPV classification code found"}, warnings)
}
