package parser

import "fmt"

// reconcileRule inspects and may adjust a decision, returning any warnings.
type reconcileRule struct {
	name  string
	apply func(d *ParsedDecision) []string
}

var reconcileRules = []reconcileRule{
	{name: "outcome_fallback", apply: func(d *ParsedDecision) []string {
		if d.Ruling.Determined() {
			return nil
		}
		switch d.FilenameOutcome {
		case OutcomeAdmitted:
			d.Ruling = RulingAdmitted
		case OutcomeRejected:
			d.Ruling = RulingRejected
		case OutcomeUnknown:
		}
		return nil
	}},
	{name: "outcome_consistency", apply: func(d *ParsedDecision) []string {
		if d.FilenameOutcome == OutcomeUnknown || d.FilenameOutcome == "" || !d.Ruling.Determined() {
			return nil
		}
		if (d.FilenameOutcome == OutcomeAdmitted) == d.Ruling.IsAdmitted() {
			return nil
		}
		return []string{fmt.Sprintf("ruling mismatch: filename=%s, text=%s", d.FilenameOutcome, d.Ruling)}
	}},
	{name: "codes_present", apply: func(d *ParsedDecision) []string {
		if len(d.CriticismCodes) > 0 {
			return nil
		}
		return []string{"no criticism codes found"}
	}},
	{name: "cpv_present", apply: func(d *ParsedDecision) []string {
		if d.CPVCode != "" {
			return nil
		}
		return []string{"no CPV classification code found"}
	}},
}

// Reconcile settles the filename and text views of d in place. The text
// ruling stays authoritative; the filename outcome only fills a gap. The
// returned warnings are in rule order.
func Reconcile(d *ParsedDecision) []string {
	var warnings []string
	for _, r := range reconcileRules {
		warnings = append(warnings, r.apply(d)...)
	}
	return warnings
}
