package parser

import (
	"regexp"
	"strings"
)

// dispositiveWindow is how many runes after the dispositive marker are searched for the ruling.
const dispositiveWindow = 2000

var dispositiveMarkers = []string{
	"CONSILIUL DECIDE:",
	"CONSILIUL HOTĂRĂȘTE:",
	"PENTRU ACESTE MOTIVE",
	"DECIDE:",
}

var (
	partiallyAdmittedPattern = regexp.MustCompile(`(?i)\badmite,?\s+(?:[îi]n\s+parte|par[țţt]ial),?\s+contesta[țţt]ia`)
	admittedPattern          = regexp.MustCompile(`(?i)\badmite(?:,?\s+[îi]n\s+totalitate,?)?\s+contesta[țţt]ia`)
	rejectedReasonPattern    = regexp.MustCompile(`(?i)\brespinge,?\s+ca\s+((?:\p{L}+\s+){0,2}\p{L}+),?\s+contesta[țţt]ia`)
	rejectedPattern          = regexp.MustCompile(`(?i)\brespinge\b[^.;]{0,120}?contesta[țţt]ia`)
)

type rejectionPhrase struct {
	folded string
	reason RejectionReason
}

// rejectionVocabulary is scanned in this order when the reason is not spelled
// right after "Respinge, ca".
var rejectionVocabulary = []rejectionPhrase{
	{"nefondata", ReasonUnfounded},
	{"tardiva", ReasonTimeBarred},
	{"lipsita de interes", ReasonLackOfInterest},
	{"inadmisibila", ReasonInadmissible},
	{"ramasa fara obiect", ReasonMoot},
}

type rulingResult struct {
	ruling TextRuling
	reason RejectionReason
}

var rulingStrategies = []strategy[rulingResult]{
	{name: "partially_admitted", apply: func(w string) (rulingResult, bool) {
		return rulingResult{ruling: RulingPartiallyAdmitted}, partiallyAdmittedPattern.MatchString(w)
	}},
	{name: "admitted", apply: func(w string) (rulingResult, bool) {
		return rulingResult{ruling: RulingAdmitted}, admittedPattern.MatchString(w)
	}},
	{name: "rejected_with_reason", apply: func(w string) (rulingResult, bool) {
		m := rejectedReasonPattern.FindStringSubmatch(w)
		if m == nil {
			return rulingResult{}, false
		}
		reason, ok := lookupReason(m[1])
		if !ok {
			reason = scanReason(w)
		}
		return rulingResult{ruling: RulingRejected, reason: reason}, true
	}},
	{name: "rejected", apply: func(w string) (rulingResult, bool) {
		if !rejectedPattern.MatchString(w) {
			return rulingResult{}, false
		}
		return rulingResult{ruling: RulingRejected, reason: scanReason(w)}, true
	}},
}

// dispositiveStart returns the byte offset of the earliest dispositive marker.
func dispositiveStart(text string) (int, bool) {
	haystack := normalizeCommaBelow(text)
	start := -1
	for _, marker := range dispositiveMarkers {
		if pos := strings.Index(haystack, marker); pos >= 0 && (start < 0 || pos < start) {
			start = pos
		}
	}
	return start, start >= 0
}

// extractRuling reads the ruling from the dispositive window. With no marker
// present the ruling stays undetermined.
func extractRuling(text string) (TextRuling, RejectionReason) {
	start, ok := dispositiveStart(text)
	if !ok {
		return RulingNone, ""
	}
	window := truncateRunes(text[start:], dispositiveWindow)
	res, _, ok := firstMatch(window, rulingStrategies)
	if !ok {
		return RulingNone, ""
	}
	return res.ruling, res.reason
}

func lookupReason(token string) (RejectionReason, bool) {
	folded := collapseSpace(foldDiacritics(token))
	for _, p := range rejectionVocabulary {
		if folded == p.folded {
			return p.reason, true
		}
	}
	return "", false
}

func scanReason(window string) RejectionReason {
	folded := collapseSpace(foldDiacritics(window))
	for _, p := range rejectionVocabulary {
		if strings.Contains(folded, p.folded) {
			return p.reason
		}
	}
	return ""
}
