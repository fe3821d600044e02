package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	decisionHeader  = regexp.MustCompile(`(?i)\bNr\.?\s*(\d+)/([A-Z]\d+)/(\d+)`)
	cpvExplicit     = regexp.MustCompile(`\b(\d{8}-\d)\b`)
	cpvAfterKeyword = regexp.MustCompile(`(?i)\bCPV\b[\s:.]*(?:cod\s*)?(\d{8})\b`)
	criticismToken  = regexp.MustCompile(`(?i)\b([DR][1-7]|DAL|RAL)\b`)
)

type cpvResult struct {
	code   string
	source CPVSource
}

var cpvStrategies = []strategy[cpvResult]{
	{name: "explicit", apply: func(text string) (cpvResult, bool) {
		m := cpvExplicit.FindStringSubmatch(text)
		if m == nil {
			return cpvResult{}, false
		}
		return cpvResult{code: m[1], source: CPVFromText}, true
	}},
	{name: "after_keyword", apply: func(text string) (cpvResult, bool) {
		m := cpvAfterKeyword.FindStringSubmatch(text)
		if m == nil {
			return cpvResult{}, false
		}
		return cpvResult{code: m[1], source: CPVInferred}, true
	}},
}

// ExtractText reads every field it can from the body. fm may be nil; when it
// carries a CPV code or criticism codes the corresponding text passes are
// skipped. It never fails: missing fields stay zero and anomalies come back
// as warnings.
func ExtractText(text string, fm *FilenameMetadata) (TextMetadata, []string) {
	var (
		meta     TextMetadata
		warnings []string
	)

	if bulletin, panel, decision, ok := decisionHeaderFields(text); ok {
		meta.BulletinNumber = bulletin
		meta.Panel = panel
		meta.DecisionNumber = decision
		if fm != nil && fm.BulletinNumber != 0 && meta.BulletinNumber != fm.BulletinNumber {
			warnings = append(warnings, fmt.Sprintf("bulletin number mismatch: filename=%d, text=%d",
				fm.BulletinNumber, meta.BulletinNumber))
		}
	}

	meta.DecisionDate = extractDate(text)

	if fm == nil || fm.CPVCode == "" {
		if res, _, ok := firstMatch(text, cpvStrategies); ok {
			meta.CPVCode = res.code
			meta.CPVSource = res.source
		}
	}

	if fm == nil || len(fm.CriticismCodes) == 0 {
		var tokens []string
		for _, m := range criticismToken.FindAllStringSubmatch(text, -1) {
			tokens = append(tokens, m[1])
		}
		meta.CriticismCodes = dedupeCodes(tokens)
	}

	meta.Contestant = firstParty(contestantLabel, text)
	meta.Authority = firstParty(authorityLabel, text)
	meta.Intervenors = intervenors(text)

	meta.Ruling, meta.RejectionReason = extractRuling(text)
	meta.ArticleRefs = articleRefs(text)

	return meta, warnings
}

// decisionHeaderFields reads the first "Nr. bulletin/panel/decision" header.
// A header whose numbers do not fit a 32-bit column counts as absent.
func decisionHeaderFields(text string) (bulletin int, panel string, decision int, ok bool) {
	m := decisionHeader.FindStringSubmatch(text)
	if m == nil {
		return 0, "", 0, false
	}
	b, err := strconv.ParseInt(m[1], 10, 32)
	if err != nil {
		return 0, "", 0, false
	}
	d, err := strconv.ParseInt(m[3], 10, 32)
	if err != nil {
		return 0, "", 0, false
	}
	return int(b), strings.ToUpper(m[2]), int(d), true
}
