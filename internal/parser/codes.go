package parser

import (
	"regexp"
	"strings"
)

// UnknownCodeDescription is returned by Description for codes outside the registry.
const UnknownCodeDescription = "Cod necunoscut"

// CodeInfo describes a criticism code.
type CodeInfo struct {
	Code        CriticismCode `json:"code" yaml:"code"`
	Description string        `json:"description" yaml:"description"`
	ContestType ContestType   `json:"contest_type" yaml:"contest_type"`
}

var codeTokenPattern = regexp.MustCompile(`^(?:[DR][1-7]|DAL|RAL)$`)

var registry = []CodeInfo{
	{"D1", "Cerințe restrictive: experiență similară, criterii calificare, specificații tehnice", ContestDocumentation},
	{"D2", "Criterii atribuire/factori evaluare fără algoritm calcul sau cu algoritm netransparent/subiectiv", ContestDocumentation},
	{"D3", "Denumiri tehnologii/produse/marci/producatori fara sintagma 'sau echivalent'", ContestDocumentation},
	{"D4", "Lipsa răspuns clar/complet la solicitările de clarificări privind documentația", ContestDocumentation},
	{"D5", "Forma de constituire a garanției de participare", ContestDocumentation},
	{"D6", "Clauze contractuale inechitabile sau excesive", ContestDocumentation},
	{"D7", "Nedivizarea achiziției pe loturi (produse/lucrări similare)", ContestDocumentation},
	{"DAL", "Altele (documentație) - necesită extragere din text", ContestDocumentation},
	{"R1", "Contestații contra PV ședință deschidere (garanție participare, mod desfășurare)", ContestResult},
	{"R2", "Respingerea ofertei contestatorului ca neconformă sau inacceptabilă", ContestResult},
	{"R3", "Preț neobișnuit de scăzut al ofertelor altor participanți", ContestResult},
	{"R4", "Documente calificare ale altor ofertanți / mod de punctare-evaluare", ContestResult},
	{"R5", "Lipsa precizării motivelor de respingere în comunicare", ContestResult},
	{"R6", "Lipsa solicitare clarificări propunere tehnică/preț sau apreciere incorectă răspunsuri", ContestResult},
	{"R7", "Anularea fără temei legal a procedurii de către AC", ContestResult},
	{"RAL", "Altele (rezultat) - necesită extragere din text", ContestResult},
}

var registryIndex = func() map[CriticismCode]CodeInfo {
	m := make(map[CriticismCode]CodeInfo, len(registry))
	for _, c := range registry {
		m[c.Code] = c
	}
	return m
}()

// Codes returns the full registry in canonical order. The slice is a copy.
func Codes() []CodeInfo {
	out := make([]CodeInfo, len(registry))
	copy(out, registry)
	return out
}

// LookupCode returns the registry entry for code, case-insensitively.
func LookupCode(code string) (CodeInfo, bool) {
	info, ok := registryIndex[CriticismCode(strings.ToUpper(code))]
	return info, ok
}

// Description returns the description for code, or UnknownCodeDescription.
func Description(code string) string {
	if info, ok := LookupCode(code); ok {
		return info.Description
	}
	return UnknownCodeDescription
}

// IsCriticismCode reports whether token is a valid code, case-insensitively.
func IsCriticismCode(token string) bool {
	return codeTokenPattern.MatchString(strings.ToUpper(token))
}

// deriveContestType applies the first-code rule; no codes means documentation.
func deriveContestType(codes []CriticismCode) ContestType {
	if len(codes) == 0 {
		return ContestDocumentation
	}
	if strings.HasPrefix(string(codes[0]), "R") {
		return ContestResult
	}
	return ContestDocumentation
}

// dedupeCodes upper-cases tokens, keeps valid codes and drops repeats,
// preserving first-seen order.
func dedupeCodes(tokens []string) []CriticismCode {
	seen := make(map[CriticismCode]bool, len(tokens))
	out := make([]CriticismCode, 0, len(tokens))
	for _, t := range tokens {
		c := CriticismCode(strings.ToUpper(t))
		if !codeTokenPattern.MatchString(string(c)) || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
