package parser

import "regexp"

const maxPartyRunes = 500

// A party value starts at the first non-blank after the label, which may be
// on the next line, and runs to the end of its line, to ", în" or to the end
// of the text.
const partyValue = `\s*(\S[^\r\n]*?)[ \t]*(?:,\s*în\b|\r?\n|$)`

var (
	contestantLabel = regexp.MustCompile(`(?i)\b(?:contestator|petent)\s*:` + partyValue)
	authorityLabel  = regexp.MustCompile(`(?i)\b(?:autoritate(?:\s+contractant[ăa])?|intimat)\s*:` + partyValue)
	intervenorLabel = regexp.MustCompile(`(?i)\bintervenient\s*:` + partyValue)
)

// firstParty returns the first non-empty cleaned label value.
func firstParty(re *regexp.Regexp, text string) string {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if name := cleanParty(m[1]); name != "" {
			return name
		}
	}
	return ""
}

// intervenors collects every intervenor label in document order, without repeats.
func intervenors(text string) []string {
	out := []string{}
	seen := map[string]bool{}
	for _, m := range intervenorLabel.FindAllStringSubmatch(text, -1) {
		name := cleanParty(m[1])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, name)
	}
	return out
}

func cleanParty(s string) string {
	return truncateRunes(collapseSpace(s), maxPartyRunes)
}
