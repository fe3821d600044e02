package parser

import (
	"sort"
	"strings"
)

type sectionMarkers struct {
	kind    SectionKind
	markers []string
}

// sectionTable order decides which kind keeps a position claimed by two kinds.
var sectionTable = []sectionMarkers{
	{SectionHeader, []string{"CONSILIUL NAȚIONAL DE SOLUȚIONARE A CONTESTAȚIILOR"}},
	{SectionContestantRequests, []string{"Contestatorul solicită", "În contestație se solicită", "Prin contestație"}},
	{SectionProcedureHistory, []string{"În fapt", "Istoricul procedurii"}},
	{SectionAuthorityPosition, []string{
		"Punct de vedere",
		"Autoritatea contractantă a formulat punct de vedere",
		"a transmis punct de vedere",
	}},
	{SectionIntervention, []string{"Cerere de intervenție", "a formulat cerere de intervenție", "Intervenient"}},
	{SectionCouncilAnalysis, []string{"În drept", "Analizând actele și lucrările dosarului"}},
	{SectionDispositive, dispositiveMarkers},
}

type sectionStart struct {
	pos    int
	rank   int
	kind   SectionKind
	marker string
}

// Segment splits text into sections opened by the earliest marker of each
// kind. Cedilla and comma-below spellings of ş and ţ match alike. Each
// section runs to the start of the next one or to the end of the text. Text
// without markers yields an empty slice.
func Segment(text string) []DecisionSection {
	haystack := normalizeCommaBelow(text)
	starts := make([]sectionStart, 0, len(sectionTable))
	for rank, entry := range sectionTable {
		best := sectionStart{pos: -1}
		for _, marker := range entry.markers {
			pos := strings.Index(haystack, marker)
			if pos < 0 {
				continue
			}
			if best.pos < 0 || pos < best.pos {
				best = sectionStart{pos: pos, rank: rank, kind: entry.kind, marker: marker}
			}
		}
		if best.pos >= 0 {
			starts = append(starts, best)
		}
	}

	sort.SliceStable(starts, func(i, j int) bool {
		if starts[i].pos != starts[j].pos {
			return starts[i].pos < starts[j].pos
		}
		return starts[i].rank < starts[j].rank
	})

	deduped := starts[:0]
	for _, s := range starts {
		if len(deduped) > 0 && deduped[len(deduped)-1].pos == s.pos {
			continue
		}
		deduped = append(deduped, s)
	}
	starts = deduped

	sections := make([]DecisionSection, 0, len(starts))
	interventions := 0
	for i, s := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1].pos
		}
		sec := DecisionSection{
			Kind:   s.kind,
			Order:  i + 1,
			Start:  s.pos,
			End:    end,
			Text:   text[s.pos:end],
			Marker: s.marker,
		}
		if s.kind == SectionIntervention {
			interventions++
			sec.IntervenorNumber = interventions
		}
		sections = append(sections, sec)
	}
	return sections
}
