package parser

import "regexp"

var articlePattern = regexp.MustCompile(`(?i)\bart(?:icolul|icol|\.)?\s*(\d+)(?:\^\d+)?` +
	`(?:\s*alin(?:eatul|eat|\.)?\s*\(?(\d+)\)?)?` +
	`(?:[^\n]{0,40}?\bdin\s+((?:legea|oug|o\.u\.g\.|hg|h\.g\.)\s+(?:nr\.?\s*)?\d+/\d{4}))?`)

// articleRefs lists legal citations in document order without repeats.
func articleRefs(text string) []ArticleRef {
	out := []ArticleRef{}
	seen := map[ArticleRef]bool{}
	for _, m := range articlePattern.FindAllStringSubmatch(text, -1) {
		ref := ArticleRef{Article: m[1], Paragraph: m[2], Act: collapseSpace(m[3])}
		if seen[ref] {
			continue
		}
		seen[ref] = true
		out = append(out, ref)
	}
	return out
}
