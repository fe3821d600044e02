package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var romanianMonths = map[string]time.Month{
	"ianuarie":   time.January,
	"februarie":  time.February,
	"martie":     time.March,
	"aprilie":    time.April,
	"mai":        time.May,
	"iunie":      time.June,
	"iulie":      time.July,
	"august":     time.August,
	"septembrie": time.September,
	"octombrie":  time.October,
	"noiembrie":  time.November,
	"decembrie":  time.December,
}

var (
	dateTextual = regexp.MustCompile(`(?i)\b(?:data|din)\s*[:\s]*(\d{1,2})\s+` +
		`(ianuarie|februarie|martie|aprilie|mai|iunie|iulie|august|septembrie|octombrie|noiembrie|decembrie)\s+(\d{4})`)
	dateNumeric = regexp.MustCompile(`(?i)\b(?:data|din)\s*[:\s]*(\d{1,2})[./-](\d{1,2})[./-](\d{4})`)
)

var dateStrategies = []strategy[time.Time]{
	{name: "textual_month", apply: func(text string) (time.Time, bool) {
		for _, m := range dateTextual.FindAllStringSubmatch(text, -1) {
			month := romanianMonths[strings.ToLower(m[2])]
			if t, ok := makeDate(m[3], int(month), m[1]); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}},
	{name: "numeric", apply: func(text string) (time.Time, bool) {
		for _, m := range dateNumeric.FindAllStringSubmatch(text, -1) {
			month, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			if t, ok := makeDate(m[3], month, m[1]); ok {
				return t, true
			}
		}
		return time.Time{}, false
	}},
}

// extractDate returns the first valid decision date, or nil.
func extractDate(text string) *time.Time {
	t, _, ok := firstMatch(text, dateStrategies)
	if !ok {
		return nil
	}
	return &t
}

// makeDate rejects out-of-range components instead of letting time.Date normalize them.
func makeDate(year string, month int, day string) (time.Time, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return time.Time{}, false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(month), d, 0, 0, 0, 0, time.UTC)
	if t.Day() != d || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
