package parser

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

var (
	filenameWithCPV    = regexp.MustCompile(`(?i)^BO(\d{4})_(\d+)_([A-Za-z0-9_]+?)_CPV_(\d{8}(?:-\d)?)_([ARX])\.txt$`)
	filenameWithoutCPV = regexp.MustCompile(`(?i)^BO(\d{4})_(\d+)_([A-Za-z0-9_]+?)_([ARX])\.txt$`)
)

type filenameParts struct {
	year, number, codes, cpv, outcome string
}

var filenameStrategies = []strategy[filenameParts]{
	{name: "with_cpv", apply: func(name string) (filenameParts, bool) {
		m := filenameWithCPV.FindStringSubmatch(name)
		if m == nil {
			return filenameParts{}, false
		}
		return filenameParts{year: m[1], number: m[2], codes: m[3], cpv: m[4], outcome: m[5]}, true
	}},
	{name: "without_cpv", apply: func(name string) (filenameParts, bool) {
		m := filenameWithoutCPV.FindStringSubmatch(name)
		if m == nil {
			return filenameParts{}, false
		}
		return filenameParts{year: m[1], number: m[2], codes: m[3], outcome: m[4]}, true
	}},
}

// DecodeFilename decodes a name such as "BO2025_3855_R2_CPV_55520000-1_A.txt".
// Any directory part is ignored. Failures are *FilenameError values wrapping
// ErrInvalidFilename or ErrNoCriticismCodes.
func DecodeFilename(name string) (*FilenameMetadata, error) {
	base := filepath.Base(name)
	parts, _, ok := firstMatch(base, filenameStrategies)
	if !ok {
		return nil, &FilenameError{Filename: base, Err: ErrInvalidFilename}
	}

	year, err := strconv.Atoi(parts.year)
	if err != nil {
		return nil, &FilenameError{Filename: base, Err: ErrInvalidFilename}
	}
	number, err := strconv.Atoi(parts.number)
	if err != nil {
		return nil, &FilenameError{Filename: base, Err: ErrInvalidFilename}
	}

	codes := dedupeCodes(strings.Split(parts.codes, "_"))
	if len(codes) == 0 {
		return nil, &FilenameError{Filename: base, Err: ErrNoCriticismCodes}
	}

	return &FilenameMetadata{
		BulletinYear:   year,
		BulletinNumber: number,
		CriticismCodes: codes,
		CPVCode:        parts.cpv,
		Outcome:        parseOutcome(parts.outcome),
		ContestType:    deriveContestType(codes),
		Filename:       base,
	}, nil
}

// FormatFilename renders the canonical filename for meta.
func FormatFilename(meta *FilenameMetadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "BO%04d_%d", meta.BulletinYear, meta.BulletinNumber)
	for _, c := range meta.CriticismCodes {
		b.WriteByte('_')
		b.WriteString(string(c))
	}
	if meta.CPVCode != "" {
		b.WriteString("_CPV_")
		b.WriteString(meta.CPVCode)
	}
	outcome := meta.Outcome
	if outcome == "" {
		outcome = OutcomeUnknown
	}
	b.WriteByte('_')
	b.WriteString(string(outcome))
	b.WriteString(".txt")
	return b.String()
}

func parseOutcome(s string) FilenameOutcome {
	switch FilenameOutcome(strings.ToUpper(s)) {
	case OutcomeAdmitted:
		return OutcomeAdmitted
	case OutcomeRejected:
		return OutcomeRejected
	case OutcomeUnknown:
		return OutcomeUnknown
	}
	return OutcomeUnknown
}
