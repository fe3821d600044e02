// Package export renders stored decisions as CSV or XLSX spreadsheets.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"expertap/internal/domain"
)

// columns defines the header row shared by every format.
var columns = []string{
	"External ID",
	"Filename",
	"Title",
	"Bulletin Year",
	"Bulletin Number",
	"Decision Number",
	"Panel",
	"Decision Date",
	"Contest Type",
	"Criticism Codes",
	"CPV Code",
	"CPV Source",
	"Filename Outcome",
	"Ruling",
	"Rejection Reason",
	"Contestant",
	"Authority",
	"Intervenors",
	"Parse Warnings",
	"Created At",
}

// Columns returns a copy of the header row.
func Columns() []string {
	return append([]string(nil), columns...)
}

// decisionToRow converts a decision to one row aligned with columns.
func decisionToRow(d *domain.Decision) []string {
	row := make([]string, len(columns))
	row[0] = d.ExternalID
	row[1] = d.Filename
	row[2] = d.Title
	row[3] = formatPositive(d.BulletinYear)
	row[4] = formatPositive(d.BulletinNumber)
	if d.DecisionNumber != nil {
		row[5] = strconv.Itoa(*d.DecisionNumber)
	}
	row[6] = d.Panel
	if d.DecisionDate != nil {
		row[7] = d.DecisionDate.Format("2006-01-02")
	}
	row[8] = d.ContestType
	row[9] = strings.Join(d.CriticismCodes, "+")
	row[10] = d.CPVCode
	row[11] = d.CPVSource
	row[12] = d.FilenameOutcome
	row[13] = d.Ruling
	row[14] = d.RejectionReason
	row[15] = d.Contestant
	row[16] = d.Authority
	row[17] = strings.Join(d.Intervenors, "; ")
	row[18] = strings.Join(d.ParseWarnings, "; ")
	row[19] = d.CreatedAt.Format(time.RFC3339)
	return row
}

// formatPositive leaves unknown (zero) bulletin fields blank.
func formatPositive(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a label for use in Content-Disposition.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {label}_{YYYY-MM-DD}.{format}. An empty label becomes "decisions".
func BuildFilename(label string, format domain.ExportFormat) string {
	sanitized := SanitizeFilename(label)
	if sanitized == "" {
		sanitized = "decisions"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, time.Now().Format("2006-01-02"), format)
}
