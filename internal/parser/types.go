package parser

import (
	"fmt"
	"strings"
	"time"
)

// CriticismCode classifies the nature of a complaint: D1..D7 and DAL target the
// procurement documentation, R1..R7 and RAL target the procedure's result.
type CriticismCode string

// ContestType is derived from the prefix of the first criticism code.
type ContestType string

const (
	ContestDocumentation ContestType = "documentation"
	ContestResult        ContestType = "result"
)

// FilenameOutcome is the outcome letter encoded in the filename.
type FilenameOutcome string

const (
	OutcomeAdmitted FilenameOutcome = "A"
	OutcomeRejected FilenameOutcome = "R"
	OutcomeUnknown  FilenameOutcome = "X"
)

// TextRuling is the ruling read from the dispositive section. The empty value
// means the ruling could not be determined.
type TextRuling string

const (
	RulingNone              TextRuling = ""
	RulingAdmitted          TextRuling = "ADMITTED"
	RulingPartiallyAdmitted TextRuling = "PARTIALLY_ADMITTED"
	RulingRejected          TextRuling = "REJECTED"
	RulingUnknown           TextRuling = "UNKNOWN"
)

// IsAdmitted reports whether the ruling grants the complaint, fully or in part.
func (r TextRuling) IsAdmitted() bool {
	switch r {
	case RulingAdmitted, RulingPartiallyAdmitted:
		return true
	case RulingNone, RulingRejected, RulingUnknown:
		return false
	}
	return false
}

// Determined reports whether a ruling was found.
func (r TextRuling) Determined() bool {
	return r != RulingNone
}

// RejectionReason is the closed vocabulary of grounds for rejecting a complaint.
type RejectionReason string

const (
	ReasonUnfounded      RejectionReason = "unfounded"
	ReasonTimeBarred     RejectionReason = "time-barred"
	ReasonLackOfInterest RejectionReason = "lack-of-interest"
	ReasonInadmissible   RejectionReason = "inadmissible"
	ReasonMoot           RejectionReason = "moot"
)

// SectionKind names a logical part of a decision.
type SectionKind string

const (
	SectionHeader             SectionKind = "header"
	SectionContestantRequests SectionKind = "contestant_requests"
	SectionProcedureHistory   SectionKind = "procedure_history"
	SectionAuthorityPosition  SectionKind = "authority_position"
	SectionIntervention       SectionKind = "intervention"
	SectionCouncilAnalysis    SectionKind = "council_analysis"
	SectionDispositive        SectionKind = "dispositive"
)

// CPVSource records where the classification code came from.
type CPVSource string

const (
	CPVFromFilename CPVSource = "from_filename"
	CPVFromText     CPVSource = "from_text"
	CPVInferred     CPVSource = "inferred"
)

// FilenameMetadata is the result of decoding a filename.
type FilenameMetadata struct {
	BulletinYear   int             `json:"bulletin_year" yaml:"bulletin_year"`
	BulletinNumber int             `json:"bulletin_number" yaml:"bulletin_number"`
	CriticismCodes []CriticismCode `json:"criticism_codes" yaml:"criticism_codes"`
	CPVCode        string          `json:"cpv_code,omitempty" yaml:"cpv_code,omitempty"`
	Outcome        FilenameOutcome `json:"outcome" yaml:"outcome"`
	ContestType    ContestType     `json:"contest_type" yaml:"contest_type"`
	Filename       string          `json:"filename" yaml:"filename"`
}

// ArticleRef is a citation of a legal provision found in the body.
type ArticleRef struct {
	Article   string `json:"article" yaml:"article"`
	Paragraph string `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Act       string `json:"act,omitempty" yaml:"act,omitempty"`
}

func (a ArticleRef) String() string {
	var b strings.Builder
	b.WriteString("art. ")
	b.WriteString(a.Article)
	if a.Paragraph != "" {
		fmt.Fprintf(&b, " alin. (%s)", a.Paragraph)
	}
	if a.Act != "" {
		b.WriteString(" din ")
		b.WriteString(a.Act)
	}
	return b.String()
}

// TextMetadata holds everything the extractor reads from the body.
type TextMetadata struct {
	BulletinNumber  int
	DecisionNumber  int
	Panel           string
	DecisionDate    *time.Time
	Ruling          TextRuling
	RejectionReason RejectionReason
	CPVCode         string
	CPVSource       CPVSource
	CriticismCodes  []CriticismCode
	Contestant      string
	Authority       string
	Intervenors     []string
	ArticleRefs     []ArticleRef
}

// DecisionSection is a contiguous span of the full text. Start and End are
// byte offsets, half-open.
type DecisionSection struct {
	Kind             SectionKind `json:"kind" yaml:"kind"`
	Order            int         `json:"order" yaml:"order"`
	Start            int         `json:"start" yaml:"start"`
	End              int         `json:"end" yaml:"end"`
	Text             string      `json:"text" yaml:"text"`
	Marker           string      `json:"marker" yaml:"marker"`
	IntervenorNumber int         `json:"intervenor_number,omitempty" yaml:"intervenor_number,omitempty"`
}

// ParsedDecision is the merged view of a decision produced by Parser.Parse.
type ParsedDecision struct {
	Filename        string            `json:"filename" yaml:"filename"`
	BulletinYear    int               `json:"bulletin_year" yaml:"bulletin_year"`
	BulletinNumber  int               `json:"bulletin_number" yaml:"bulletin_number"`
	DecisionNumber  int               `json:"decision_number,omitempty" yaml:"decision_number,omitempty"`
	Panel           string            `json:"panel,omitempty" yaml:"panel,omitempty"`
	DecisionDate    *time.Time        `json:"decision_date,omitempty" yaml:"decision_date,omitempty"`
	ContestType     ContestType       `json:"contest_type" yaml:"contest_type"`
	CriticismCodes  []CriticismCode   `json:"criticism_codes" yaml:"criticism_codes"`
	CPVCode         string            `json:"cpv_code,omitempty" yaml:"cpv_code,omitempty"`
	CPVSource       CPVSource         `json:"cpv_source,omitempty" yaml:"cpv_source,omitempty"`
	FilenameOutcome FilenameOutcome   `json:"filename_outcome" yaml:"filename_outcome"`
	Ruling          TextRuling        `json:"ruling,omitempty" yaml:"ruling,omitempty"`
	RejectionReason RejectionReason   `json:"rejection_reason,omitempty" yaml:"rejection_reason,omitempty"`
	Contestant      string            `json:"contestant,omitempty" yaml:"contestant,omitempty"`
	Authority       string            `json:"authority,omitempty" yaml:"authority,omitempty"`
	Intervenors     []string          `json:"intervenors" yaml:"intervenors"`
	ArticleRefs     []ArticleRef      `json:"article_refs" yaml:"article_refs"`
	FullText        string            `json:"-" yaml:"-"`
	Sections        []DecisionSection `json:"sections" yaml:"sections"`
	Warnings        []string          `json:"warnings" yaml:"warnings"`
}

// ExternalID identifies the decision by its bulletin, e.g. "BO2025_3855".
func (d *ParsedDecision) ExternalID() string {
	return fmt.Sprintf("BO%d_%d", d.BulletinYear, d.BulletinNumber)
}

// Title renders a short human-readable label such as
// "BO2025 - Nr. 3855 - [R2] - [ADMITTED]".
func (d *ParsedDecision) Title() string {
	parts := []string{fmt.Sprintf("BO%d", d.BulletinYear), fmt.Sprintf("Nr. %d", d.BulletinNumber)}
	if len(d.CriticismCodes) > 0 {
		codes := make([]string, len(d.CriticismCodes))
		for i, c := range d.CriticismCodes {
			codes[i] = string(c)
		}
		parts = append(parts, "["+strings.Join(codes, "+")+"]")
	}
	switch {
	case d.Ruling.Determined():
		parts = append(parts, "["+string(d.Ruling)+"]")
	case d.FilenameOutcome == OutcomeAdmitted:
		parts = append(parts, "["+string(RulingAdmitted)+"]")
	case d.FilenameOutcome == OutcomeRejected:
		parts = append(parts, "["+string(RulingRejected)+"]")
	}
	return strings.Join(parts, " - ")
}

// CodeStrings returns the criticism codes as plain strings.
func (d *ParsedDecision) CodeStrings() []string {
	out := make([]string, len(d.CriticismCodes))
	for i, c := range d.CriticismCodes {
		out[i] = string(c)
	}
	return out
}
