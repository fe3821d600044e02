package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Decision is a stored CNSC decision together with the metadata parsed from it.
type Decision struct {
	ID              uuid.UUID       `db:"id" json:"id"`
	ExternalID      string          `db:"external_id" json:"external_id"`
	Filename        string          `db:"filename" json:"filename"`
	Title           string          `db:"title" json:"title"`
	BulletinYear    int             `db:"bulletin_year" json:"bulletin_year"`
	BulletinNumber  int             `db:"bulletin_number" json:"bulletin_number"`
	DecisionNumber  *int            `db:"decision_number" json:"decision_number"`
	Panel           string          `db:"panel" json:"panel"`
	DecisionDate    *time.Time      `db:"decision_date" json:"decision_date"`
	ContestType     string          `db:"contest_type" json:"contest_type"`
	CriticismCodes  pq.StringArray  `db:"criticism_codes" json:"criticism_codes"`
	CPVCode         string          `db:"cpv_code" json:"cpv_code"`
	CPVSource       string          `db:"cpv_source" json:"cpv_source"`
	FilenameOutcome string          `db:"filename_outcome" json:"filename_outcome"`
	Ruling          string          `db:"ruling" json:"ruling"`
	RejectionReason string          `db:"rejection_reason" json:"rejection_reason"`
	Contestant      string          `db:"contestant" json:"contestant"`
	Authority       string          `db:"authority" json:"authority"`
	Intervenors     pq.StringArray  `db:"intervenors" json:"intervenors"`
	ArticleRefs     json.RawMessage `db:"article_refs" json:"article_refs"`
	ParseWarnings   pq.StringArray  `db:"parse_warnings" json:"parse_warnings"`
	FullText        string          `db:"full_text" json:"full_text,omitempty"`
	ContentHash     string          `db:"content_hash" json:"content_hash"`
	StorageKey      string          `db:"storage_key" json:"storage_key,omitempty"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}

// DecisionSection is one logical section of a stored decision.
type DecisionSection struct {
	ID               uuid.UUID `db:"id" json:"id"`
	DecisionID       uuid.UUID `db:"decision_id" json:"decision_id"`
	Kind             string    `db:"kind" json:"kind"`
	Ordinal          int       `db:"ordinal" json:"order"`
	StartOffset      int       `db:"start_offset" json:"start"`
	EndOffset        int       `db:"end_offset" json:"end"`
	Marker           string    `db:"marker" json:"marker"`
	IntervenorNumber *int      `db:"intervenor_number" json:"intervenor_number,omitempty"`
	Text             string    `db:"text" json:"text"`
}

// DecisionFilter narrows decision listings. Zero values mean "any".
type DecisionFilter struct {
	Ruling        string
	ContestType   string
	CriticismCode string
	Year          int
	Article       string // cited article number, e.g. "210"
}

// DecisionStats aggregates the stored decisions.
type DecisionStats struct {
	Total           int            `json:"total"`
	ByRuling        map[string]int `json:"by_ruling"`
	ByYear          map[int]int    `json:"by_year"`
	ByCriticismCode map[string]int `json:"by_criticism_code"`
	LastUpdated     *time.Time     `json:"last_updated"`
}

// ImportStats summarizes a batch import run.
type ImportStats struct {
	Total          int      `json:"total_files"`
	Imported       int      `json:"imported"`
	AlreadyExisted int      `json:"already_existed"`
	Failed         int      `json:"failed"`
	Errors         []string `json:"errors"`
}
