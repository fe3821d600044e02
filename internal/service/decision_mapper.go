package service

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"expertap/internal/domain"
	"expertap/internal/parser"
)

// contentHash is the hex SHA-256 of the decoded text.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// applyParsed copies the parse result onto d, keeping d's identity, storage key and timestamps.
func applyParsed(d *domain.Decision, p *parser.ParsedDecision) error {
	refs := p.ArticleRefs
	if refs == nil {
		refs = []parser.ArticleRef{}
	}
	rawRefs, err := json.Marshal(refs)
	if err != nil {
		return fmt.Errorf("encoding article refs: %w", err)
	}

	d.ExternalID = p.ExternalID()
	d.Filename = p.Filename
	d.Title = p.Title()
	d.BulletinYear = p.BulletinYear
	d.BulletinNumber = p.BulletinNumber
	d.DecisionNumber = nil
	if p.DecisionNumber > 0 {
		n := p.DecisionNumber
		d.DecisionNumber = &n
	}
	d.Panel = p.Panel
	d.DecisionDate = p.DecisionDate
	d.ContestType = string(p.ContestType)
	d.CriticismCodes = pq.StringArray(nonNil(p.CodeStrings()))
	d.CPVCode = p.CPVCode
	d.CPVSource = string(p.CPVSource)
	d.FilenameOutcome = string(p.FilenameOutcome)
	d.Ruling = string(p.Ruling)
	d.RejectionReason = string(p.RejectionReason)
	d.Contestant = p.Contestant
	d.Authority = p.Authority
	d.Intervenors = pq.StringArray(nonNil(p.Intervenors))
	d.ArticleRefs = rawRefs
	d.ParseWarnings = pq.StringArray(nonNil(p.Warnings))
	d.FullText = p.FullText
	d.ContentHash = contentHash(p.FullText)
	return nil
}

// newDecisionRecord builds a fresh row and its section rows from a parse result.
func newDecisionRecord(p *parser.ParsedDecision) (*domain.Decision, []domain.DecisionSection, error) {
	d := &domain.Decision{ID: uuid.New()}
	if err := applyParsed(d, p); err != nil {
		return nil, nil, err
	}
	return d, sectionRecords(d.ID, p.Sections), nil
}

func sectionRecords(decisionID uuid.UUID, sections []parser.DecisionSection) []domain.DecisionSection {
	out := make([]domain.DecisionSection, len(sections))
	for i, s := range sections {
		out[i] = domain.DecisionSection{
			ID:          uuid.New(),
			DecisionID:  decisionID,
			Kind:        string(s.Kind),
			Ordinal:     s.Order,
			StartOffset: s.Start,
			EndOffset:   s.End,
			Marker:      s.Marker,
			Text:        s.Text,
		}
		if s.IntervenorNumber > 0 {
			n := s.IntervenorNumber
			out[i].IntervenorNumber = &n
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
