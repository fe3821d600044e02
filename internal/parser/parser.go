// Package parser turns CNSC decision texts and their bulletin filenames into
// structured metadata. It does no I/O and keeps no state between calls.
package parser

import (
	"path/filepath"
	"strings"
)

// Parser is the entry point for decoding a decision. The zero value is ready
// to use and safe for concurrent use.
type Parser struct{}

// New returns a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse decodes filename (optional) and extracts metadata from text.
// Only empty text is an error; a bad filename is recorded as a warning and
// parsing continues from the text alone.
func (p *Parser) Parse(text, filename string) (*ParsedDecision, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	d := &ParsedDecision{
		Filename:        filename,
		FilenameOutcome: OutcomeUnknown,
		ContestType:     ContestDocumentation,
		CriticismCodes:  []CriticismCode{},
		FullText:        text,
	}
	if filename != "" {
		d.Filename = filepath.Base(filename)
	}

	var warnings []string
	var fm *FilenameMetadata
	if filename != "" {
		meta, err := DecodeFilename(filename)
		if err != nil {
			warnings = append(warnings, "filename: "+err.Error())
		} else {
			fm = meta
			d.BulletinYear = meta.BulletinYear
			d.BulletinNumber = meta.BulletinNumber
			d.CriticismCodes = meta.CriticismCodes
			d.ContestType = meta.ContestType
			d.FilenameOutcome = meta.Outcome
			if meta.CPVCode != "" {
				d.CPVCode = meta.CPVCode
				d.CPVSource = CPVFromFilename
			}
		}
	}

	tm, extractWarnings := ExtractText(text, fm)
	warnings = append(warnings, extractWarnings...)

	d.DecisionNumber = tm.DecisionNumber
	d.Panel = tm.Panel
	d.DecisionDate = tm.DecisionDate
	d.Ruling = tm.Ruling
	d.RejectionReason = tm.RejectionReason
	d.Contestant = tm.Contestant
	d.Authority = tm.Authority
	d.Intervenors = tm.Intervenors
	d.ArticleRefs = tm.ArticleRefs
	if d.CPVCode == "" && tm.CPVCode != "" {
		d.CPVCode = tm.CPVCode
		d.CPVSource = tm.CPVSource
	}
	if len(d.CriticismCodes) == 0 && len(tm.CriticismCodes) > 0 {
		d.CriticismCodes = tm.CriticismCodes
		d.ContestType = deriveContestType(tm.CriticismCodes)
	}

	d.Sections = Segment(text)
	d.Warnings = append(warnings, Reconcile(d)...)
	if d.Warnings == nil {
		d.Warnings = []string{}
	}
	return d, nil
}
