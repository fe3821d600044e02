package port

import "expertap/internal/parser"

// DecisionParser turns a decision text and its filename into structured metadata.
type DecisionParser interface {
	Parse(text, filename string) (*parser.ParsedDecision, error)
}
