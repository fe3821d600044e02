package parser

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFilename  = errors.New("filename does not match the bulletin naming convention")
	ErrNoCriticismCodes = errors.New("filename carries no valid criticism code")
	ErrEmptyText        = errors.New("decision text is empty")
)

// FilenameError reports why a filename could not be decoded.
type FilenameError struct {
	Filename string
	Err      error
}

func (e *FilenameError) Error() string {
	return fmt.Sprintf("%s: %v", e.Filename, e.Err)
}

func (e *FilenameError) Unwrap() error {
	return e.Err
}
