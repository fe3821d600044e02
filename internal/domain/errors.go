package domain

import "errors"

var (
	ErrNotFound              = errors.New("resource not found")
	ErrDecisionNotFound      = errors.New("decision not found")
	ErrDecisionAlreadyExists = errors.New("decision already imported")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrInvalidToken          = errors.New("invalid or expired token")
	ErrUnsupportedFileType   = errors.New("unsupported file type")
	ErrFileTooLarge          = errors.New("file exceeds maximum allowed size")
	ErrEmptyDocument         = errors.New("document has no text")
	ErrUploadFailed          = errors.New("file upload to storage failed")
	ErrInvalidFilter         = errors.New("invalid list filter")
)
