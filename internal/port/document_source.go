package port

import "context"

// DocumentSource yields raw decision files for a batch import.
type DocumentSource interface {
	// List returns the keys of the .txt documents available, in a stable order.
	List(ctx context.Context) ([]string, error)
	// Fetch returns the raw bytes of the document stored under key.
	Fetch(ctx context.Context, key string) ([]byte, error)
	// Name identifies the source in logs.
	Name() string
}
