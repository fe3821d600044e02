package s3

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"expertap/internal/port"
)

// Source is a DocumentSource backed by a bucket prefix in object storage.
type Source struct {
	storage port.ObjectStorage
	bucket  string
	prefix  string
}

// NewSource lists and fetches decision files under bucket/prefix through storage.
func NewSource(storage port.ObjectStorage, bucket, prefix string) *Source {
	return &Source{storage: storage, bucket: bucket, prefix: prefix}
}

// List returns the .txt keys under the prefix, sorted.
func (s *Source) List(ctx context.Context) ([]string, error) {
	objects, err := s.storage.List(ctx, s.bucket, s.prefix)
	if err != nil {
		return nil, fmt.Errorf("s3Source.List: %w", err)
	}

	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		if strings.HasSuffix(obj.Key, "/") || !strings.EqualFold(path.Ext(obj.Key), ".txt") {
			continue
		}
		keys = append(keys, obj.Key)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Source) Fetch(ctx context.Context, key string) ([]byte, error) {
	data, err := s.storage.Download(ctx, s.bucket, key)
	if err != nil {
		return nil, fmt.Errorf("s3Source.Fetch: %w", err)
	}
	return data, nil
}

func (s *Source) Name() string {
	return "s3://" + s.bucket + "/" + s.prefix
}
