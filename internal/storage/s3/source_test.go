package s3_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"expertap/internal/port"
	s3store "expertap/internal/storage/s3"
	"expertap/mocks"
)

func TestSource_ListFiltersAndSorts(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("List", context.Background(), "bucket", "cnsc/").Return([]port.ObjectInfo{
		{Key: "cnsc/BO2023_200_R2_CPV_55520000-1_R.txt"},
		{Key: "cnsc/"},
		{Key: "cnsc/readme.md"},
		{Key: "cnsc/BO2023_100_D1_A.TXT"},
	}, nil)

	src := s3store.NewSource(storage, "bucket", "cnsc/")
	keys, err := src.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"cnsc/BO2023_100_D1_A.TXT",
		"cnsc/BO2023_200_R2_CPV_55520000-1_R.txt",
	}, keys)
	assert.Equal(t, "s3://bucket/cnsc/", src.Name())
	storage.AssertExpectations(t)
}

func TestSource_ListError(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("List", context.Background(), "bucket", "").Return(nil, errors.New("denied"))

	_, err := s3store.NewSource(storage, "bucket", "").List(context.Background())
	assert.ErrorContains(t, err, "denied")
}

func TestSource_Fetch(t *testing.T) {
	storage := new(mocks.MockObjectStorage)
	storage.On("Download", context.Background(), "bucket", "k.txt").Return([]byte("text"), nil)

	data, err := s3store.NewSource(storage, "bucket", "").Fetch(context.Background(), "k.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("text"), data)
}
