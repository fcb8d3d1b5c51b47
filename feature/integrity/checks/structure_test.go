package checks

import (
	"context"
	"testing"

	"card-catalog/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func emptyChan() <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo)
	close(ch)
	return ch
}

func objectChan(keys ...string) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		ch <- minio.ObjectInfo{Key: k}
	}
	close(ch)
	return ch
}

func TestCheckStructure(t *testing.T) {
	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "exports").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "exports", "catalog")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Bucket Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "exports").Return(false, assert.AnError)

		_, err := CheckStructure(context.Background(), mockClient, "exports", "catalog")
		assert.ErrorIs(t, err, assert.AnError)
	})

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "exports").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "exports", mock.Anything).Return(emptyChan())

		missing, err := CheckStructure(context.Background(), mockClient, "exports", "catalog")
		assert.NoError(t, err)
		assert.Equal(t, RequiredFolders, missing)
	})

	t.Run("All Present", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "exports").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "exports", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "catalog/cards/"
		})).Return(objectChan("catalog/cards/emn.json"))

		missing, err := CheckStructure(context.Background(), mockClient, "exports", "/catalog/")
		assert.NoError(t, err)
		assert.Empty(t, missing)
	})
}

func TestFixStructure(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "exports", "catalog/cards/", mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, nil)

	err := FixStructure(context.Background(), mockClient, "exports", "catalog", zap.NewNop(), []string{"cards"})
	assert.NoError(t, err)
	mockClient.AssertNumberOfCalls(t, "PutObject", 1)
}

func TestFixStructureError(t *testing.T) {
	mockClient := new(mocks.Client)
	mockClient.On("PutObject", mock.Anything, "exports", mock.Anything, mock.Anything, int64(0), mock.Anything).Return(minio.UploadInfo{}, assert.AnError)

	err := FixStructure(context.Background(), mockClient, "exports", "catalog", zap.NewNop(), []string{"cards"})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCheckFiles(t *testing.T) {
	files := []string{"sets.json", "card-names.json"}

	t.Run("All Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "exports").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "exports", mock.Anything).Return(emptyChan())

		missing, err := CheckFiles(context.Background(), mockClient, "exports", "catalog", files)
		assert.NoError(t, err)
		assert.Equal(t, files, missing)
	})

	t.Run("Prefix Match Is Not Enough", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "exports").Return(true, nil)
		mockClient.On("ListObjects", mock.Anything, "exports", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "catalog/sets.json"
		})).Return(objectChan("catalog/sets.json.bak"))
		mockClient.On("ListObjects", mock.Anything, "exports", mock.MatchedBy(func(opts minio.ListObjectsOptions) bool {
			return opts.Prefix == "catalog/card-names.json"
		})).Return(objectChan("catalog/card-names.json"))

		missing, err := CheckFiles(context.Background(), mockClient, "exports", "catalog", files)
		assert.NoError(t, err)
		assert.Equal(t, []string{"sets.json"}, missing)
	})
}
