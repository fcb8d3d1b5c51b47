package checks

import (
	"bytes"
	"context"
	"fmt"

	"card-catalog/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// RequiredFolders lists the folders that must exist under the catalog prefix.
var RequiredFolders = []string{"cards"}

func ensureBucket(ctx context.Context, client storage.Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("bucket %s does not exist", bucket)
	}
	return nil
}

// CheckStructure returns the required folders missing under prefix.
func CheckStructure(ctx context.Context, client storage.Client, bucket, prefix string) ([]string, error) {
	if err := ensureBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	var missing []string
	for _, folder := range RequiredFolders {
		opts := minio.ListObjectsOptions{
			Prefix:    storage.FolderKey(prefix, folder),
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for range client.ListObjects(ctx, bucket, opts) {
			found = true
			break
		}

		if !found {
			missing = append(missing, folder)
		}
	}

	return missing, nil
}

// FixStructure creates placeholder objects for the missing folders.
func FixStructure(ctx context.Context, client storage.Client, bucket, prefix string, logger *zap.Logger, missing []string) error {
	for _, folder := range missing {
		key := storage.FolderKey(prefix, folder)
		_, err := client.PutObject(ctx, bucket, key, bytes.NewReader([]byte{}), 0, minio.PutObjectOptions{})
		if err != nil {
			logger.Error("Failed to create folder", zap.String("folder", key), zap.Error(err))
			return err
		}
		logger.Info("Created missing folder", zap.String("folder", key))
	}
	return nil
}
