package checks

import (
	"context"

	"card-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// CheckFiles returns the files missing under prefix.
func CheckFiles(ctx context.Context, client storage.Client, bucket, prefix string, files []string) ([]string, error) {
	if err := ensureBucket(ctx, client, bucket); err != nil {
		return nil, err
	}

	var missing []string
	for _, filename := range files {
		key := storage.Key(prefix, filename)
		opts := minio.ListObjectsOptions{
			Prefix:    key,
			Recursive: false,
			MaxKeys:   1,
		}

		found := false
		for obj := range client.ListObjects(ctx, bucket, opts) {
			if obj.Err == nil && obj.Key == key {
				found = true
			}
			break
		}

		if !found {
			missing = append(missing, filename)
		}
	}

	return missing, nil
}
