// Package storage provides the object storage client the catalog reads its
// dataset from.
//
// It wraps the MinIO Go client behind a small interface covering exactly the
// operations the catalog needs, which works against AWS S3 and self-hosted
// MinIO and lets tests substitute core/storage/mocks.
//
//   - BucketExists: Verifies access to the target bucket.
//   - PutObject: Uploads content (used to create folder placeholders).
//   - GetObject: Streams sets.json, card dumps and the card name list.
//   - ListObjects: Enumerates card dump files under a prefix.
//
// Key and FolderKey build object keys below a configurable prefix.
//
//	client, err := storage.NewClient(cfg.Storage)
//	rc, err := client.GetObject(ctx, cfg.Storage.Bucket, storage.Key("catalog", "sets.json"), minio.GetObjectOptions{})
package storage
