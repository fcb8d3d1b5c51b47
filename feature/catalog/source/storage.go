package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"card-catalog/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const (
	// SetsObject is the object holding the set list, relative to the prefix.
	SetsObject = "sets.json"
	// CardsFolder is the folder holding record arrays, relative to the prefix.
	CardsFolder = "cards"
)

// StorageSource reads the dataset from an object storage bucket laid out as
//
//	<prefix>/sets.json     JSON array of sets
//	<prefix>/cards/*.json  JSON arrays of records
type StorageSource struct {
	client storage.Client
	bucket string
	prefix string
	logger *zap.Logger
}

// NewStorageSource creates a source reading below prefix in bucket.
func NewStorageSource(client storage.Client, bucket, prefix string, logger *zap.Logger) *StorageSource {
	return &StorageSource{
		client: client,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (s *StorageSource) key(parts ...string) string {
	return storage.Key(s.prefix, parts...)
}

// Sets reads the set list.
func (s *StorageSource) Sets(ctx context.Context) ([]SetRecord, error) {
	key := s.key(SetsObject)
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	var sets []SetRecord
	if err := json.NewDecoder(obj).Decode(&sets); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return sets, nil
}

// Records streams every record of every card object in key order.
func (s *StorageSource) Records(ctx context.Context, emit func(*Record) error) error {
	keys, err := s.cardObjects(ctx)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.streamObject(ctx, key, emit); err != nil {
			return err
		}
	}
	return nil
}

func (s *StorageSource) cardObjects(ctx context.Context) ([]string, error) {
	opts := minio.ListObjectsOptions{
		Prefix:    s.key(CardsFolder) + "/",
		Recursive: true,
	}

	var keys []string
	for obj := range s.client.ListObjects(ctx, s.bucket, opts) {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list card objects: %w", obj.Err)
		}
		if strings.HasSuffix(obj.Key, ".json") {
			keys = append(keys, obj.Key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *StorageSource) streamObject(ctx context.Context, key string, emit func(*Record) error) error {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	s.logger.Debug("Streaming card object", zap.String("key", key))
	return DecodeRecords(ctx, obj, emit)
}

// DecodeRecords streams a JSON array of records from r without buffering the
// whole array.
func DecodeRecords(ctx context.Context, r io.Reader, emit func(*Record) error) error {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read record array: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '[' {
		return fmt.Errorf("expected record array, got %v", tok)
	}

	for dec.More() {
		if err := ctx.Err(); err != nil {
			return err
		}
		rec := new(Record)
		if err := dec.Decode(rec); err != nil {
			return fmt.Errorf("failed to decode record: %w", err)
		}
		if err := emit(rec); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close record array: %w", err)
	}
	return nil
}
