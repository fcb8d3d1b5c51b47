package storage_test

import (
	"testing"

	"card-catalog/core/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name string
		cfg  storage.Config
	}{
		{"Plain Endpoint", storage.Config{Endpoint: "localhost:9000", AccessKey: "key", SecretKey: "secret", Bucket: "catalog", Region: "us-east-1"}},
		{"HTTP Scheme", storage.Config{Endpoint: "http://localhost:9000", AccessKey: "key", SecretKey: "secret"}},
		{"HTTPS Scheme", storage.Config{Endpoint: "https://s3.amazonaws.com", AccessKey: "key", SecretKey: "secret", UseSSL: true, Region: "us-east-1"}},
		{"Custom Timeout", storage.Config{Endpoint: "localhost:9000", TimeoutSeconds: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := storage.NewClient(tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestKey(t *testing.T) {
	assert.Equal(t, "catalog/sets.json", storage.Key("catalog", "sets.json"))
	assert.Equal(t, "catalog/sets.json", storage.Key("/catalog/", "sets.json"))
	assert.Equal(t, "catalog/cards/a.json", storage.Key("catalog", "cards", "a.json"))
	assert.Equal(t, "sets.json", storage.Key("", "sets.json"))
	assert.Equal(t, "catalog/cards/", storage.FolderKey("catalog/", "cards"))
}
