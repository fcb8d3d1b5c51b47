package checks

import (
	"context"
	"encoding/json"
	"fmt"

	"card-catalog/core/storage"

	"github.com/minio/minio-go/v7"
)

// CoverageReport compares a list of card names against the loaded catalog.
type CoverageReport struct {
	Expected int      `json:"expected"`
	Found    int      `json:"found"`
	Missing  []string `json:"missing"`
}

// nameList accepts either a bare JSON array or a catalog object with the
// names under "data".
type nameList []string

func (n *nameList) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err == nil {
		*n = names
		return nil
	}

	var wrapped struct {
		Data []string `json:"data"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	*n = wrapped.Data
	return nil
}

// LoadNames reads a card name list from storage.
func LoadNames(ctx context.Context, client storage.Client, bucket, key string) ([]string, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	defer obj.Close()

	var names nameList
	if err := json.NewDecoder(obj).Decode(&names); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return names, nil
}

// CheckCoverage reports which names has does not know.
func CheckCoverage(names []string, has func(name string) bool) *CoverageReport {
	report := &CoverageReport{Expected: len(names), Missing: []string{}}
	for _, name := range names {
		if has(name) {
			report.Found++
			continue
		}
		report.Missing = append(report.Missing, name)
	}
	return report
}
