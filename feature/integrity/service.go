package integrity

import (
	"context"
	"errors"

	"card-catalog/core/storage"
	"card-catalog/feature/catalog"
	"card-catalog/feature/catalog/persist"
	"card-catalog/feature/catalog/source"
	"card-catalog/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNoCatalog is returned by the coverage check when no catalog is wired.
var ErrNoCatalog = errors.New("no catalog configured")

// Catalog provides the loaded catalog for the coverage check.
type Catalog interface {
	Current() (*catalog.Catalog, error)
}

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	cfg     catalog.Config
	logger  *zap.Logger
	db      *gorm.DB
	catalog Catalog
}

// NewService creates a new integrity service. db and cat may be nil, which
// makes the schema and coverage checks fail respectively.
func NewService(client storage.Client, bucket string, cfg catalog.Config, logger *zap.Logger, db *gorm.DB, cat Catalog) *Service {
	return &Service{
		client:  client,
		bucket:  bucket,
		cfg:     cfg,
		logger:  logger,
		db:      db,
		catalog: cat,
	}
}

// RequiredFiles lists the objects that must exist under the catalog prefix.
func (s *Service) RequiredFiles() []string {
	return []string{source.SetsObject, s.cfg.NamesObject}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.cfg.Prefix)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.cfg.Prefix, s.logger, missing)
}

// CheckFiles returns a list of missing catalog files.
func (s *Service) CheckFiles(ctx context.Context) ([]string, error) {
	return checks.CheckFiles(ctx, s.client, s.bucket, s.cfg.Prefix, s.RequiredFiles())
}

// CheckCoverage compares the stored card name list with the loaded catalog.
func (s *Service) CheckCoverage(ctx context.Context) (*checks.CoverageReport, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	c, err := s.catalog.Current()
	if err != nil {
		return nil, err
	}

	key := s.cfg.NamesKey()
	names, err := checks.LoadNames(ctx, s.client, s.bucket, key)
	if err != nil {
		return nil, err
	}

	report := checks.CheckCoverage(names, func(name string) bool {
		_, ok := c.Graph.CardByName(name)
		return ok
	})
	if len(report.Missing) > 0 {
		s.logger.Warn("Catalog is missing card names",
			zap.Int("missing", len(report.Missing)),
			zap.Int("expected", report.Expected))
	}
	return report, nil
}

// CheckSchema verifies the persisted catalog tables.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db, persist.Models()...)
}
