package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"card-catalog/core/storage"
	"card-catalog/feature/catalog/collector"
	"card-catalog/feature/catalog/dispatch"
	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/persist"
	"card-catalog/feature/catalog/source"
	"card-catalog/feature/catalog/variation"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNotLoaded is returned by queries before the first successful load.
	ErrNotLoaded = errors.New("catalog not loaded")
	// ErrNotFound is returned when a queried entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrLoadInProgress is returned when a load is requested while one is running.
	ErrLoadInProgress = errors.New("catalog load already in progress")
)

// Catalog is one immutable, fully loaded snapshot.
type Catalog struct {
	Graph      *graph.Graph
	Ranker     *variation.Ranker
	Comparator *collector.Comparator
	Report     *dispatch.Report
	LoadedAt   time.Time
}

// Service loads catalogs from storage and answers queries on the current one.
type Service struct {
	client storage.Client
	bucket string
	cfg    Config
	logger *zap.Logger
	writer *persist.Writer

	loading sync.Mutex
	current atomic.Pointer[Catalog]
}

// NewService creates a new catalog service. db may be nil, which disables
// persistence regardless of configuration.
func NewService(client storage.Client, bucket string, cfg Config, logger *zap.Logger, db *gorm.DB) *Service {
	s := &Service{
		client: client,
		bucket: bucket,
		cfg:    cfg,
		logger: logger,
	}
	if db != nil {
		s.writer = persist.NewWriter(db, logger)
	}
	return s
}

// Config returns the service configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Source returns the storage-backed record source for the configured prefix.
func (s *Service) Source() source.RecordSource {
	return source.NewStorageSource(s.client, s.bucket, s.cfg.Prefix, s.logger)
}

// Load loads the catalog from storage.
func (s *Service) Load(ctx context.Context) (*dispatch.Report, error) {
	return s.LoadFrom(ctx, s.Source())
}

// LoadFrom loads a catalog from src and makes it current once it fully
// succeeds. The previous catalog keeps serving queries until then.
func (s *Service) LoadFrom(ctx context.Context, src source.RecordSource) (*dispatch.Report, error) {
	if !s.loading.TryLock() {
		return nil, ErrLoadInProgress
	}
	defer s.loading.Unlock()

	opts := dispatch.Options{Workers: s.cfg.Workers, MeldTimeout: s.cfg.MeldTimeout()}
	g, report, err := dispatch.New(src, opts, s.logger).Run(ctx)
	if err != nil {
		s.logger.Error("Catalog load failed", zap.Error(err))
		return report, err
	}

	comparator := collector.Default(s.logger)
	c := &Catalog{
		Graph:      g,
		Ranker:     variation.New(comparator),
		Comparator: comparator,
		Report:     report,
		LoadedAt:   time.Now(),
	}

	if s.cfg.Persist && s.writer != nil {
		if err := s.writer.Migrate(ctx); err != nil {
			return report, err
		}
		if _, err := s.writer.Write(ctx, g, c.Ranker); err != nil {
			return report, err
		}
	}

	s.current.Store(c)
	return report, nil
}

// Current returns the current catalog.
func (s *Service) Current() (*Catalog, error) {
	c := s.current.Load()
	if c == nil {
		return nil, ErrNotLoaded
	}
	return c, nil
}

func (c *Catalog) card(id string) (*graph.Card, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("card %q: %w", id, ErrNotFound)
	}
	card, ok := c.Graph.Card(parsed)
	if !ok {
		return nil, fmt.Errorf("card %q: %w", id, ErrNotFound)
	}
	return card, nil
}

func (c *Catalog) printings(ps []*graph.Printing) []PrintingView {
	views := make([]PrintingView, 0, len(ps))
	for _, p := range ps {
		views = append(views, printingView(p, c.Ranker.Variation(p)))
	}
	return views
}

// Card returns the card with the given id.
func (s *Service) Card(id string) (*CardView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	card, err := c.card(id)
	if err != nil {
		return nil, err
	}
	v := cardView(card)
	return &v, nil
}

// CardByName returns the card with the given full or face name.
func (s *Service) CardByName(name string) (*CardView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	card, ok := c.Graph.CardByName(name)
	if !ok {
		return nil, fmt.Errorf("card named %q: %w", name, ErrNotFound)
	}
	v := cardView(card)
	return &v, nil
}

// CardPrintings returns the printings of a card by release date.
func (s *Service) CardPrintings(id string) ([]PrintingView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	card, err := c.card(id)
	if err != nil {
		return nil, err
	}
	return c.printings(card.Printings()), nil
}

// Sets returns every set of the catalog.
func (s *Service) Sets() ([]SetView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	sets := c.Graph.Sets()
	views := make([]SetView, 0, len(sets))
	for _, set := range sets {
		views = append(views, setView(set))
	}
	return views, nil
}

// SetPrintings returns the printings of a set in collector number order.
func (s *Service) SetPrintings(code string) ([]PrintingView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	set, err := c.Graph.Set(code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	ps := set.Printings()
	slices.SortStableFunc(ps, func(a, b *graph.Printing) int {
		return c.Comparator.Compare(a.CollectorNumber, b.CollectorNumber)
	})
	return c.printings(ps), nil
}

// Printing returns the printing with the given external id.
func (s *Service) Printing(id string) (*PrintingView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	p, ok := c.Graph.Printing(id)
	if !ok {
		return nil, fmt.Errorf("printing %q: %w", id, ErrNotFound)
	}
	v := printingView(p, c.Ranker.Variation(p))
	return &v, nil
}

// PrintingByNumber returns the printing with a collector number in a set.
func (s *Service) PrintingByNumber(code, number string) (*PrintingView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	p, ok := c.Graph.PrintingByNumber(code, number)
	if !ok {
		return nil, fmt.Errorf("printing %s #%s: %w", code, number, ErrNotFound)
	}
	v := printingView(p, c.Ranker.Variation(p))
	return &v, nil
}

// Stats summarizes the current catalog.
func (s *Service) Stats() (*StatsView, error) {
	c, err := s.Current()
	if err != nil {
		return nil, err
	}
	return &StatsView{
		Stats:    c.Graph.Stats(),
		LoadedAt: c.LoadedAt.UTC().Format(time.RFC3339),
		Report:   c.Report,
	}, nil
}
