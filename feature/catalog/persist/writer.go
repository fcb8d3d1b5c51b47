package persist

import (
	"context"
	"fmt"

	"card-catalog/feature/catalog/graph"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultBatchSize is the number of rows per INSERT statement.
const DefaultBatchSize = 500

// Ranker supplies the variation ordinal stored with each printing.
type Ranker interface {
	Variation(p *graph.Printing) int
}

// Counts reports how many rows of each table a write produced.
type Counts struct {
	Sets         int `json:"sets"`
	Cards        int `json:"cards"`
	CardFaces    int `json:"card_faces"`
	Printings    int `json:"printings"`
	PrintedFaces int `json:"printed_faces"`
}

// Writer upserts catalog snapshots.
type Writer struct {
	db        *gorm.DB
	batchSize int
	logger    *zap.Logger
}

// NewWriter creates a writer on db.
func NewWriter(db *gorm.DB, logger *zap.Logger) *Writer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{db: db, batchSize: DefaultBatchSize, logger: logger}
}

// Migrate creates or updates the catalog tables.
func (w *Writer) Migrate(ctx context.Context) error {
	if err := w.db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return nil
}

type snapshot struct {
	sets         []SetRow
	cards        []CardRow
	cardFaces    []CardFaceRow
	printings    []PrintingRow
	printedFaces []PrintedFaceRow
}

func collect(g *graph.Graph, ranker Ranker) snapshot {
	var s snapshot
	for _, set := range g.Sets() {
		s.sets = append(s.sets, setRow(set))
	}
	for _, card := range g.Cards() {
		s.cards = append(s.cards, cardRow(card))
		for _, slot := range card.Slots() {
			s.cardFaces = append(s.cardFaces, cardFaceRow(card, slot))
		}
		for _, p := range card.Printings() {
			s.printings = append(s.printings, printingRow(p, ranker.Variation(p)))
			for _, pf := range p.Faces() {
				s.printedFaces = append(s.printedFaces, printedFaceRow(pf))
			}
		}
	}
	return s
}

// upsert inserts rows, overwriting existing rows with the same primary key.
// Empty slices are skipped since gorm rejects them.
func upsert[T any](tx *gorm.DB, rows []T, batchSize int) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).CreateInBatches(rows, batchSize).Error
}

// Write stores g in one transaction.
func (w *Writer) Write(ctx context.Context, g *graph.Graph, ranker Ranker) (Counts, error) {
	s := collect(g, ranker)
	counts := Counts{
		Sets:         len(s.sets),
		Cards:        len(s.cards),
		CardFaces:    len(s.cardFaces),
		Printings:    len(s.printings),
		PrintedFaces: len(s.printedFaces),
	}

	err := w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsert(tx, s.sets, w.batchSize); err != nil {
			return fmt.Errorf("sets: %w", err)
		}
		if err := upsert(tx, s.cards, w.batchSize); err != nil {
			return fmt.Errorf("cards: %w", err)
		}
		if err := upsert(tx, s.cardFaces, w.batchSize); err != nil {
			return fmt.Errorf("card faces: %w", err)
		}
		if err := upsert(tx, s.printings, w.batchSize); err != nil {
			return fmt.Errorf("printings: %w", err)
		}
		if err := upsert(tx, s.printedFaces, w.batchSize); err != nil {
			return fmt.Errorf("printed faces: %w", err)
		}
		return nil
	})
	if err != nil {
		return Counts{}, fmt.Errorf("failed to persist catalog: %w", err)
	}

	w.logger.Info("Catalog persisted",
		zap.Int("sets", counts.Sets),
		zap.Int("cards", counts.Cards),
		zap.Int("printings", counts.Printings),
	)
	return counts, nil
}
