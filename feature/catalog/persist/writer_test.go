package persist

import (
	"context"
	"testing"

	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/source"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

type fixedRanker int

func (r fixedRanker) Variation(*graph.Printing) int { return int(r) }

func sampleGraph(t *testing.T) *graph.Graph {
	g := graph.New()
	set := g.RegisterSet(source.SetRecord{Code: "lea", Name: "Limited Edition Alpha", SetType: source.SetTypeCore, ReleasedAt: "1993-08-05"})
	card := g.GetOrCreateCard(uuid.New(), func(c *graph.Card) {
		c.Name = "Lightning Bolt"
		c.Layout = source.LayoutNormal
		c.ColorIdentity = []source.Color{source.Red}
	})
	face, err := g.GetOrCreateFace(card, graph.FaceKey{Kind: graph.KindFront}, uuid.New(), true, func(f *graph.Face) {
		f.Name = "Lightning Bolt"
		f.ManaCost = "{R}"
		f.Text = "Lightning Bolt deals 3 damage to any target."
	})
	require.NoError(t, err)
	p, err := g.GetOrCreatePrinting(card, set, "bolt-lea", func(p *graph.Printing) {
		p.CollectorNumber = "161"
		p.Rarity = source.RarityCommon
	})
	require.NoError(t, err)
	_, err = g.AddPrintedFace(p, face, false, graph.FrameFull, graph.Flavor{})
	require.NoError(t, err)
	return g
}

func TestWrite(t *testing.T) {
	db, mock := setupMockDB(t)
	g := sampleGraph(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `catalog_sets`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `catalog_cards`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `catalog_card_faces`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `catalog_printings` .* ON DUPLICATE KEY UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `catalog_printed_faces`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	counts, err := NewWriter(db, zap.NewNop()).Write(context.Background(), g, fixedRanker(1))
	require.NoError(t, err)
	assert.Equal(t, Counts{Sets: 1, Cards: 1, CardFaces: 1, Printings: 1, PrintedFaces: 1}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteRollsBack(t *testing.T) {
	db, mock := setupMockDB(t)
	g := sampleGraph(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `catalog_sets`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `catalog_cards`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `catalog_card_faces`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `catalog_printings`").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	counts, err := NewWriter(db, zap.NewNop()).Write(context.Background(), g, fixedRanker(1))
	assert.ErrorIs(t, err, assert.AnError)
	assert.Contains(t, err.Error(), "printings")
	assert.Equal(t, Counts{}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteEmptyGraph(t *testing.T) {
	db, mock := setupMockDB(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	counts, err := NewWriter(db, nil).Write(context.Background(), graph.New(), fixedRanker(1))
	require.NoError(t, err)
	assert.Equal(t, Counts{}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRows(t *testing.T) {
	g := sampleGraph(t)
	s := collect(g, fixedRanker(2))

	require.Len(t, s.sets, 1)
	require.NotNil(t, s.sets[0].ReleasedAt)
	assert.Equal(t, "1993-08-05", s.sets[0].ReleasedAt.Format("2006-01-02"))

	require.Len(t, s.cards, 1)
	assert.Equal(t, `["R"]`, s.cards[0].ColorIdentity)

	require.Len(t, s.cardFaces, 1)
	assert.Equal(t, "front/0", s.cardFaces[0].Slot)
	assert.Equal(t, "{R}", s.cardFaces[0].ManaCost)

	require.Len(t, s.printings, 1)
	assert.Equal(t, 2, s.printings[0].Variation)
	assert.Nil(t, s.printings[0].ReleasedAt)
	assert.Equal(t, "lea", s.printings[0].SetCode)

	require.Len(t, s.printedFaces, 1)
	assert.False(t, s.printedFaces[0].OnBack)
	assert.Equal(t, "full", s.printedFaces[0].Frame)
}
