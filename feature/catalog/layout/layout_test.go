package layout

import (
	"context"
	"testing"

	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/identity"
	"card-catalog/feature/catalog/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockMeld struct {
	mock.Mock
}

func (m *mockMeld) Submit(ctx context.Context, rec *source.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func setupBuilder(t *testing.T) (*Builder, *graph.Graph, *mockMeld) {
	g := graph.New()
	g.RegisterSet(source.SetRecord{Code: "tst", Name: "Test Set", SetType: source.SetTypeExpansion})
	meld := new(mockMeld)
	return NewBuilder(g, meld, zap.NewNop()), g, meld
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		rec   source.Record
		want  Strategy
		errIs error
	}{
		{"Normal", source.Record{Name: "Grizzly Bears", Layout: source.LayoutNormal, TypeLine: "Creature — Bear"}, Simple, nil},
		{"Saga", source.Record{Name: "The Eldest Reborn", Layout: source.LayoutSaga}, Simple, nil},
		{"Split", source.Record{Name: "Fire // Ice", Layout: source.LayoutSplit}, Split, nil},
		{"Flip", source.Record{Name: "Bushi Tenderfoot", Layout: source.LayoutFlip}, Flip, nil},
		{"Modal", source.Record{Name: "Valki", Layout: source.LayoutModalDFC}, Transform, nil},
		{"Adventure", source.Record{Name: "Bonecrusher Giant", Layout: source.LayoutAdventure}, Adventure, nil},
		{"Reversible", source.Record{Name: "Zndrsplt", Layout: source.LayoutReversible}, Reversible, nil},
		{"Meld", source.Record{Name: "Bruna", Layout: source.LayoutMeld}, Meld, nil},
		{"Token", source.Record{Name: "Soldier", Layout: source.LayoutToken}, Excluded, nil},
		{"Art Series", source.Record{Name: "Art", Layout: source.LayoutArtSeries}, Excluded, nil},
		{"Token Type Line", source.Record{Name: "Goblin", Layout: source.LayoutNormal, TypeLine: "Token Creature — Goblin"}, Excluded, nil},
		{"Card Placeholder", source.Record{Name: "Checklist", Layout: source.LayoutNormal, TypeLine: "Card"}, Excluded, nil},
		{"Unrecognized", source.Record{Name: "Mystery", Layout: source.LayoutUnrecognized}, Excluded, ErrUnrecognizedLayout},
		{"Override Split", source.Record{Name: "Who // What // When // Where // Why", Layout: source.LayoutUnrecognized}, Split, nil},
		{"Override Simple", source.Record{Name: "Who", Layout: source.LayoutUnrecognized}, Simple, nil},
		{"Override Flip", source.Record{Name: "Curse of the Fire Penguin // ???", Layout: source.LayoutNormal}, Flip, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, _, err := Classify(&tt.rec)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyTypeFix(t *testing.T) {
	rec := &source.Record{Name: "B.F.M. (Big Furry Monster)", Layout: source.LayoutNormal, TypeLine: "The-Biggest-Baddest-Nastiest-Scariest-Creature-You'll-Ever-See"}

	s, fixed, err := Classify(rec)
	require.NoError(t, err)
	assert.Equal(t, Simple, s)
	assert.Equal(t, "Creature — The-Biggest-Baddest-Nastiest-Scariest-Creature-You'll-Ever-See", fixed.TypeLine)
	assert.NotSame(t, rec, fixed)
	assert.Equal(t, "The-Biggest-Baddest-Nastiest-Scariest-Creature-You'll-Ever-See", rec.TypeLine)

	already := &source.Record{Name: "B.F.M. (Big Furry Monster)", TypeLine: "Creature — Thing"}
	_, fixed, _ = Classify(already)
	assert.Equal(t, "Creature — Thing", fixed.TypeLine)
}

func TestBuildSimple(t *testing.T) {
	b, g, _ := setupBuilder(t)
	ctx := context.Background()

	first := &source.Record{ID: "p1", OracleID: "1b9fb3f5-5c0d-4a41-8f5d-1c53a0f3c7a1", Name: "Grizzly Bears", Layout: source.LayoutNormal, Set: "tst", CollectorNumber: "1", FlavorText: "a"}
	reprint := &source.Record{ID: "p2", OracleID: first.OracleID, Name: "Grizzly Bears", Layout: source.LayoutNormal, Set: "tst", CollectorNumber: "2", FlavorText: "b"}

	s, err := b.Build(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, Simple, s)
	_, err = b.Build(ctx, reprint)
	require.NoError(t, err)

	p1, ok := g.Printing("p1")
	require.True(t, ok)
	p2, ok := g.Printing("p2")
	require.True(t, ok)
	assert.Same(t, p1.Card, p2.Card)

	card := p1.Card
	require.Len(t, card.Faces(), 1)
	assert.Equal(t, first.OracleID, card.Faces()[0].ID.String())
	assert.Len(t, card.Printings(), 2)
	assert.Equal(t, "a", p1.Faces()[0].FlavorText)
	assert.Equal(t, "b", p2.Faces()[0].FlavorText)
}

func TestBuildSplit(t *testing.T) {
	b, g, _ := setupBuilder(t)
	rec := &source.Record{
		ID: "who", Name: "Who // What // When // Where // Why", Layout: source.LayoutSplit, Set: "tst", CollectorNumber: "75",
		CardFaces: []source.RecordFace{{Name: "Who"}, {Name: "What"}, {Name: "When"}, {Name: "Where"}, {Name: "Why"}},
	}

	_, err := b.Build(context.Background(), rec)
	require.NoError(t, err)

	p, _ := g.Printing("who")
	faces := p.Card.Faces()
	require.Len(t, faces, 5)
	names := make([]string, len(faces))
	for i, f := range faces {
		names[i] = f.Name
		assert.True(t, f.Main)
	}
	assert.Equal(t, []string{"Who", "What", "When", "Where", "Why"}, names)
	assert.Equal(t, graph.KindLeft, faces[0].Kind)
	assert.Equal(t, graph.KindMiddle, faces[1].Kind)
	assert.Equal(t, graph.KindRight, faces[4].Kind)

	printed := p.Faces()
	require.Len(t, printed, 5)
	assert.Equal(t, graph.FrameSplitLeft, printed[0].Frame)
	assert.Equal(t, graph.FrameSplitMiddle, printed[1].Frame)
	assert.Equal(t, graph.FrameSplitRight, printed[4].Frame)
}

func TestBuildFlip(t *testing.T) {
	b, g, _ := setupBuilder(t)
	rec := &source.Record{
		ID: "flip", Name: "Bushi Tenderfoot // Kenzo the Hardhearted", Layout: source.LayoutFlip, Set: "tst", CollectorNumber: "2",
		Colors: []source.Color{source.White},
		CardFaces: []source.RecordFace{
			{Name: "Bushi Tenderfoot", ManaCost: "{W}", CMC: 1},
			{Name: "Kenzo the Hardhearted"},
		},
	}

	_, err := b.Build(context.Background(), rec)
	require.NoError(t, err)

	p, _ := g.Printing("flip")
	front, ok := p.Card.Face(graph.FaceKey{Kind: graph.KindFront})
	require.True(t, ok)
	flipped, ok := p.Card.Face(graph.FaceKey{Kind: graph.KindFlipped})
	require.True(t, ok)

	assert.Same(t, front, flipped.Upright)
	assert.Equal(t, "{W}", flipped.ManaCost)
	assert.Equal(t, []source.Color{source.White}, flipped.Colors)
	assert.False(t, flipped.Main)
	assert.Equal(t, []*graph.Face{front}, p.Card.MainFaces())
}

func TestBuildTransform(t *testing.T) {
	b, g, _ := setupBuilder(t)
	rec := &source.Record{
		ID: "dfc", Name: "Delver of Secrets // Insectile Aberration", Layout: source.LayoutTransform, Set: "tst", CollectorNumber: "51",
		CardFaces: []source.RecordFace{
			{Name: "Delver of Secrets", FlavorText: "front flavor"},
			{Name: "Insectile Aberration", FlavorText: "back flavor"},
		},
	}

	_, err := b.Build(context.Background(), rec)
	require.NoError(t, err)

	p, _ := g.Printing("dfc")
	front, _ := p.Card.Face(graph.FaceKey{Kind: graph.KindFront})
	back, _ := p.Card.Face(graph.FaceKey{Kind: graph.KindTransformed})
	require.NotNil(t, front)
	require.NotNil(t, back)
	assert.Equal(t, []*graph.Face{back}, front.Into)

	printed := p.Faces()
	require.Len(t, printed, 2)
	assert.False(t, printed[0].OnBack)
	assert.Equal(t, "front flavor", printed[0].FlavorText)
	assert.True(t, printed[1].OnBack)
	assert.Equal(t, "back flavor", printed[1].FlavorText)

	expected, _ := identity.CardID(rec.Faces()...)
	assert.Equal(t, expected, p.Card.ID)
}

func TestBuildAdventure(t *testing.T) {
	b, g, _ := setupBuilder(t)
	rec := &source.Record{
		ID: "adv", Name: "Bonecrusher Giant // Stomp", Layout: source.LayoutAdventure, Set: "tst", CollectorNumber: "115",
		CardFaces: []source.RecordFace{
			{Name: "Bonecrusher Giant", TypeLine: "Creature — Giant"},
			{Name: "Stomp", TypeLine: "Instant — Adventure"},
		},
	}

	_, err := b.Build(context.Background(), rec)
	require.NoError(t, err)

	p, _ := g.Printing("adv")
	main, _ := p.Card.Face(graph.FaceKey{Kind: graph.KindFront})
	spell, _ := p.Card.Face(graph.FaceKey{Kind: graph.KindAdventure})
	assert.Equal(t, "Bonecrusher Giant", main.Name)
	assert.Equal(t, "Stomp", spell.Name)
	assert.False(t, spell.Main)

	t.Run("Missing Marker", func(t *testing.T) {
		bad := *rec
		bad.ID = "adv2"
		bad.CardFaces = []source.RecordFace{{Name: "A", TypeLine: "Creature"}, {Name: "B", TypeLine: "Instant"}}
		_, err := b.Build(context.Background(), &bad)
		assert.ErrorIs(t, err, ErrMalformedFaces)
	})

	t.Run("Marker Inside Type Line", func(t *testing.T) {
		odd := *rec
		odd.ID = "adv3"
		odd.CollectorNumber = "116"
		odd.CardFaces = []source.RecordFace{
			{Name: "Adventure Seeker", TypeLine: "Creature — Adventurer"},
			{Name: "Quest", TypeLine: "Sorcery — Adventure"},
		}
		_, err := b.Build(context.Background(), &odd)
		require.NoError(t, err)

		p, _ := g.Printing("adv3")
		main, _ := p.Card.Face(graph.FaceKey{Kind: graph.KindFront})
		spell, _ := p.Card.Face(graph.FaceKey{Kind: graph.KindAdventure})
		assert.Equal(t, "Adventure Seeker", main.Name)
		assert.Equal(t, "Quest", spell.Name)
	})
}

func TestBuildReversible(t *testing.T) {
	b, g, _ := setupBuilder(t)
	rec := &source.Record{
		ID: "rev", Name: "Zndrsplt, Eye of Wisdom // Zndrsplt, Eye of Wisdom", Layout: source.LayoutReversible, Set: "tst", CollectorNumber: "1",
		CardFaces: []source.RecordFace{
			{OracleID: "o-a", Name: "Zndrsplt, Eye of Wisdom"},
			{OracleID: "o-b", Name: "Zndrsplt, Eye of Wisdom (Reversed)"},
		},
	}

	_, err := b.Build(context.Background(), rec)
	require.NoError(t, err)

	p, _ := g.Printing("rev")
	assert.Len(t, p.Card.MainFaces(), 2)
	printed := p.Faces()
	require.Len(t, printed, 2)
	assert.False(t, printed[0].OnBack)
	assert.True(t, printed[1].OnBack)
}

func TestBuildFailures(t *testing.T) {
	b, g, _ := setupBuilder(t)
	ctx := context.Background()

	t.Run("Unknown Set", func(t *testing.T) {
		_, err := b.Build(ctx, &source.Record{ID: "x", Name: "Lost", Layout: source.LayoutNormal, Set: "zzz"})
		assert.ErrorIs(t, err, graph.ErrUnknownSet)
		_, ok := g.CardByName("Lost")
		assert.False(t, ok)
	})

	t.Run("Missing Name", func(t *testing.T) {
		_, err := b.Build(ctx, &source.Record{ID: "y", Layout: source.LayoutNormal, Set: "tst"})
		assert.ErrorIs(t, err, identity.ErrMissingIdentity)
	})

	t.Run("Missing Sub Faces", func(t *testing.T) {
		_, err := b.Build(ctx, &source.Record{ID: "z", Name: "Half", Layout: source.LayoutSplit, Set: "tst"})
		assert.ErrorIs(t, err, identity.ErrMissingIdentity)
	})

	t.Run("Unrecognized Layout", func(t *testing.T) {
		_, err := b.Build(ctx, &source.Record{ID: "w", Name: "Odd", Layout: source.LayoutUnrecognized, Set: "tst"})
		assert.ErrorIs(t, err, ErrUnrecognizedLayout)
	})

	t.Run("Excluded Is Not An Error", func(t *testing.T) {
		s, err := b.Build(ctx, &source.Record{ID: "t", Name: "Soldier", Layout: source.LayoutToken, Set: "tst"})
		assert.NoError(t, err)
		assert.Equal(t, Excluded, s)
		_, ok := g.Printing("t")
		assert.False(t, ok)
	})
}

func TestBuildMeldHandoff(t *testing.T) {
	b, _, meld := setupBuilder(t)
	rec := &source.Record{ID: "m", Name: "Bruna, the Fading Light", Layout: source.LayoutMeld, Set: "tst"}
	meld.On("Submit", mock.Anything, rec).Return(nil).Once()

	s, err := b.Build(context.Background(), rec)
	require.NoError(t, err)
	assert.Equal(t, Meld, s)
	meld.AssertExpectations(t)
}

func TestStrategyString(t *testing.T) {
	assert.Equal(t, "adventure", Adventure.String())
	assert.Equal(t, "strategy(42)", Strategy(42).String())
}
