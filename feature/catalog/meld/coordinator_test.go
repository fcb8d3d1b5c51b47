package meld

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"card-catalog/core/promise"
	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/source"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func meldParts() []source.Part {
	return []source.Part{
		{ID: "1", Component: source.ComponentMeldPart, Name: "X"},
		{ID: "2", Component: source.ComponentMeldPart, Name: "Z"},
		{ID: "3", Component: source.ComponentMeldResult, Name: "Y"},
	}
}

func scenario() (a, b, c *source.Record) {
	a = &source.Record{ID: "1", Name: "X", OracleText: "x text", Layout: source.LayoutMeld, Set: "emn", CollectorNumber: "15a", FlavorText: "a flavor", AllParts: meldParts()}
	b = &source.Record{ID: "2", Name: "Z", OracleText: "z text", Layout: source.LayoutMeld, Set: "emn", CollectorNumber: "28a", AllParts: meldParts()}
	c = &source.Record{ID: "3", Name: "Y", OracleText: "y text", Layout: source.LayoutMeld, Set: "emn", CollectorNumber: "15b", FlavorText: "result flavor"}
	return a, b, c
}

type recorder struct {
	mu     sync.Mutex
	built  []string
	failed map[string]error
}

func (r *recorder) Built(rec *source.Record) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.built = append(r.built, rec.ID)
}

func (r *recorder) Failed(rec *source.Record, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failed == nil {
		r.failed = make(map[string]error)
	}
	r.failed[rec.ID] = err
}

func setupCoordinator(t *testing.T, report Reporter) (*Coordinator, *graph.Graph) {
	g := graph.New()
	g.RegisterSet(source.SetRecord{Code: "emn", Name: "Eldritch Moon"})
	g.RegisterSet(source.SetRecord{Code: "plst", Name: "The List"})
	return New(g, report, zap.NewNop()), g
}

// shape summarizes a graph by identities so graphs built in different orders compare equal.
func shape(g *graph.Graph) []string {
	var out []string
	for _, card := range g.Cards() {
		line := card.ID.String() + " " + card.Name
		for _, f := range card.Faces() {
			line += " " + f.Kind.String() + ":" + f.ID.String()
		}
		for _, p := range card.Printings() {
			line += " " + p.ID
			for _, pf := range p.Faces() {
				line += "/" + pf.Face.ID.String()
			}
		}
		out = append(out, line)
	}
	sort.Strings(out)
	return out
}

func TestScenario(t *testing.T) {
	co, g := setupCoordinator(t, nil)
	a, b, c := scenario()
	ctx := context.Background()

	require.NoError(t, co.Submit(ctx, a))
	require.NoError(t, co.Submit(ctx, b))
	require.NoError(t, co.Submit(ctx, c))
	require.NoError(t, co.Wait(time.Second))

	cards := g.Cards()
	require.Len(t, cards, 2)

	pa, ok := g.Printing("1")
	require.True(t, ok)
	pb, ok := g.Printing("2")
	require.True(t, ok)
	_, ok = g.Printing("3")
	assert.False(t, ok, "the result record owns no printing")

	assert.NotSame(t, pa.Card, pb.Card)
	frontA, _ := pa.Card.Face(graph.FaceKey{Kind: graph.KindFront})
	frontB, _ := pb.Card.Face(graph.FaceKey{Kind: graph.KindFront})
	assert.Equal(t, "X", frontA.Name)
	assert.Equal(t, "Z", frontB.Name)

	backA, _ := pa.Card.Face(graph.FaceKey{Kind: graph.KindTransformed})
	backB, _ := pb.Card.Face(graph.FaceKey{Kind: graph.KindTransformed})
	require.NotNil(t, backA)
	assert.Same(t, backA, backB)
	assert.Equal(t, "Y", backA.Name)
	assert.Equal(t, []*graph.Face{backA}, frontA.Into)

	printedA, ok := pa.PrintedFace(backA, true)
	require.True(t, ok)
	printedB, ok := pb.PrintedFace(backB, true)
	require.True(t, ok)
	assert.Same(t, printedA.Face, printedB.Face)
	assert.Equal(t, "result flavor", printedA.FlavorText)

	frontPrinted, _ := pa.PrintedFace(frontA, false)
	assert.Equal(t, "a flavor", frontPrinted.FlavorText)
}

func TestOrderingIndependence(t *testing.T) {
	orders := map[string]func(a, b, c *source.Record) []*source.Record{
		"ABC": func(a, b, c *source.Record) []*source.Record { return []*source.Record{a, b, c} },
		"BAC": func(a, b, c *source.Record) []*source.Record { return []*source.Record{b, a, c} },
		"CAB": func(a, b, c *source.Record) []*source.Record { return []*source.Record{c, a, b} },
	}

	var want []string
	for _, name := range []string{"ABC", "BAC", "CAB"} {
		t.Run(name, func(t *testing.T) {
			co, g := setupCoordinator(t, nil)
			for _, rec := range orders[name](scenario()) {
				require.NoError(t, co.Submit(context.Background(), rec))
			}
			require.NoError(t, co.Wait(time.Second))

			got := shape(g)
			assert.Len(t, got, 2)
			if want == nil {
				want = got
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestConcurrentSubmit(t *testing.T) {
	for i := 0; i < 20; i++ {
		co, g := setupCoordinator(t, nil)
		a, b, c := scenario()

		var wg sync.WaitGroup
		for _, rec := range []*source.Record{a, b, c} {
			wg.Add(1)
			go func(rec *source.Record) {
				defer wg.Done()
				assert.NoError(t, co.Submit(context.Background(), rec))
			}(rec)
		}
		wg.Wait()
		require.NoError(t, co.Wait(time.Second))

		pa, _ := g.Printing("1")
		pb, _ := g.Printing("2")
		backA, _ := pa.Card.Face(graph.FaceKey{Kind: graph.KindTransformed})
		backB, _ := pb.Card.Face(graph.FaceKey{Kind: graph.KindTransformed})
		assert.Same(t, backA, backB)
	}
}

func TestMissingResultTimesOut(t *testing.T) {
	co, g := setupCoordinator(t, nil)
	a, b, _ := scenario()

	require.NoError(t, co.Submit(context.Background(), a))
	require.NoError(t, co.Submit(context.Background(), b))

	start := time.Now()
	err := co.Wait(50 * time.Millisecond)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "3")
	assert.True(t, IsFatal(err))
	assert.Less(t, time.Since(start), time.Second)
	assert.Empty(t, g.Cards())
}

func TestMissingSiblingIsIncomplete(t *testing.T) {
	co, _ := setupCoordinator(t, nil)
	a, _, c := scenario()

	require.NoError(t, co.Submit(context.Background(), a))
	require.NoError(t, co.Submit(context.Background(), c))

	err := co.Wait(time.Second)
	assert.ErrorIs(t, err, ErrIncomplete)
	assert.Contains(t, err.Error(), "2")
}

func TestSubmitTwice(t *testing.T) {
	co, _ := setupCoordinator(t, nil)
	_, _, c := scenario()

	require.NoError(t, co.Submit(context.Background(), c))
	err := co.Submit(context.Background(), c)
	assert.ErrorIs(t, err, promise.ErrAlreadyResolved)
	assert.True(t, IsFatal(err))
	assert.ErrorIs(t, co.Wait(time.Second), promise.ErrAlreadyResolved)
}

func TestMalformed(t *testing.T) {
	tests := []struct {
		name  string
		parts []source.Part
	}{
		{"Two Results", []source.Part{
			{ID: "1", Component: source.ComponentMeldPart},
			{ID: "3", Component: source.ComponentMeldResult},
			{ID: "4", Component: source.ComponentMeldResult},
		}},
		{"Part Naming No Result", []source.Part{
			{ID: "1", Component: source.ComponentMeldPart},
			{ID: "2", Component: source.ComponentMeldPart},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := &recorder{}
			co, g := setupCoordinator(t, rep)
			rec := &source.Record{ID: "1", Name: "X", Layout: source.LayoutMeld, Set: "emn", AllParts: tt.parts}

			err := co.Submit(context.Background(), rec)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.True(t, IsFatal(err))
			assert.ErrorIs(t, co.Err(), ErrMalformed)
			assert.ErrorIs(t, co.Wait(time.Second), ErrMalformed)
			assert.Empty(t, g.Cards())
			assert.Empty(t, rep.built)
		})
	}
}

func TestSetDivergence(t *testing.T) {
	co, _ := setupCoordinator(t, nil)
	a, b, c := scenario()
	b.Set = "plst"
	c.AllParts = meldParts()

	for _, rec := range []*source.Record{a, b, c} {
		require.NoError(t, co.Submit(context.Background(), rec))
	}
	err := co.Wait(time.Second)
	assert.ErrorIs(t, err, ErrDivergence)
}

func TestRecordLevelFailureIsReported(t *testing.T) {
	rep := &recorder{}
	co, g := setupCoordinator(t, rep)

	a, b, c := scenario()
	b.Set = "zzz"
	for _, rec := range []*source.Record{a, b, c} {
		require.NoError(t, co.Submit(context.Background(), rec))
	}
	require.NoError(t, co.Wait(time.Second))

	require.Contains(t, rep.failed, "2")
	assert.ErrorIs(t, rep.failed["2"], graph.ErrUnknownSet)
	assert.False(t, IsFatal(rep.failed["2"]))
	assert.Len(t, g.Cards(), 1)

	// A failed part is never also counted as built
	assert.ElementsMatch(t, []string{"1", "3"}, rep.built)
}

func TestBuiltIsReported(t *testing.T) {
	rep := &recorder{}
	co, _ := setupCoordinator(t, rep)

	a, b, c := scenario()
	ctx := context.Background()
	require.NoError(t, co.Submit(ctx, a))
	require.NoError(t, co.Submit(ctx, b))

	rep.mu.Lock()
	assert.Empty(t, rep.built, "parts are not built before their result arrives")
	rep.mu.Unlock()

	require.NoError(t, co.Submit(ctx, c))
	require.NoError(t, co.Wait(time.Second))

	assert.ElementsMatch(t, []string{"1", "2", "3"}, rep.built)
	assert.Empty(t, rep.failed)
}
