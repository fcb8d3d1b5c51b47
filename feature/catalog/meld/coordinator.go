package meld

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"card-catalog/core/promise"
	"card-catalog/core/registry"
	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/identity"
	"card-catalog/feature/catalog/source"

	"go.uber.org/zap"
)

var (
	// ErrIncomplete is returned when meld records are still missing when the wait ends.
	ErrIncomplete = errors.New("meld incomplete")
	// ErrDivergence is returned when parts of one meld group disagree on their result.
	ErrDivergence = errors.New("meld divergence")
	// ErrMalformed is returned when a meld record's references cannot be interpreted.
	ErrMalformed = errors.New("malformed meld record")
)

// IsFatal reports whether err invalidates the whole load.
func IsFatal(err error) bool {
	return errors.Is(err, ErrIncomplete) ||
		errors.Is(err, ErrDivergence) ||
		errors.Is(err, ErrMalformed) ||
		errors.Is(err, promise.ErrAlreadyResolved)
}

// Reporter receives the outcome of meld records. Built is called once a
// record is in the graph: for results when they are submitted, for parts once
// their card is built. Failed receives record-level failures of parked parts.
type Reporter interface {
	Built(rec *source.Record)
	Failed(rec *source.Record, err error)
}

// member is one built part of a group.
type member struct {
	card     *graph.Card
	back     *graph.Face
	printing *graph.Printing
}

// group collects the parts that reference one result record.
type group struct {
	mu       sync.Mutex
	resultID string
	listed   map[string]bool
	fromPart map[string]bool
	built    map[string]member
}

// Coordinator resolves meld records into the graph.
type Coordinator struct {
	graph   *graph.Graph
	report  Reporter
	logger  *zap.Logger
	records *promise.Group[*source.Record]
	groups  *registry.Registry[*group]

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	errMu sync.Mutex
	err   error
}

// New creates a coordinator building into g. Outcomes go to report; with a
// nil report, record-level failures of parked parts are load-fatal.
func New(g *graph.Graph, report Reporter, logger *zap.Logger) *Coordinator {
	ctx, cancel := context.WithCancel(context.Background())
	return &Coordinator{
		graph:   g,
		report:  report,
		logger:  logger,
		records: promise.NewGroup[*source.Record](),
		groups:  registry.New[*group](),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// fail records the first load-fatal error and releases every parked part.
func (c *Coordinator) fail(err error) {
	c.errMu.Lock()
	if c.err == nil {
		c.err = err
	}
	c.errMu.Unlock()
	c.cancel()
}

// Err returns the first load-fatal error seen so far.
func (c *Coordinator) Err() error {
	c.errMu.Lock()
	defer c.errMu.Unlock()
	return c.err
}

func (c *Coordinator) group(resultID string) *group {
	g, _, _ := c.groups.GetOrCreate(resultID, func() (*group, error) {
		return &group{
			resultID: resultID,
			listed:   make(map[string]bool),
			fromPart: make(map[string]bool),
			built:    make(map[string]member),
		}, nil
	})
	return g
}

// role returns the result id a part depends on, or "" for a result record.
// A record is a result when it lists itself as the result, or when it neither
// names a result nor lists itself as a part.
func role(rec *source.Record) (string, error) {
	var resultID string
	for _, p := range rec.PartsWith(source.ComponentMeldResult) {
		if p.ID == rec.ID {
			return "", nil
		}
		if resultID != "" && resultID != p.ID {
			return "", fmt.Errorf("%w: %s names results %s and %s", ErrMalformed, rec.ID, resultID, p.ID)
		}
		resultID = p.ID
	}
	if resultID != "" {
		return resultID, nil
	}
	for _, p := range rec.PartsWith(source.ComponentMeldPart) {
		if p.ID == rec.ID {
			return "", fmt.Errorf("%w: part %s names no result", ErrMalformed, rec.ID)
		}
	}
	return "", nil
}

// Submit registers a meld record. Result records resolve their promise;
// part records additionally park until their result is available.
func (c *Coordinator) Submit(ctx context.Context, rec *source.Record) error {
	resultID, err := role(rec)
	if err != nil {
		c.fail(err)
		return err
	}

	if err := c.records.Get(rec.ID).Resolve(rec); err != nil {
		err = fmt.Errorf("meld record %s submitted twice: %w", rec.ID, err)
		c.fail(err)
		return err
	}

	siblings := rec.PartsWith(source.ComponentMeldPart)
	if resultID == "" {
		g := c.group(rec.ID)
		g.mu.Lock()
		for _, p := range siblings {
			g.listed[p.ID] = true
		}
		g.mu.Unlock()
		c.expect(siblings)
		c.built(rec)
		return nil
	}

	g := c.group(resultID)
	g.mu.Lock()
	for _, p := range siblings {
		g.fromPart[p.ID] = true
	}
	g.fromPart[rec.ID] = true
	g.mu.Unlock()
	c.expect(siblings)
	c.records.Get(resultID)

	c.park(rec, resultID)
	return nil
}

// expect registers promises for referenced records so that ones that never
// arrive show up as pending.
func (c *Coordinator) expect(parts []source.Part) {
	for _, p := range parts {
		c.records.Get(p.ID)
	}
}

func (c *Coordinator) park(part *source.Record, resultID string) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		result, err := c.records.Get(resultID).Await(c.ctx)
		if err != nil {
			return
		}

		if err := c.build(part, result); err != nil {
			if IsFatal(err) || c.report == nil {
				c.fail(err)
				return
			}
			c.report.Failed(part, err)
			return
		}
		c.built(part)
	}()
}

func (c *Coordinator) built(rec *source.Record) {
	if c.report != nil {
		c.report.Built(rec)
	}
}

func (c *Coordinator) build(part, result *source.Record) error {
	set, err := c.graph.Set(part.Set)
	if err != nil {
		return err
	}
	printingID, err := identity.PrintingID(part)
	if err != nil {
		return err
	}

	partFace := part.Faces()[0]
	resultFace := result.Faces()[0]

	cardID, err := identity.CardID(partFace, resultFace)
	if err != nil {
		return err
	}
	frontID, err := identity.FaceID(partFace, false)
	if err != nil {
		return err
	}
	backID, err := identity.FaceID(resultFace, false)
	if err != nil {
		return err
	}

	card := c.graph.GetOrCreateCard(cardID, graph.CardInit(part, part.Name))

	back, err := c.graph.GetOrCreateFace(card, graph.FaceKey{Kind: graph.KindTransformed}, backID, false, func(f *graph.Face) {
		f.Content = graph.ContentOf(resultFace)
	})
	if err != nil {
		return fmt.Errorf("%w: part %s: %w", ErrDivergence, part.ID, err)
	}
	front, err := c.graph.GetOrCreateFace(card, graph.FaceKey{Kind: graph.KindFront}, frontID, true, func(f *graph.Face) {
		f.Content = graph.ContentOf(partFace)
		f.Into = []*graph.Face{back}
	})
	if err != nil {
		return fmt.Errorf("%w: part %s: %w", ErrDivergence, part.ID, err)
	}

	printing, err := c.graph.GetOrCreatePrinting(card, set, printingID, graph.PrintingInit(part))
	if err != nil {
		return err
	}
	if _, err := c.graph.AddPrintedFace(printing, front, false, graph.FrameFull, graph.FlavorOf(partFace)); err != nil {
		return err
	}
	if _, err := c.graph.AddPrintedFace(printing, back, true, graph.FrameFull, graph.FlavorOf(resultFace)); err != nil {
		return err
	}

	g := c.group(result.ID)
	g.mu.Lock()
	g.built[part.ID] = member{card: card, back: back, printing: printing}
	g.mu.Unlock()

	c.logger.Debug("Built meld part",
		zap.String("part", part.ID),
		zap.String("result", result.ID),
		zap.String("card", card.ID.String()),
	)
	return nil
}

// Wait blocks until every parked part has been built, then verifies each
// group. Parts still waiting when timeout expires are abandoned and reported
// as ErrIncomplete along with any referenced record that never arrived.
func (c *Coordinator) Wait(timeout time.Duration) error {
	defer c.cancel()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		c.cancel()
		if err := c.Err(); err != nil {
			return err
		}
		return fmt.Errorf("%w after %s: unresolved records %v", ErrIncomplete, timeout, c.records.Pending())
	}

	if err := c.Err(); err != nil {
		return err
	}
	if pending := c.records.Pending(); len(pending) > 0 {
		return fmt.Errorf("%w: unresolved records %v", ErrIncomplete, pending)
	}
	for _, g := range c.groups.Values() {
		if err := c.verify(g); err != nil {
			return err
		}
	}
	return nil
}

// Abort releases every parked part without building it and waits for them
// to exit.
func (c *Coordinator) Abort() {
	c.cancel()
	c.wg.Wait()
}

// verify checks that the parts of a group share one result face and one set.
// Parts listed by the result record form the group; when the result lists
// none, the parts' own sibling lists are used.
func (c *Coordinator) verify(g *group) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	expected := g.listed
	if len(expected) == 0 {
		expected = g.fromPart
	}

	ids := make([]string, 0, len(expected))
	for id := range expected {
		if _, ok := g.built[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) == 0 {
		return nil
	}

	first := g.built[ids[0]]
	for _, id := range ids[1:] {
		m := g.built[id]
		if m.back != first.back {
			return fmt.Errorf("%w: parts %s and %s of result %s hold different result faces", ErrDivergence, ids[0], id, g.resultID)
		}
		if m.printing.Set != first.printing.Set {
			return fmt.Errorf("%w: parts %s and %s of result %s are in sets %s and %s",
				ErrDivergence, ids[0], id, g.resultID, first.printing.Set.Code, m.printing.Set.Code)
		}
	}

	result, err := c.records.Get(g.resultID).Await(context.Background())
	if err != nil {
		return err
	}
	if set, err := c.graph.Set(result.Set); err != nil || set != first.printing.Set {
		return fmt.Errorf("%w: result %s is not in set %s", ErrDivergence, g.resultID, first.printing.Set.Code)
	}
	return nil
}
