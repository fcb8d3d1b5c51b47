package graph

import (
	"errors"
	"fmt"
	"strings"

	"card-catalog/core/registry"
	"card-catalog/feature/catalog/source"

	"github.com/google/uuid"
)

var (
	// ErrUnknownSet is returned when a record names a set that was never registered.
	ErrUnknownSet = errors.New("unknown set")
	// ErrFaceConflict is returned when a card slot already holds a different face.
	ErrFaceConflict = errors.New("face conflict")
	// ErrFaceNotOnCard is returned when a printed face references a face of another card.
	ErrFaceNotOnCard = errors.New("face does not belong to card")
	// ErrPrintingConflict is returned when a printing identity is bound to a different card, set or collector number.
	ErrPrintingConflict = errors.New("printing conflict")
)

// Graph is the canonical catalog under construction.
type Graph struct {
	cards     *registry.Registry[*Card]
	faces     *registry.Registry[*Face]
	printings *registry.Registry[*Printing]
	sets      *registry.Registry[*Set]
	names     *registry.Registry[*Card]
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		cards:     registry.New[*Card](),
		faces:     registry.New[*Face](),
		printings: registry.New[*Printing](),
		sets:      registry.New[*Set](),
		names:     registry.New[*Card](),
	}
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func setKey(code string) string {
	return strings.ToLower(code)
}

func (g *Graph) indexName(name string, card *Card) {
	if k := nameKey(name); k != "" {
		_, _, _ = g.names.GetOrCreate(k, func() (*Card, error) { return card, nil })
	}
}

// RegisterSet adds a set. Registering a code twice returns the first set.
func (g *Graph) RegisterSet(rec source.SetRecord) *Set {
	s, _, _ := g.sets.GetOrCreate(setKey(rec.Code), func() (*Set, error) {
		return &Set{
			Code:       rec.Code,
			Name:       rec.Name,
			Type:       rec.SetType,
			ReleasedAt: parseDate(rec.ReleasedAt),
			Digital:    rec.Digital,
			printings:  registry.New[*Printing](),
			numbers:    registry.New[*Printing](),
		}, nil
	})
	return s
}

// Set returns the registered set with the given code.
func (g *Graph) Set(code string) (*Set, error) {
	s, ok := g.sets.Get(setKey(code))
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSet, code)
	}
	return s, nil
}

// GetOrCreateCard returns the card with id, running init on a new card when
// it does not exist yet.
func (g *Graph) GetOrCreateCard(id uuid.UUID, init func(c *Card)) *Card {
	card, created, _ := g.cards.GetOrCreate(id.String(), func() (*Card, error) {
		c := newCard(id)
		if init != nil {
			init(c)
		}
		return c, nil
	})
	if created {
		g.indexName(card.Name, card)
	}
	return card
}

// GetOrCreateFace returns the face with id attached to card at key. A face
// with that id is created once for the whole graph, so cards that reference
// the same id share one instance. It fails when the slot already holds a
// different face or the stored face is of another kind.
func (g *Graph) GetOrCreateFace(card *Card, key FaceKey, id uuid.UUID, main bool, init func(f *Face)) (*Face, error) {
	face, _, _ := g.faces.GetOrCreate(id.String(), func() (*Face, error) {
		f := &Face{ID: id, Kind: key.Kind, Main: main}
		if init != nil {
			init(f)
		}
		return f, nil
	})
	if face.Kind != key.Kind {
		return nil, fmt.Errorf("%w: face %s is %s, slot %s on card %s", ErrFaceConflict, id, face.Kind, key, card.ID)
	}

	slot, created, _ := card.faces.GetOrCreate(key.String(), func() (*faceSlot, error) {
		return &faceSlot{key: key, face: face}, nil
	})
	if slot.face != face {
		return nil, fmt.Errorf("%w: slot %s on card %s holds %s, not %s", ErrFaceConflict, key, card.ID, slot.face.ID, id)
	}
	if created {
		g.indexName(face.Name, card)
	}
	return face, nil
}

// GetOrCreatePrinting returns the printing with externalID, creating it for
// card in set when absent. A new printing whose collector number is already
// taken in set is not stored and fails with ErrPrintingConflict.
func (g *Graph) GetOrCreatePrinting(card *Card, set *Set, externalID string, init func(p *Printing)) (*Printing, error) {
	if set == nil {
		return nil, fmt.Errorf("%w: printing %s has no set", ErrUnknownSet, externalID)
	}

	p, _, err := g.printings.GetOrCreate(externalID, func() (*Printing, error) {
		p := &Printing{
			ID:    externalID,
			Card:  card,
			Set:   set,
			faces: registry.New[*PrintedFace](),
		}
		if init != nil {
			init(p)
		}
		if err := reserveNumber(p); err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	if p.Card != card || p.Set != set {
		return nil, fmt.Errorf("%w: printing %s belongs to card %s in %s", ErrPrintingConflict, externalID, p.Card.ID, p.Set.Code)
	}

	_, _, _ = card.printings.GetOrCreate(p.ID, func() (*Printing, error) { return p, nil })
	return p, nil
}

// AddPrintedFace returns the rendering of face on the given side of p,
// creating it when absent, and publishes p into its set's indexes.
func (g *Graph) AddPrintedFace(p *Printing, face *Face, onBack bool, frame FrameKind, flavor Flavor) (*PrintedFace, error) {
	key, ok := p.Card.keyOf(face)
	if !ok {
		return nil, fmt.Errorf("%w: face %s on printing %s", ErrFaceNotOnCard, face.ID, p.ID)
	}

	g.publish(p)

	pf, _, _ := p.faces.GetOrCreate(printedFaceKey(face, onBack), func() (*PrintedFace, error) {
		return &PrintedFace{
			Printing:    p,
			Face:        face,
			Key:         key,
			OnBack:      onBack,
			Frame:       frame,
			FlavorText:  flavor.Text,
			PrintedName: flavor.PrintedName,
		}, nil
	})
	return pf, nil
}

// reserveNumber claims the printing's collector number in its set. It runs
// before the printing is stored, so a conflicting record leaves nothing behind.
func reserveNumber(p *Printing) error {
	if p.CollectorNumber == "" {
		return nil
	}
	other, _, _ := p.Set.numbers.GetOrCreate(p.CollectorNumber, func() (*Printing, error) { return p, nil })
	if other != p {
		return fmt.Errorf("%w: %s #%s is already printing %s", ErrPrintingConflict, p.Set.Code, p.CollectorNumber, other.ID)
	}
	return nil
}

func (g *Graph) publish(p *Printing) {
	_, _, _ = p.Set.printings.GetOrCreate(p.ID, func() (*Printing, error) { return p, nil })
}

// Card returns the card with id.
func (g *Graph) Card(id uuid.UUID) (*Card, bool) {
	return g.cards.Get(id.String())
}

// CardByName returns the card with the given full or face name, ignoring case.
func (g *Graph) CardByName(name string) (*Card, bool) {
	return g.names.Get(nameKey(name))
}

// Cards returns every card in creation order.
func (g *Graph) Cards() []*Card {
	return g.cards.Values()
}

// Face returns the face with id.
func (g *Graph) Face(id uuid.UUID) (*Face, bool) {
	return g.faces.Get(id.String())
}

// Printing returns the printing with the external id.
func (g *Graph) Printing(id string) (*Printing, bool) {
	return g.printings.Get(id)
}

// Printings returns every printing in creation order.
func (g *Graph) Printings() []*Printing {
	return g.printings.Values()
}

// PrintingByNumber returns the printing with the collector number in a set.
func (g *Graph) PrintingByNumber(setCode, number string) (*Printing, bool) {
	s, err := g.Set(setCode)
	if err != nil {
		return nil, false
	}
	return s.PrintingByNumber(number)
}

// Sets returns every registered set in registration order.
func (g *Graph) Sets() []*Set {
	return g.sets.Values()
}

// Stats counts the graph's entities.
type Stats struct {
	Cards     int `json:"cards"`
	Faces     int `json:"faces"`
	Printings int `json:"printings"`
	Sets      int `json:"sets"`
}

// Stats returns the current entity counts.
func (g *Graph) Stats() Stats {
	return Stats{
		Cards:     g.cards.Len(),
		Faces:     g.faces.Len(),
		Printings: g.printings.Len(),
		Sets:      g.sets.Len(),
	}
}
