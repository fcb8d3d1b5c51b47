package graph

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"card-catalog/core/registry"
	"card-catalog/feature/catalog/source"

	"github.com/google/uuid"
)

// FaceKind tags which side of a card a Face is.
type FaceKind int

const (
	KindFront FaceKind = iota
	KindTransformed
	KindFlipped
	KindLeft
	KindMiddle
	KindRight
	KindAdventure
)

var faceKindNames = map[FaceKind]string{
	KindFront:       "front",
	KindTransformed: "transformed",
	KindFlipped:     "flipped",
	KindLeft:        "left",
	KindMiddle:      "middle",
	KindRight:       "right",
	KindAdventure:   "adventure",
}

func (k FaceKind) String() string {
	if name, ok := faceKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

func (k FaceKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FaceKey is the slot a face occupies on a card.
type FaceKey struct {
	Kind  FaceKind
	Index int
}

func (k FaceKey) String() string {
	return fmt.Sprintf("%s/%d", k.Kind, k.Index)
}

func (k FaceKey) compare(o FaceKey) int {
	if c := cmp.Compare(k.Kind, o.Kind); c != 0 {
		return c
	}
	return cmp.Compare(k.Index, o.Index)
}

// FrameKind is how a face is laid out on the physical object.
type FrameKind int

const (
	FrameFull FrameKind = iota
	FrameSplitLeft
	FrameSplitMiddle
	FrameSplitRight
	FrameFlipTop
	FrameFlipBottom
	FrameAdventureMain
	FrameAdventureSpell
)

var frameKindNames = map[FrameKind]string{
	FrameFull:           "full",
	FrameSplitLeft:      "split_left",
	FrameSplitMiddle:    "split_middle",
	FrameSplitRight:     "split_right",
	FrameFlipTop:        "flip_top",
	FrameFlipBottom:     "flip_bottom",
	FrameAdventureMain:  "adventure_main",
	FrameAdventureSpell: "adventure_spell",
}

func (f FrameKind) String() string {
	if name, ok := frameKindNames[f]; ok {
		return name
	}
	return fmt.Sprintf("frame(%d)", int(f))
}

func (f FrameKind) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// Content is the gameplay text of a face.
type Content struct {
	Name           string
	ManaCost       string
	CMC            float64
	TypeLine       string
	Text           string
	Power          string
	Toughness      string
	Loyalty        string
	Defense        string
	HandModifier   string
	LifeModifier   string
	Colors         []source.Color
	ColorIndicator []source.Color
}

// Face is one logical side of a card's gameplay content.
type Face struct {
	ID   uuid.UUID
	Kind FaceKind
	// Main faces count toward the card's default identity and rendering.
	Main bool
	Content

	// Upright is the face a flipped face rotates from. KindFlipped only.
	Upright *Face
	// Into lists the faces this face transforms into.
	Into []*Face
}

type faceSlot struct {
	key  FaceKey
	face *Face
}

// Card is a gameplay-level entity independent of any printing.
type Card struct {
	ID            uuid.UUID
	Name          string
	Layout        source.Layout
	ColorIdentity []source.Color
	Legalities    source.Legalities

	faces     *registry.Registry[*faceSlot]
	printings *registry.Registry[*Printing]
}

func newCard(id uuid.UUID) *Card {
	return &Card{
		ID:        id,
		faces:     registry.New[*faceSlot](),
		printings: registry.New[*Printing](),
	}
}

func (c *Card) slots() []*faceSlot {
	slots := c.faces.Values()
	slices.SortFunc(slots, func(a, b *faceSlot) int { return a.key.compare(b.key) })
	return slots
}

// Faces returns the card's faces ordered by slot.
func (c *Card) Faces() []*Face {
	slots := c.slots()
	faces := make([]*Face, len(slots))
	for i, s := range slots {
		faces[i] = s.face
	}
	return faces
}

// Slot pairs a face with its position on a card.
type Slot struct {
	Key  FaceKey
	Face *Face
}

// Slots returns the card's faces with their keys, ordered by slot.
func (c *Card) Slots() []Slot {
	slots := c.slots()
	out := make([]Slot, len(slots))
	for i, s := range slots {
		out[i] = Slot{Key: s.key, Face: s.face}
	}
	return out
}

// MainFaces returns the card's main faces ordered by slot.
func (c *Card) MainFaces() []*Face {
	var faces []*Face
	for _, f := range c.Faces() {
		if f.Main {
			faces = append(faces, f)
		}
	}
	return faces
}

// Face returns the face in slot key.
func (c *Card) Face(key FaceKey) (*Face, bool) {
	s, ok := c.faces.Get(key.String())
	if !ok {
		return nil, false
	}
	return s.face, true
}

func (c *Card) keyOf(f *Face) (FaceKey, bool) {
	for _, s := range c.faces.Values() {
		if s.face == f {
			return s.key, true
		}
	}
	return FaceKey{}, false
}

// Printings returns the card's printings ordered by release date, set code
// and id.
func (c *Card) Printings() []*Printing {
	printings := c.printings.Values()
	slices.SortFunc(printings, func(a, b *Printing) int {
		if n := a.ReleasedAt.Compare(b.ReleasedAt); n != 0 {
			return n
		}
		if n := cmp.Compare(a.Set.Code, b.Set.Code); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return printings
}

// PrintedFace is the rendering of one Face on one Printing.
type PrintedFace struct {
	Printing    *Printing
	Face        *Face
	Key         FaceKey
	OnBack      bool
	Frame       FrameKind
	FlavorText  string
	PrintedName string
}

// Flavor carries the printing-specific text of a printed face.
type Flavor struct {
	Text        string
	PrintedName string
}

// Printing is one concrete print of a card in a set.
type Printing struct {
	ID              string
	Card            *Card
	Set             *Set
	CollectorNumber string
	Rarity          source.Rarity
	ReleasedAt      time.Time
	Frame           source.Frame
	Promo           bool
	Digital         bool

	faces *registry.Registry[*PrintedFace]
}

func printedFaceKey(f *Face, onBack bool) string {
	if onBack {
		return f.ID.String() + "/back"
	}
	return f.ID.String() + "/front"
}

// Faces returns the printed faces, front side first, then by slot.
func (p *Printing) Faces() []*PrintedFace {
	faces := p.faces.Values()
	slices.SortFunc(faces, func(a, b *PrintedFace) int {
		if a.OnBack != b.OnBack {
			if b.OnBack {
				return -1
			}
			return 1
		}
		return a.Key.compare(b.Key)
	})
	return faces
}

// PrintedFace returns the rendering of face on the given side.
func (p *Printing) PrintedFace(face *Face, onBack bool) (*PrintedFace, bool) {
	return p.faces.Get(printedFaceKey(face, onBack))
}

// Set is a release grouping of printings.
type Set struct {
	Code       string
	Name       string
	Type       source.SetType
	ReleasedAt time.Time
	Digital    bool

	printings *registry.Registry[*Printing]
	numbers   *registry.Registry[*Printing]
}

// Printings returns the set's published printings in publication order.
func (s *Set) Printings() []*Printing {
	return s.printings.Values()
}

// PrintingByNumber returns the published printing with the given collector number.
func (s *Set) PrintingByNumber(number string) (*Printing, bool) {
	p, ok := s.numbers.Get(number)
	if !ok {
		return nil, false
	}
	if _, published := s.printings.Get(p.ID); !published {
		return nil, false
	}
	return p, true
}
