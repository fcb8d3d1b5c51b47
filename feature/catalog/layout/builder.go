package layout

import (
	"context"
	"fmt"
	"strings"

	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/identity"
	"card-catalog/feature/catalog/source"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MeldHandler takes over records of the meld layout.
type MeldHandler interface {
	Submit(ctx context.Context, rec *source.Record) error
}

// Builder applies the construction strategy of each record to a graph.
type Builder struct {
	graph  *graph.Graph
	meld   MeldHandler
	logger *zap.Logger
}

// NewBuilder creates a builder writing into g and handing meld records to meld.
func NewBuilder(g *graph.Graph, meld MeldHandler, logger *zap.Logger) *Builder {
	return &Builder{graph: g, meld: meld, logger: logger}
}

// placement puts one raw face into a card slot and onto the printing.
type placement struct {
	key    graph.FaceKey
	face   source.RecordFace
	main   bool
	onBack bool
	frame  graph.FrameKind
	// link runs once when the face is created, with the faces placed before it.
	link func(f *graph.Face, placed []*graph.Face)
}

// Build constructs rec into the graph and returns the strategy used.
// Excluded records are skipped without error.
func (b *Builder) Build(ctx context.Context, rec *source.Record) (Strategy, error) {
	strategy, rec, err := Classify(rec)
	if err != nil {
		return strategy, err
	}

	var placements []placement
	switch strategy {
	case Excluded:
		return strategy, nil
	case Meld:
		return strategy, b.meld.Submit(ctx, rec)
	case Simple:
		placements, err = b.simple(rec)
	case Split:
		placements, err = split(rec)
	case Flip:
		placements, err = flip(rec)
	case Transform:
		placements, err = transform(rec)
	case Adventure:
		placements, err = adventure(rec)
	case Reversible:
		placements, err = reversible(rec)
	}
	if err != nil {
		return strategy, err
	}

	return strategy, b.place(rec, placements)
}

func (b *Builder) place(rec *source.Record, placements []placement) error {
	set, err := b.graph.Set(rec.Set)
	if err != nil {
		return err
	}
	printingID, err := identity.PrintingID(rec)
	if err != nil {
		return err
	}

	defining := make([]source.RecordFace, 0, len(placements))
	for _, p := range placements {
		defining = append(defining, p.face)
	}
	// Placements may be reordered; identity follows the record's own order
	cardID, err := identity.CardID(sourceOrder(rec, defining)...)
	if err != nil {
		return err
	}

	multi := len(placements) > 1
	faceIDs := make([]uuid.UUID, len(placements))
	for i, p := range placements {
		if faceIDs[i], err = identity.FaceID(p.face, multi); err != nil {
			return err
		}
	}

	card := b.graph.GetOrCreateCard(cardID, graph.CardInit(rec, rec.Name))

	faces := make([]*graph.Face, 0, len(placements))
	for i, p := range placements {
		content := graph.ContentOf(p.face)
		placed := faces
		face, err := b.graph.GetOrCreateFace(card, p.key, faceIDs[i], p.main, func(f *graph.Face) {
			f.Content = content
			if p.link != nil {
				p.link(f, placed)
			}
		})
		if err != nil {
			return err
		}
		faces = append(faces, face)
	}

	printing, err := b.graph.GetOrCreatePrinting(card, set, printingID, graph.PrintingInit(rec))
	if err != nil {
		return err
	}
	for i, p := range placements {
		if _, err := b.graph.AddPrintedFace(printing, faces[i], p.onBack, p.frame, graph.FlavorOf(p.face)); err != nil {
			return err
		}
	}
	return nil
}

// sourceOrder returns faces in the order the record lists them.
func sourceOrder(rec *source.Record, faces []source.RecordFace) []source.RecordFace {
	if len(rec.CardFaces) != len(faces) {
		return faces
	}
	return rec.Faces()
}

func topLevelFace(rec *source.Record) source.RecordFace {
	flat := *rec
	flat.CardFaces = nil
	return flat.Faces()[0]
}

func requireFaces(rec *source.Record, min int) ([]source.RecordFace, error) {
	if len(rec.CardFaces) < min {
		return nil, fmt.Errorf("%w: %s layout of %s needs %d sub-faces, has %d",
			identity.ErrMissingIdentity, rec.Layout, rec.Name, min, len(rec.CardFaces))
	}
	return rec.Faces(), nil
}

func (b *Builder) simple(rec *source.Record) ([]placement, error) {
	if len(rec.CardFaces) > 0 {
		b.logger.Warn("Building multi-face record as a single face",
			zap.String("name", rec.Name),
			zap.String("layout", string(rec.Layout)),
		)
	}
	return []placement{{
		key:   graph.FaceKey{Kind: graph.KindFront},
		face:  topLevelFace(rec),
		main:  true,
		frame: graph.FrameFull,
	}}, nil
}

// split keeps the source order: first face left, last face right, any in between middle.
func split(rec *source.Record) ([]placement, error) {
	faces, err := requireFaces(rec, 2)
	if err != nil {
		return nil, err
	}

	placements := make([]placement, len(faces))
	last := len(faces) - 1
	for i, f := range faces {
		p := placement{face: f, main: true}
		switch i {
		case 0:
			p.key, p.frame = graph.FaceKey{Kind: graph.KindLeft}, graph.FrameSplitLeft
		case last:
			p.key, p.frame = graph.FaceKey{Kind: graph.KindRight}, graph.FrameSplitRight
		default:
			p.key, p.frame = graph.FaceKey{Kind: graph.KindMiddle, Index: i - 1}, graph.FrameSplitMiddle
		}
		placements[i] = p
	}
	return placements, nil
}

func flip(rec *source.Record) ([]placement, error) {
	faces, err := requireFaces(rec, 2)
	if err != nil {
		return nil, err
	}

	return []placement{
		{key: graph.FaceKey{Kind: graph.KindFront}, face: faces[0], main: true, frame: graph.FrameFlipTop},
		{
			key:   graph.FaceKey{Kind: graph.KindFlipped},
			face:  faces[1],
			frame: graph.FrameFlipBottom,
			link: func(f *graph.Face, placed []*graph.Face) {
				upright := placed[0]
				f.Upright = upright
				f.ManaCost = upright.ManaCost
				f.CMC = upright.CMC
				f.Colors = upright.Colors
			},
		},
	}, nil
}

// transform places the back faces before the front so the front can link to them.
func transform(rec *source.Record) ([]placement, error) {
	faces, err := requireFaces(rec, 2)
	if err != nil {
		return nil, err
	}

	backs := faces[1:]
	placements := make([]placement, 0, len(faces))
	for i, f := range backs {
		placements = append(placements, placement{
			key:    graph.FaceKey{Kind: graph.KindTransformed, Index: i},
			face:   f,
			onBack: true,
			frame:  graph.FrameFull,
		})
	}
	placements = append(placements, placement{
		key:   graph.FaceKey{Kind: graph.KindFront},
		face:  faces[0],
		main:  true,
		frame: graph.FrameFull,
		link: func(f *graph.Face, placed []*graph.Face) {
			f.Into = append([]*graph.Face(nil), placed...)
		},
	})
	return placements, nil
}

func adventure(rec *source.Record) ([]placement, error) {
	faces, err := requireFaces(rec, 2)
	if err != nil {
		return nil, err
	}

	mainIdx, advIdx := -1, -1
	for i, f := range faces {
		if strings.HasSuffix(strings.TrimSpace(f.TypeLine), AdventureMarker) {
			if advIdx < 0 {
				advIdx = i
			}
		} else if mainIdx < 0 {
			mainIdx = i
		}
	}
	if mainIdx < 0 || advIdx < 0 {
		return nil, fmt.Errorf("%w: adventure %s lacks a main or %s face", ErrMalformedFaces, rec.Name, AdventureMarker)
	}

	return []placement{
		{key: graph.FaceKey{Kind: graph.KindFront}, face: faces[mainIdx], main: true, frame: graph.FrameAdventureMain},
		{key: graph.FaceKey{Kind: graph.KindAdventure}, face: faces[advIdx], frame: graph.FrameAdventureSpell},
	}, nil
}

func reversible(rec *source.Record) ([]placement, error) {
	faces, err := requireFaces(rec, 2)
	if err != nil {
		return nil, err
	}

	return []placement{
		{key: graph.FaceKey{Kind: graph.KindFront, Index: 0}, face: faces[0], main: true, frame: graph.FrameFull},
		{key: graph.FaceKey{Kind: graph.KindFront, Index: 1}, face: faces[1], main: true, onBack: true, frame: graph.FrameFull},
	}, nil
}
