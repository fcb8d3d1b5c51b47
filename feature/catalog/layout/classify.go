package layout

import (
	"errors"
	"fmt"
	"strings"

	"card-catalog/feature/catalog/source"
)

var (
	// ErrUnrecognizedLayout is returned for records whose layout matches no rule and no override.
	ErrUnrecognizedLayout = errors.New("unrecognized layout")
	// ErrMalformedFaces is returned when a record's sub-faces do not fit its layout.
	ErrMalformedFaces = errors.New("malformed sub-faces")
)

// Strategy is the construction rule applied to a record.
type Strategy int

const (
	Simple Strategy = iota
	Split
	Flip
	Transform
	Adventure
	Reversible
	Meld
	Excluded
)

var strategyNames = [...]string{"simple", "split", "flip", "transform", "adventure", "reversible", "meld", "excluded"}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// AdventureMarker ends the type line of the adventure sub-face.
const AdventureMarker = "Adventure"

var layoutStrategies = map[source.Layout]Strategy{
	source.LayoutNormal:           Simple,
	source.LayoutLeveler:          Simple,
	source.LayoutClass:            Simple,
	source.LayoutCase:             Simple,
	source.LayoutSaga:             Simple,
	source.LayoutMutate:           Simple,
	source.LayoutPrototype:        Simple,
	source.LayoutPlanar:           Simple,
	source.LayoutScheme:           Simple,
	source.LayoutVanguard:         Simple,
	source.LayoutAugment:          Simple,
	source.LayoutHost:             Simple,
	source.LayoutSplit:            Split,
	source.LayoutFlip:             Flip,
	source.LayoutTransform:        Transform,
	source.LayoutModalDFC:         Transform,
	source.LayoutBattle:           Transform,
	source.LayoutAdventure:        Adventure,
	source.LayoutReversible:       Reversible,
	source.LayoutMeld:             Meld,
	source.LayoutToken:            Excluded,
	source.LayoutDoubleFacedToken: Excluded,
	source.LayoutEmblem:           Excluded,
	source.LayoutArtSeries:        Excluded,
}

// override replaces the generic rule for one card name.
type override struct {
	strategy Strategy
	fix      func(rec *source.Record)
}

func bfmTypeFix(rec *source.Record) {
	if !strings.HasPrefix(rec.TypeLine, "Creature") {
		rec.TypeLine = "Creature — " + rec.TypeLine
	}
}

// overrides covers cards whose linkage cannot be inferred from their layout.
var overrides = map[string]override{
	"Who // What // When // Where // Why":    {strategy: Split},
	"Who":                                    {strategy: Simple},
	"What":                                   {strategy: Simple},
	"When":                                   {strategy: Simple},
	"Where":                                  {strategy: Simple},
	"Why":                                    {strategy: Simple},
	"B.F.M. (Big Furry Monster)":             {strategy: Simple, fix: bfmTypeFix},
	"B.F.M. (Big Furry Monster, Right Side)": {strategy: Simple, fix: bfmTypeFix},
	"Curse of the Fire Penguin // ???":       {strategy: Flip},
}

// Classify returns the strategy for rec and, when an override applies, the
// corrected record to build from. rec itself is never modified.
func Classify(rec *source.Record) (Strategy, *source.Record, error) {
	if o, ok := overrides[rec.Name]; ok {
		if o.fix == nil {
			return o.strategy, rec, nil
		}
		fixed := *rec
		o.fix(&fixed)
		return o.strategy, &fixed, nil
	}

	s, ok := layoutStrategies[rec.Layout]
	if !ok {
		return Excluded, rec, fmt.Errorf("%w: %q on %s", ErrUnrecognizedLayout, rec.Layout, rec.Name)
	}

	// Placeholder and token records that slipped into a regular layout
	if s == Simple && (strings.HasPrefix(rec.TypeLine, "Token") || strings.HasPrefix(rec.TypeLine, "Card")) {
		return Excluded, rec, nil
	}
	return s, rec, nil
}
