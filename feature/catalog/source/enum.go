package source

import (
	"encoding/json"
	"strings"
	"sync"

	"go.uber.org/zap"
)

var warned sync.Map

func normalize(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "")
}

// parseEnum maps raw onto one of known, degrading to unrecognized.
func parseEnum[T ~string](kind, raw string, known []T, unrecognized T) T {
	norm := normalize(raw)
	for _, k := range known {
		if normalize(string(k)) == norm {
			return k
		}
	}

	if _, seen := warned.LoadOrStore(kind+"\x00"+raw, struct{}{}); !seen {
		zap.L().Warn("Unrecognized enum value", zap.String("kind", kind), zap.String("value", raw))
	}
	return unrecognized
}

func decodeString(data []byte) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

// Layout is the source's classification of how a card's faces relate.
type Layout string

const (
	LayoutNormal           Layout = "normal"
	LayoutSplit            Layout = "split"
	LayoutFlip             Layout = "flip"
	LayoutTransform        Layout = "transform"
	LayoutModalDFC         Layout = "modal_dfc"
	LayoutMeld             Layout = "meld"
	LayoutLeveler          Layout = "leveler"
	LayoutClass            Layout = "class"
	LayoutCase             Layout = "case"
	LayoutSaga             Layout = "saga"
	LayoutAdventure        Layout = "adventure"
	LayoutMutate           Layout = "mutate"
	LayoutPrototype        Layout = "prototype"
	LayoutBattle           Layout = "battle"
	LayoutPlanar           Layout = "planar"
	LayoutScheme           Layout = "scheme"
	LayoutVanguard         Layout = "vanguard"
	LayoutToken            Layout = "token"
	LayoutDoubleFacedToken Layout = "double_faced_token"
	LayoutEmblem           Layout = "emblem"
	LayoutAugment          Layout = "augment"
	LayoutHost             Layout = "host"
	LayoutArtSeries        Layout = "art_series"
	LayoutReversible       Layout = "reversible_card"
	LayoutUnrecognized     Layout = "unrecognized"
)

var layouts = []Layout{
	LayoutNormal, LayoutSplit, LayoutFlip, LayoutTransform, LayoutModalDFC, LayoutMeld,
	LayoutLeveler, LayoutClass, LayoutCase, LayoutSaga, LayoutAdventure, LayoutMutate,
	LayoutPrototype, LayoutBattle, LayoutPlanar, LayoutScheme, LayoutVanguard, LayoutToken,
	LayoutDoubleFacedToken, LayoutEmblem, LayoutAugment, LayoutHost, LayoutArtSeries,
	LayoutReversible,
}

// ParseLayout maps a raw layout tag onto a Layout.
func ParseLayout(raw string) Layout {
	return parseEnum("layout", raw, layouts, LayoutUnrecognized)
}

func (l *Layout) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data)
	if err != nil {
		return err
	}
	*l = ParseLayout(s)
	return nil
}

// Rarity is the printed rarity of a printing.
type Rarity string

const (
	RarityCommon       Rarity = "common"
	RarityUncommon     Rarity = "uncommon"
	RarityRare         Rarity = "rare"
	RarityMythic       Rarity = "mythic"
	RaritySpecial      Rarity = "special"
	RarityBonus        Rarity = "bonus"
	RarityBasicLand    Rarity = "basic_land"
	RarityUnrecognized Rarity = "unrecognized"
)

var rarities = []Rarity{
	RarityCommon, RarityUncommon, RarityRare, RarityMythic, RaritySpecial, RarityBonus, RarityBasicLand,
}

// ParseRarity maps a raw rarity onto a Rarity.
func ParseRarity(raw string) Rarity {
	return parseEnum("rarity", raw, rarities, RarityUnrecognized)
}

func (r *Rarity) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data)
	if err != nil {
		return err
	}
	*r = ParseRarity(s)
	return nil
}

// Legality is a card's status in one format.
type Legality string

const (
	Legal                Legality = "legal"
	NotLegal             Legality = "not_legal"
	Restricted           Legality = "restricted"
	Banned               Legality = "banned"
	LegalityUnrecognized Legality = "unrecognized"
)

var legalities = []Legality{Legal, NotLegal, Restricted, Banned}

// ParseLegality maps a raw legality onto a Legality.
func ParseLegality(raw string) Legality {
	return parseEnum("legality", raw, legalities, LegalityUnrecognized)
}

// Format is a play format named in the legality map.
type Format string

const (
	FormatStandard        Format = "standard"
	FormatFuture          Format = "future"
	FormatHistoric        Format = "historic"
	FormatTimeless        Format = "timeless"
	FormatGladiator       Format = "gladiator"
	FormatPioneer         Format = "pioneer"
	FormatExplorer        Format = "explorer"
	FormatModern          Format = "modern"
	FormatLegacy          Format = "legacy"
	FormatPauper          Format = "pauper"
	FormatVintage         Format = "vintage"
	FormatPenny           Format = "penny"
	FormatCommander       Format = "commander"
	FormatOathbreaker     Format = "oathbreaker"
	FormatStandardBrawl   Format = "standardbrawl"
	FormatBrawl           Format = "brawl"
	FormatAlchemy         Format = "alchemy"
	FormatPauperCommander Format = "paupercommander"
	FormatDuel            Format = "duel"
	FormatOldSchool       Format = "oldschool"
	FormatPremodern       Format = "premodern"
	FormatPredH           Format = "predh"
	FormatUnrecognized    Format = "unrecognized"
)

var formats = []Format{
	FormatStandard, FormatFuture, FormatHistoric, FormatTimeless, FormatGladiator, FormatPioneer,
	FormatExplorer, FormatModern, FormatLegacy, FormatPauper, FormatVintage, FormatPenny,
	FormatCommander, FormatOathbreaker, FormatStandardBrawl, FormatBrawl, FormatAlchemy,
	FormatPauperCommander, FormatDuel, FormatOldSchool, FormatPremodern, FormatPredH,
}

// droppedFormats are recognized but never carried into the catalog.
var droppedFormats = map[Format]bool{
	FormatDuel:         true,
	FormatOldSchool:    true,
	FormatUnrecognized: true,
}

// ParseFormat maps a raw format key onto a Format.
func ParseFormat(raw string) Format {
	return parseEnum("format", raw, formats, FormatUnrecognized)
}

// Legalities is the per-format legality map of a card.
type Legalities map[Format]Legality

func (l *Legalities) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Legalities, len(raw))
	for k, v := range raw {
		f := ParseFormat(k)
		if droppedFormats[f] {
			continue
		}
		out[f] = ParseLegality(v)
	}
	*l = out
	return nil
}

// Frame is the frame era a printing was rendered in.
type Frame string

const (
	Frame1993         Frame = "1993"
	Frame1997         Frame = "1997"
	Frame2003         Frame = "2003"
	Frame2015         Frame = "2015"
	FrameFuture       Frame = "future"
	FrameUnrecognized Frame = "unrecognized"
)

var frames = []Frame{Frame1993, Frame1997, Frame2003, Frame2015, FrameFuture}

// ParseFrame maps a raw frame onto a Frame.
func ParseFrame(raw string) Frame {
	return parseEnum("frame", raw, frames, FrameUnrecognized)
}

// Classic reports whether the frame predates the modern card frame.
func (f Frame) Classic() bool {
	return f == Frame1993 || f == Frame1997
}

func (f *Frame) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data)
	if err != nil {
		return err
	}
	*f = ParseFrame(s)
	return nil
}

// Color is one of the five colors of mana.
type Color string

const (
	White             Color = "W"
	Blue              Color = "U"
	Black             Color = "B"
	Red               Color = "R"
	Green             Color = "G"
	ColorUnrecognized Color = "unrecognized"
)

var colors = []Color{White, Blue, Black, Red, Green}

// ParseColor maps a raw color symbol onto a Color.
func ParseColor(raw string) Color {
	return parseEnum("color", raw, colors, ColorUnrecognized)
}

func (c *Color) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data)
	if err != nil {
		return err
	}
	*c = ParseColor(s)
	return nil
}

// SetType is the source's classification of a set.
type SetType string

const (
	SetTypeCore            SetType = "core"
	SetTypeExpansion       SetType = "expansion"
	SetTypeMasters         SetType = "masters"
	SetTypeEternal         SetType = "eternal"
	SetTypeAlchemy         SetType = "alchemy"
	SetTypeMasterpiece     SetType = "masterpiece"
	SetTypeArsenal         SetType = "arsenal"
	SetTypeFromTheVault    SetType = "from_the_vault"
	SetTypeSpellbook       SetType = "spellbook"
	SetTypePremiumDeck     SetType = "premium_deck"
	SetTypeDuelDeck        SetType = "duel_deck"
	SetTypeDraftInnovation SetType = "draft_innovation"
	SetTypeTreasureChest   SetType = "treasure_chest"
	SetTypeCommander       SetType = "commander"
	SetTypePlanechase      SetType = "planechase"
	SetTypeArchenemy       SetType = "archenemy"
	SetTypeVanguard        SetType = "vanguard"
	SetTypeFunny           SetType = "funny"
	SetTypeStarter         SetType = "starter"
	SetTypeBox             SetType = "box"
	SetTypePromo           SetType = "promo"
	SetTypeToken           SetType = "token"
	SetTypeMemorabilia     SetType = "memorabilia"
	SetTypeMinigame        SetType = "minigame"
	SetTypeUnrecognized    SetType = "unrecognized"
)

var setTypes = []SetType{
	SetTypeCore, SetTypeExpansion, SetTypeMasters, SetTypeEternal, SetTypeAlchemy,
	SetTypeMasterpiece, SetTypeArsenal, SetTypeFromTheVault, SetTypeSpellbook,
	SetTypePremiumDeck, SetTypeDuelDeck, SetTypeDraftInnovation, SetTypeTreasureChest,
	SetTypeCommander, SetTypePlanechase, SetTypeArchenemy, SetTypeVanguard, SetTypeFunny,
	SetTypeStarter, SetTypeBox, SetTypePromo, SetTypeToken, SetTypeMemorabilia, SetTypeMinigame,
}

// ParseSetType maps a raw set type onto a SetType.
func ParseSetType(raw string) SetType {
	return parseEnum("set_type", raw, setTypes, SetTypeUnrecognized)
}

// Excluded reports whether sets of this type hold no real cards.
func (t SetType) Excluded() bool {
	return t == SetTypeToken
}

func (t *SetType) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data)
	if err != nil {
		return err
	}
	*t = ParseSetType(s)
	return nil
}

// Component is the role of a related part of a record.
type Component string

const (
	ComponentToken        Component = "token"
	ComponentMeldPart     Component = "meld_part"
	ComponentMeldResult   Component = "meld_result"
	ComponentComboPiece   Component = "combo_piece"
	ComponentUnrecognized Component = "unrecognized"
)

var components = []Component{ComponentToken, ComponentMeldPart, ComponentMeldResult, ComponentComboPiece}

// componentAliases accepts the short role tags some exports use.
var componentAliases = map[string]Component{
	"part":   ComponentMeldPart,
	"result": ComponentMeldResult,
}

// ParseComponent maps a raw role tag onto a Component.
func ParseComponent(raw string) Component {
	if c, ok := componentAliases[normalize(raw)]; ok {
		return c
	}
	return parseEnum("component", raw, components, ComponentUnrecognized)
}

func (c *Component) UnmarshalJSON(data []byte) error {
	s, err := decodeString(data)
	if err != nil {
		return err
	}
	*c = ParseComponent(s)
	return nil
}
