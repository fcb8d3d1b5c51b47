package source

import (
	"context"
	"strings"
)

// Record is one printing of a card as the source catalogs it.
type Record struct {
	ID              string       `json:"id"`
	OracleID        string       `json:"oracle_id"`
	Name            string       `json:"name"`
	PrintedName     string       `json:"printed_name"`
	Layout          Layout       `json:"layout"`
	ManaCost        string       `json:"mana_cost"`
	CMC             float64      `json:"cmc"`
	TypeLine        string       `json:"type_line"`
	OracleText      string       `json:"oracle_text"`
	Power           string       `json:"power"`
	Toughness       string       `json:"toughness"`
	Loyalty         string       `json:"loyalty"`
	Defense         string       `json:"defense"`
	HandModifier    string       `json:"hand_modifier"`
	LifeModifier    string       `json:"life_modifier"`
	Colors          []Color      `json:"colors"`
	ColorIndicator  []Color      `json:"color_indicator"`
	ColorIdentity   []Color      `json:"color_identity"`
	CardFaces       []RecordFace `json:"card_faces"`
	AllParts        []Part       `json:"all_parts"`
	Legalities      Legalities   `json:"legalities"`
	Set             string       `json:"set"`
	SetName         string       `json:"set_name"`
	CollectorNumber string       `json:"collector_number"`
	Rarity          Rarity       `json:"rarity"`
	ReleasedAt      string       `json:"released_at"`
	FlavorText      string       `json:"flavor_text"`
	Frame           Frame        `json:"frame"`
	Promo           bool         `json:"promo"`
	Digital         bool         `json:"digital"`
}

// RecordFace is one sub-face of a multi-face record.
type RecordFace struct {
	OracleID       string  `json:"oracle_id"`
	Name           string  `json:"name"`
	PrintedName    string  `json:"printed_name"`
	ManaCost       string  `json:"mana_cost"`
	CMC            float64 `json:"cmc"`
	TypeLine       string  `json:"type_line"`
	OracleText     string  `json:"oracle_text"`
	Power          string  `json:"power"`
	Toughness      string  `json:"toughness"`
	Loyalty        string  `json:"loyalty"`
	Defense        string  `json:"defense"`
	HandModifier   string  `json:"hand_modifier"`
	LifeModifier   string  `json:"life_modifier"`
	Colors         []Color `json:"colors"`
	ColorIndicator []Color `json:"color_indicator"`
	FlavorText     string  `json:"flavor_text"`
}

// Part is a reference from a record to a related record.
type Part struct {
	ID        string    `json:"id"`
	Component Component `json:"component"`
	Name      string    `json:"name"`
	TypeLine  string    `json:"type_line"`
}

// SetRecord describes one set.
type SetRecord struct {
	Code       string  `json:"code"`
	Name       string  `json:"name"`
	SetType    SetType `json:"set_type"`
	ReleasedAt string  `json:"released_at"`
	Digital    bool    `json:"digital"`
}

// Faces returns the record's sub-faces in source order. A record without
// card_faces yields one face built from its top-level fields. Sub-faces
// inherit the record's oracle id and colors when they carry none.
func (r *Record) Faces() []RecordFace {
	if len(r.CardFaces) == 0 {
		return []RecordFace{{
			OracleID:       r.OracleID,
			Name:           r.Name,
			PrintedName:    r.PrintedName,
			ManaCost:       r.ManaCost,
			CMC:            r.CMC,
			TypeLine:       r.TypeLine,
			OracleText:     r.OracleText,
			Power:          r.Power,
			Toughness:      r.Toughness,
			Loyalty:        r.Loyalty,
			Defense:        r.Defense,
			HandModifier:   r.HandModifier,
			LifeModifier:   r.LifeModifier,
			Colors:         r.Colors,
			ColorIndicator: r.ColorIndicator,
			FlavorText:     r.FlavorText,
		}}
	}

	faces := make([]RecordFace, len(r.CardFaces))
	for i, f := range r.CardFaces {
		if f.OracleID == "" {
			f.OracleID = r.OracleID
		}
		if f.Colors == nil {
			f.Colors = r.Colors
		}
		faces[i] = f
	}
	return faces
}

// MultiFace reports whether the record carries more than one sub-face.
func (r *Record) MultiFace() bool {
	return len(r.CardFaces) > 1
}

// PartsWith returns the related parts with the given component.
func (r *Record) PartsWith(c Component) []Part {
	var out []Part
	for _, p := range r.AllParts {
		if p.Component == c {
			out = append(out, p)
		}
	}
	return out
}

// PrintedRarity returns the rarity shown on the printing. Basic lands are
// reported separately from commons.
func (r *Record) PrintedRarity() Rarity {
	if strings.Contains(r.TypeLine, "Basic Land") {
		return RarityBasicLand
	}
	return r.Rarity
}

// RecordSource streams the raw dataset.
type RecordSource interface {
	// Sets returns every set in the dataset.
	Sets(ctx context.Context) ([]SetRecord, error)
	// Records calls emit for each record until the stream ends or emit fails.
	Records(ctx context.Context, emit func(*Record) error) error
}
