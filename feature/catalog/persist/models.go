package persist

import (
	"encoding/json"
	"time"

	"card-catalog/feature/catalog/graph"
)

// SetRow represents the 'catalog_sets' table.
type SetRow struct {
	Code       string     `gorm:"column:code;primaryKey;size:16"`
	Name       string     `gorm:"column:name"`
	SetType    string     `gorm:"column:set_type;size:32"`
	ReleasedAt *time.Time `gorm:"column:released_at"`
	Digital    bool       `gorm:"column:digital"`
}

// TableName overrides the table name for sets.
func (SetRow) TableName() string {
	return "catalog_sets"
}

// CardRow represents the 'catalog_cards' table.
type CardRow struct {
	ID            string `gorm:"column:id;primaryKey;size:36"`
	Name          string `gorm:"column:name;index"`
	Layout        string `gorm:"column:layout;size:32"`
	ColorIdentity string `gorm:"column:color_identity"` // JSON array
	Legalities    string `gorm:"column:legalities"`     // JSON object
}

// TableName overrides the table name for cards.
func (CardRow) TableName() string {
	return "catalog_cards"
}

// CardFaceRow represents the 'catalog_card_faces' table.
type CardFaceRow struct {
	CardID     string  `gorm:"column:card_id;primaryKey;size:36"`
	Slot       string  `gorm:"column:slot;primaryKey;size:32"`
	FaceID     string  `gorm:"column:face_id;index;size:36"`
	Kind       string  `gorm:"column:kind;size:16"`
	Main       bool    `gorm:"column:main"`
	Name       string  `gorm:"column:name;index"`
	ManaCost   string  `gorm:"column:mana_cost"`
	CMC        float64 `gorm:"column:cmc"`
	TypeLine   string  `gorm:"column:type_line"`
	OracleText string  `gorm:"column:oracle_text;type:text"`
	Power      string  `gorm:"column:power;size:8"`
	Toughness  string  `gorm:"column:toughness;size:8"`
	Loyalty    string  `gorm:"column:loyalty;size:8"`
	Defense    string  `gorm:"column:defense;size:8"`
	Colors     string  `gorm:"column:colors"` // JSON array
}

// TableName overrides the table name for card faces.
func (CardFaceRow) TableName() string {
	return "catalog_card_faces"
}

// PrintingRow represents the 'catalog_printings' table.
type PrintingRow struct {
	ID              string     `gorm:"column:id;primaryKey;size:64"`
	CardID          string     `gorm:"column:card_id;index;size:36"`
	SetCode         string     `gorm:"column:set_code;index;size:16"`
	CollectorNumber string     `gorm:"column:collector_number;size:16"`
	Variation       int        `gorm:"column:variation"`
	Rarity          string     `gorm:"column:rarity;size:16"`
	ReleasedAt      *time.Time `gorm:"column:released_at"`
	Frame           string     `gorm:"column:frame;size:8"`
	Promo           bool       `gorm:"column:promo"`
	Digital         bool       `gorm:"column:digital"`
}

// TableName overrides the table name for printings.
func (PrintingRow) TableName() string {
	return "catalog_printings"
}

// PrintedFaceRow represents the 'catalog_printed_faces' table.
type PrintedFaceRow struct {
	PrintingID  string `gorm:"column:printing_id;primaryKey;size:64"`
	FaceID      string `gorm:"column:face_id;primaryKey;size:36"`
	OnBack      bool   `gorm:"column:on_back;primaryKey"`
	Slot        string `gorm:"column:slot;size:32"`
	Frame       string `gorm:"column:frame;size:16"`
	FlavorText  string `gorm:"column:flavor_text;type:text"`
	PrintedName string `gorm:"column:printed_name"`
}

// TableName overrides the table name for printed faces.
func (PrintedFaceRow) TableName() string {
	return "catalog_printed_faces"
}

// Models lists every table for migrations.
func Models() []any {
	return []any{&SetRow{}, &CardRow{}, &CardFaceRow{}, &PrintingRow{}, &PrintedFaceRow{}}
}

func jsonText(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func setRow(s *graph.Set) SetRow {
	return SetRow{
		Code:       s.Code,
		Name:       s.Name,
		SetType:    string(s.Type),
		ReleasedAt: timePtr(s.ReleasedAt),
		Digital:    s.Digital,
	}
}

func cardRow(c *graph.Card) CardRow {
	return CardRow{
		ID:            c.ID.String(),
		Name:          c.Name,
		Layout:        string(c.Layout),
		ColorIdentity: jsonText(c.ColorIdentity),
		Legalities:    jsonText(c.Legalities),
	}
}

func cardFaceRow(c *graph.Card, slot graph.Slot) CardFaceRow {
	f := slot.Face
	return CardFaceRow{
		CardID:     c.ID.String(),
		Slot:       slot.Key.String(),
		FaceID:     f.ID.String(),
		Kind:       f.Kind.String(),
		Main:       f.Main,
		Name:       f.Name,
		ManaCost:   f.ManaCost,
		CMC:        f.CMC,
		TypeLine:   f.TypeLine,
		OracleText: f.Text,
		Power:      f.Power,
		Toughness:  f.Toughness,
		Loyalty:    f.Loyalty,
		Defense:    f.Defense,
		Colors:     jsonText(f.Colors),
	}
}

func printingRow(p *graph.Printing, variation int) PrintingRow {
	return PrintingRow{
		ID:              p.ID,
		CardID:          p.Card.ID.String(),
		SetCode:         p.Set.Code,
		CollectorNumber: p.CollectorNumber,
		Variation:       variation,
		Rarity:          string(p.Rarity),
		ReleasedAt:      timePtr(p.ReleasedAt),
		Frame:           string(p.Frame),
		Promo:           p.Promo,
		Digital:         p.Digital,
	}
}

func printedFaceRow(pf *graph.PrintedFace) PrintedFaceRow {
	return PrintedFaceRow{
		PrintingID:  pf.Printing.ID,
		FaceID:      pf.Face.ID.String(),
		OnBack:      pf.OnBack,
		Slot:        pf.Key.String(),
		Frame:       pf.Frame.String(),
		FlavorText:  pf.FlavorText,
		PrintedName: pf.PrintedName,
	}
}
