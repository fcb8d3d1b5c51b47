package catalog

import (
	"card-catalog/feature/catalog/dispatch"
	"card-catalog/feature/catalog/graph"
	"card-catalog/feature/catalog/source"
)

const dateLayout = "2006-01-02"

// FaceView is the JSON form of a card face.
type FaceView struct {
	ID             string         `json:"id"`
	Slot           string         `json:"slot"`
	Kind           string         `json:"kind"`
	Main           bool           `json:"main"`
	Name           string         `json:"name"`
	ManaCost       string         `json:"mana_cost,omitempty"`
	CMC            float64        `json:"cmc"`
	TypeLine       string         `json:"type_line,omitempty"`
	Text           string         `json:"oracle_text,omitempty"`
	Power          string         `json:"power,omitempty"`
	Toughness      string         `json:"toughness,omitempty"`
	Loyalty        string         `json:"loyalty,omitempty"`
	Defense        string         `json:"defense,omitempty"`
	Colors         []source.Color `json:"colors"`
	ColorIndicator []source.Color `json:"color_indicator,omitempty"`
	Upright        string         `json:"upright,omitempty"`
	Into           []string       `json:"into,omitempty"`
}

// CardView is the JSON form of a card.
type CardView struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Layout        string            `json:"layout"`
	ColorIdentity []source.Color    `json:"color_identity"`
	Legalities    source.Legalities `json:"legalities"`
	Faces         []FaceView        `json:"faces"`
}

// PrintedFaceView is the JSON form of a printed face.
type PrintedFaceView struct {
	FaceID      string `json:"face_id"`
	Slot        string `json:"slot"`
	OnBack      bool   `json:"on_back"`
	Frame       string `json:"frame"`
	FlavorText  string `json:"flavor_text,omitempty"`
	PrintedName string `json:"printed_name,omitempty"`
}

// PrintingView is the JSON form of a printing.
type PrintingView struct {
	ID              string            `json:"id"`
	CardID          string            `json:"card_id"`
	CardName        string            `json:"card_name"`
	Set             string            `json:"set"`
	CollectorNumber string            `json:"collector_number"`
	Variation       int               `json:"variation"`
	Rarity          string            `json:"rarity"`
	ReleasedAt      string            `json:"released_at,omitempty"`
	Frame           string            `json:"frame,omitempty"`
	Promo           bool              `json:"promo"`
	Digital         bool              `json:"digital"`
	Faces           []PrintedFaceView `json:"faces"`
}

// SetView is the JSON form of a set.
type SetView struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Type       string `json:"set_type"`
	ReleasedAt string `json:"released_at,omitempty"`
	Digital    bool   `json:"digital"`
	Printings  int    `json:"printings"`
}

// StatsView summarizes the loaded catalog.
type StatsView struct {
	graph.Stats
	LoadedAt string           `json:"loaded_at"`
	Report   *dispatch.Report `json:"report"`
}

func faceView(slot graph.Slot) FaceView {
	f := slot.Face
	v := FaceView{
		ID:             f.ID.String(),
		Slot:           slot.Key.String(),
		Kind:           f.Kind.String(),
		Main:           f.Main,
		Name:           f.Name,
		ManaCost:       f.ManaCost,
		CMC:            f.CMC,
		TypeLine:       f.TypeLine,
		Text:           f.Text,
		Power:          f.Power,
		Toughness:      f.Toughness,
		Loyalty:        f.Loyalty,
		Defense:        f.Defense,
		Colors:         f.Colors,
		ColorIndicator: f.ColorIndicator,
	}
	if f.Upright != nil {
		v.Upright = f.Upright.ID.String()
	}
	for _, into := range f.Into {
		v.Into = append(v.Into, into.ID.String())
	}
	return v
}

func cardView(c *graph.Card) CardView {
	v := CardView{
		ID:            c.ID.String(),
		Name:          c.Name,
		Layout:        string(c.Layout),
		ColorIdentity: c.ColorIdentity,
		Legalities:    c.Legalities,
	}
	for _, slot := range c.Slots() {
		v.Faces = append(v.Faces, faceView(slot))
	}
	return v
}

func printingView(p *graph.Printing, variation int) PrintingView {
	v := PrintingView{
		ID:              p.ID,
		CardID:          p.Card.ID.String(),
		CardName:        p.Card.Name,
		Set:             p.Set.Code,
		CollectorNumber: p.CollectorNumber,
		Variation:       variation,
		Rarity:          string(p.Rarity),
		Frame:           string(p.Frame),
		Promo:           p.Promo,
		Digital:         p.Digital,
	}
	if !p.ReleasedAt.IsZero() {
		v.ReleasedAt = p.ReleasedAt.Format(dateLayout)
	}
	for _, pf := range p.Faces() {
		v.Faces = append(v.Faces, PrintedFaceView{
			FaceID:      pf.Face.ID.String(),
			Slot:        pf.Key.String(),
			OnBack:      pf.OnBack,
			Frame:       pf.Frame.String(),
			FlavorText:  pf.FlavorText,
			PrintedName: pf.PrintedName,
		})
	}
	return v
}

func setView(s *graph.Set) SetView {
	v := SetView{
		Code:      s.Code,
		Name:      s.Name,
		Type:      string(s.Type),
		Digital:   s.Digital,
		Printings: len(s.Printings()),
	}
	if !s.ReleasedAt.IsZero() {
		v.ReleasedAt = s.ReleasedAt.Format(dateLayout)
	}
	return v
}
