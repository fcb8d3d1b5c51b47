package graph

import (
	"time"

	"card-catalog/feature/catalog/source"
)

const dateLayout = "2006-01-02"

func parseDate(s string) time.Time {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ContentOf copies the gameplay fields of a raw face.
func ContentOf(f source.RecordFace) Content {
	return Content{
		Name:           f.Name,
		ManaCost:       f.ManaCost,
		CMC:            f.CMC,
		TypeLine:       f.TypeLine,
		Text:           f.OracleText,
		Power:          f.Power,
		Toughness:      f.Toughness,
		Loyalty:        f.Loyalty,
		Defense:        f.Defense,
		HandModifier:   f.HandModifier,
		LifeModifier:   f.LifeModifier,
		Colors:         f.Colors,
		ColorIndicator: f.ColorIndicator,
	}
}

// FlavorOf copies the printing-specific text of a raw face.
func FlavorOf(f source.RecordFace) Flavor {
	return Flavor{Text: f.FlavorText, PrintedName: f.PrintedName}
}

// CardInit fills a new card from rec under the given display name.
func CardInit(rec *source.Record, name string) func(*Card) {
	return func(c *Card) {
		c.Name = name
		c.Layout = rec.Layout
		c.ColorIdentity = rec.ColorIdentity
		c.Legalities = rec.Legalities
	}
}

// PrintingInit fills a new printing from rec.
func PrintingInit(rec *source.Record) func(*Printing) {
	return func(p *Printing) {
		p.CollectorNumber = rec.CollectorNumber
		p.Rarity = rec.PrintedRarity()
		p.ReleasedAt = parseDate(rec.ReleasedAt)
		p.Frame = rec.Frame
		p.Promo = rec.Promo
		p.Digital = rec.Digital
	}
}
