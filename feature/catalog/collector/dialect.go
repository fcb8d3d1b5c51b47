package collector

import (
	"cmp"
	"regexp"
	"strconv"
)

// Key is a parsed collector number. Compare is only called with keys produced
// by the same dialect.
type Key interface {
	Compare(other Key) int
}

// Dialect recognizes one collector-number format.
type Dialect interface {
	Name() string
	Parse(s string) (Key, bool)
}

const ordinaryExpr = `([0-9]?[A-Za-z*]+)?([0-9]+)([A-Za-z*\x{2605}\x{2020}\x{2021}]+)?`

var (
	ordinaryPattern  = regexp.MustCompile(`^` + ordinaryExpr + `$`)
	yearPromoPattern = regexp.MustCompile(`^(p)?([0-9]{4})-([0-9]{1,2})$`)
	arenaPattern     = regexp.MustCompile(`^([0-9]{3})-([A-Z]+)$`)
	listPattern      = regexp.MustCompile(`^([A-Za-z0-9]{3,4})-(` + ordinaryExpr + `)$`)
)

type ordinaryKey struct {
	prefix string
	number int
	suffix string
}

func (k ordinaryKey) Compare(other Key) int {
	o := other.(ordinaryKey)
	if c := cmp.Compare(k.prefix, o.prefix); c != 0 {
		return c
	}
	if c := cmp.Compare(k.number, o.number); c != 0 {
		return c
	}
	return cmp.Compare(k.suffix, o.suffix)
}

func parseOrdinary(s string) (ordinaryKey, bool) {
	m := ordinaryPattern.FindStringSubmatch(s)
	if m == nil {
		return ordinaryKey{}, false
	}
	n, err := strconv.Atoi(m[2])
	if err != nil {
		return ordinaryKey{}, false
	}

	prefix, suffix := m[1], m[3]
	// A bare star marks a variant, not a prefix
	if prefix == "*" {
		prefix = ""
		suffix += "*"
	}
	return ordinaryKey{prefix: prefix, number: n, suffix: suffix}, true
}

// Ordinary matches an optional prefix, a number and an optional suffix.
type Ordinary struct{}

func (Ordinary) Name() string { return "ordinary" }

func (Ordinary) Parse(s string) (Key, bool) {
	k, ok := parseOrdinary(s)
	if !ok {
		return nil, false
	}
	return k, true
}

type yearPromoKey struct {
	year   string
	number int
	marked bool
}

func (k yearPromoKey) Compare(other Key) int {
	o := other.(yearPromoKey)
	if c := cmp.Compare(k.year, o.year); c != 0 {
		return c
	}
	if c := cmp.Compare(k.number, o.number); c != 0 {
		return c
	}
	switch {
	case k.marked == o.marked:
		return 0
	case k.marked:
		return 1
	default:
		return -1
	}
}

// YearPromo matches year-coded promos such as "2016-1" or "p2016-1".
type YearPromo struct{}

func (YearPromo) Name() string { return "year_promo" }

func (YearPromo) Parse(s string) (Key, bool) {
	m := yearPromoPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	n, _ := strconv.Atoi(m[3])
	return yearPromoKey{year: m[2], number: n, marked: m[1] != ""}, true
}

type arenaKey struct {
	number int
	code   string
}

func (k arenaKey) Compare(other Key) int {
	o := other.(arenaKey)
	if c := cmp.Compare(k.number, o.number); c != 0 {
		return c
	}
	return cmp.Compare(k.code, o.code)
}

// Arena matches numbers such as "001-GRN".
type Arena struct{}

func (Arena) Name() string { return "arena" }

func (Arena) Parse(s string) (Key, bool) {
	m := arenaPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	n, _ := strconv.Atoi(m[1])
	return arenaKey{number: n, code: m[2]}, true
}

type listKey struct {
	set      string
	ordinary ordinaryKey
}

func (k listKey) Compare(other Key) int {
	o := other.(listKey)
	if c := cmp.Compare(k.set, o.set); c != 0 {
		return c
	}
	return k.ordinary.Compare(o.ordinary)
}

// List matches reprint-list numbers such as "MH1-12a".
type List struct{}

func (List) Name() string { return "list" }

func (List) Parse(s string) (Key, bool) {
	m := listPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, false
	}
	ord, ok := parseOrdinary(m[2])
	if !ok {
		return nil, false
	}
	return listKey{set: m[1], ordinary: ord}, true
}
