package collector

import (
	"slices"
	"strings"

	"go.uber.org/zap"
)

// Comparator orders collector numbers by a prioritized list of dialects.
type Comparator struct {
	dialects []Dialect
	logger   *zap.Logger
}

// DefaultDialects returns the built-in dialects in priority order.
func DefaultDialects() []Dialect {
	return []Dialect{Ordinary{}, YearPromo{}, Arena{}, List{}}
}

// New creates a comparator over dialects. A nil logger uses the global one.
func New(logger *zap.Logger, dialects ...Dialect) *Comparator {
	if logger == nil {
		logger = zap.L()
	}
	return &Comparator{dialects: dialects, logger: logger}
}

// Default creates a comparator over the built-in dialects.
func Default(logger *zap.Logger) *Comparator {
	return New(logger, DefaultDialects()...)
}

// Dialects returns the comparator's dialects in priority order.
func (c *Comparator) Dialects() []Dialect {
	return slices.Clone(c.dialects)
}

func (c *Comparator) parse(s string) (int, Key) {
	for i, d := range c.dialects {
		if k, ok := d.Parse(s); ok {
			return i, k
		}
	}
	return -1, nil
}

// Recognize returns the name of the dialect that parses s.
func (c *Comparator) Recognize(s string) (string, bool) {
	i, _ := c.parse(s)
	if i < 0 {
		return "", false
	}
	return c.dialects[i].Name(), true
}

// Compare returns a negative number when a sorts before b, a positive number
// when after, and zero when they are equivalent.
func (c *Comparator) Compare(a, b string) int {
	ia, ka := c.parse(a)
	ib, kb := c.parse(b)

	switch {
	case ia >= 0 && ia == ib:
		return ka.Compare(kb)
	case ia >= 0 && ib >= 0:
		return ia - ib
	case ia >= 0:
		return -1
	case ib >= 0:
		return 1
	}

	c.logger.Warn("Unrecognized collector number format",
		zap.String("a", a),
		zap.String("b", b),
	)
	return strings.Compare(a, b)
}

// Sort orders numbers in place.
func (c *Comparator) Sort(numbers []string) {
	slices.SortStableFunc(numbers, c.Compare)
}
