package collector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSort(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"Numeric Not Lexicographic", []string{"10", "2", "1"}, []string{"1", "2", "10"}},
		{"Suffixes", []string{"12b", "12", "12a", "11"}, []string{"11", "12", "12a", "12b"}},
		{"Star Is Suffix", []string{"*5", "5", "4"}, []string{"4", "5", "*5"}},
		{"Prefixes Group", []string{"S2", "A10", "3", "S1"}, []string{"3", "A10", "S1", "S2"}},
		{"Special Marks", []string{"7★", "7", "6"}, []string{"6", "7", "7★"}},
		{"Year Promos", []string{"2017-1", "2016-2", "2016-1"}, []string{"2016-1", "2016-2", "2017-1"}},
		{"Marked Year Promo Last", []string{"p2016-1", "2016-1"}, []string{"2016-1", "p2016-1"}},
		{"Arena", []string{"002-ABC", "001-XYZ", "001-ABC"}, []string{"001-ABC", "001-XYZ", "002-ABC"}},
		{"List", []string{"MH1-12", "KTK-3a", "KTK-3"}, []string{"KTK-3", "KTK-3a", "MH1-12"}},
		{"Dialect Priority", []string{"KTK-3", "001-ABC", "2016-1", "99"}, []string{"99", "2016-1", "001-ABC", "KTK-3"}},
		{"Unrecognized Last", []string{"??", "5", "!!"}, []string{"5", "!!", "??"}},
	}

	c := Default(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := append([]string(nil), tt.input...)
			c.Sort(got)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecognize(t *testing.T) {
	c := Default(zap.NewNop())
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"123", "ordinary", true},
		{"2019-3", "year_promo", true},
		{"010-WAR", "arena", true},
		{"PLST-45", "list", true},
		{"A-B", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := c.Recognize(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestUnrecognizedWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := Default(zap.New(core))

	assert.Negative(t, c.Compare("a-b", "c-d"))
	assert.Equal(t, 1, logs.Len())

	// Recognized pairs never warn
	assert.Negative(t, c.Compare("1", "2"))
	assert.Equal(t, 1, logs.Len())
}

type evenDialect struct{}

func (evenDialect) Name() string { return "even" }

func (evenDialect) Parse(s string) (Key, bool) {
	if s == "even" {
		return ordinaryKey{}, true
	}
	return nil, false
}

func TestPluggableDialect(t *testing.T) {
	c := New(zap.NewNop(), append(DefaultDialects(), evenDialect{})...)
	assert.Len(t, c.Dialects(), 5)

	name, ok := c.Recognize("even")
	assert.True(t, ok)
	assert.Equal(t, "even", name)

	got := []string{"zzz", "even", "1"}
	c.Sort(got)
	assert.Equal(t, []string{"1", "even", "zzz"}, got)
}
