// Package collector orders collector numbers across the formatting dialects
// seen in real sets.
//
// A Comparator holds an ordered list of Dialects. Each number is parsed by the
// first dialect that recognizes it; two numbers of the same dialect compare by
// that dialect's key, numbers of different dialects compare by dialect
// position, and a recognized number always sorts before an unrecognized one.
// When neither number is recognized the comparator falls back to plain string
// order and logs a warning.
//
// The built-in dialects, in priority order:
//
//	Ordinary   "12", "12a", "S12", "*12" (prefix, number, suffix)
//	YearPromo  "2016-1", "p2016-1"      (year, number, unmarked first)
//	Arena      "001-GRN"                (number, code)
//	List       "MH1-12a"                (set code, then ordinary)
//
// New dialects can be appended without touching the existing ones.
package collector
