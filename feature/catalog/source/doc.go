// Package source defines the raw card-printing records consumed by the catalog
// and the RecordSource implementations that stream them.
//
// Field names follow the public bulk-data schema of the reference dataset.
// Enumerated fields (layout, rarity, legality, format, frame, color, set type,
// part component) decode leniently: values are compared case-insensitively
// with underscores ignored, and anything unknown degrades to the type's
// Unrecognized sentinel after a one-time warning through the global zap logger.
package source
