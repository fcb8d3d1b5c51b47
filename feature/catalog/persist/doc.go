// Package persist writes a loaded catalog snapshot to a relational database.
//
// Every table is upserted inside one transaction, so a database either holds
// the previous snapshot or the complete new one. Rows are keyed by the
// catalog's own identities (card and face UUIDs, printing ids, set codes),
// which makes repeated writes of the same graph idempotent.
//
// # Tables
//
//   - catalog_sets: one row per set.
//   - catalog_cards: one row per card, legalities and color identity as JSON.
//   - catalog_card_faces: one row per (card, face slot). A meld back face
//     appears once for each part card that carries it.
//   - catalog_printings: one row per printing, with its variation ordinal.
//   - catalog_printed_faces: one row per (printing, face, side).
package persist
