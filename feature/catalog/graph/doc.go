// Package graph holds the canonical catalog: Cards, their Faces, their
// Printings and the Sets those printings belong to.
//
// Every entity lives in a registry keyed by its identity, and every mutation
// goes through an idempotent get-or-create operation on Graph. Invoking an
// operation again with an identity that already exists returns the stored
// instance untouched, so records may be processed redundantly, out of order,
// or concurrently by many workers.
//
// # Faces
//
// A Face is a tagged variant: its Kind says which side of the card it is and
// the per-kind payload carries the relations. A flipped face points at the
// upright face it rotates from; a front face lists the faces it transforms
// into. Faces are stored globally by FaceID and attached to a card under a
// FaceKey slot, which lets two cards share one face instance (meld results).
//
// # Printings
//
// A Printing belongs to one Card and one Set and shows one PrintedFace per
// physical face. AddPrintedFace is what publishes a printing into its set's
// indexes.
package graph
