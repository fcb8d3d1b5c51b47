// Package layout classifies raw records by layout and builds each class into
// the catalog graph.
//
// Classify maps a record to one of a closed set of strategies. A small table
// of name-keyed overrides is consulted before the layout tag, for cards whose
// multi-part linkage cannot be inferred from the data. Builder then turns the
// record into faces, a printing and printed faces:
//
//	Simple      one front face
//	Split       left, middle..., right faces, all main, in source order
//	Flip        front face and a flipped face sharing its mana cost and colors
//	Transform   front face and one or more transformed faces printed on the back
//	Adventure   main face and an adventure face found by its type line
//	Reversible  two independent front faces printed back to back
//	Meld        handed to a MeldHandler
//	Excluded    tokens, emblems, art cards and placeholders; skipped
package layout
