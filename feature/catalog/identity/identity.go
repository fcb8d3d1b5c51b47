// Package identity derives the stable identities of cards, faces and printings
// from raw record content.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"card-catalog/feature/catalog/source"

	"github.com/google/uuid"
)

// ErrMissingIdentity is returned when no identity can be derived from a record.
var ErrMissingIdentity = errors.New("missing derivable identity")

// FaceSeparator joins the per-face blocks of a multi-face card identity.
const FaceSeparator = "\n\n//\n\n"

var (
	cardSpace = uuid.MustParse("6f1b0a38-3c0e-4f43-9a5e-5d0cde5a7a10")
	faceSpace = uuid.MustParse("b4f7e6a2-91d3-4c8b-8f2e-0a3a5d6c1e22")
)

func block(f source.RecordFace) string {
	return f.Name + "\n" + f.OracleText
}

// CardID hashes the name and rules text of a card's defining faces, in the
// order given. Printing-level fields never contribute.
func CardID(faces ...source.RecordFace) (uuid.UUID, error) {
	if len(faces) == 0 {
		return uuid.Nil, fmt.Errorf("%w: no faces", ErrMissingIdentity)
	}

	blocks := make([]string, len(faces))
	for i, f := range faces {
		if strings.TrimSpace(f.Name) == "" {
			return uuid.Nil, fmt.Errorf("%w: face %d has no name", ErrMissingIdentity, i)
		}
		blocks[i] = block(f)
	}
	return uuid.NewMD5(cardSpace, []byte(strings.Join(blocks, FaceSeparator))), nil
}

// RecordCardID computes the card identity of a record from all of its faces.
func RecordCardID(rec *source.Record) (uuid.UUID, error) {
	if strings.TrimSpace(rec.Name) == "" {
		return uuid.Nil, fmt.Errorf("%w: record %s has no name", ErrMissingIdentity, rec.ID)
	}
	return CardID(rec.Faces()...)
}

// FaceID identifies one face. The source's oracle id is preferred; when a
// record has several faces sharing one oracle id, the face name is folded in.
// Without an oracle id the face falls back to a hash of its name and text.
func FaceID(f source.RecordFace, multiFace bool) (uuid.UUID, error) {
	if f.OracleID != "" {
		if !multiFace {
			if id, err := uuid.Parse(f.OracleID); err == nil {
				return id, nil
			}
			return uuid.NewMD5(faceSpace, []byte(f.OracleID)), nil
		}
		if strings.TrimSpace(f.Name) == "" {
			return uuid.Nil, fmt.Errorf("%w: unnamed face of oracle %s", ErrMissingIdentity, f.OracleID)
		}
		return uuid.NewMD5(faceSpace, []byte(f.OracleID+"\n"+f.Name)), nil
	}

	if strings.TrimSpace(f.Name) == "" {
		return uuid.Nil, fmt.Errorf("%w: face has neither oracle id nor name", ErrMissingIdentity)
	}
	return uuid.NewMD5(faceSpace, []byte(block(f))), nil
}

// PrintingID returns the external identifier of a printing.
func PrintingID(rec *source.Record) (string, error) {
	if strings.TrimSpace(rec.ID) == "" {
		return "", fmt.Errorf("%w: record %q has no id", ErrMissingIdentity, rec.Name)
	}
	return rec.ID, nil
}
