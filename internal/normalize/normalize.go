// Package normalize is the single canonicalization choke point for submitted
// content. Storage-time and verification-time hashing must both go through
// Normalize so that equivalent submissions produce identical canonical bytes.
package normalize

import (
	"encoding/base64"
	"errors"
	"regexp"
	"strings"
)

// Kind classifies the submission for the stored input_type field.
// It never influences how the canonical bytes are hashed.
type Kind string

const (
	KindText   Kind = "text"
	KindBase64 Kind = "base64"
)

var ErrEmptyContent = errors.New("content is empty")

var dataURIPattern = regexp.MustCompile(`^data:[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*/[a-zA-Z0-9][a-zA-Z0-9!#$&^_.+-]*;base64,`)

// Input is a tagged variant decided once at the service boundary:
// submitted text, or a raw uploaded byte buffer that bypasses text detection.
type Input struct {
	text   string
	bytes  []byte
	binary bool
}

func TextInput(s string) Input {
	return Input{text: s}
}

func BinaryInput(b []byte) Input {
	return Input{bytes: b, binary: true}
}

// Empty reports whether the input carries no content at all.
// Whitespace-only text is not empty.
func (in Input) Empty() bool {
	if in.binary {
		return len(in.bytes) == 0
	}
	return in.text == ""
}

type Canonical struct {
	Bytes []byte
	Kind  Kind
}

// Normalize converts raw submitted content into the canonical form used for
// hashing. Text handling, in order:
//
//  1. data-URI ("data:<mime>;base64,<payload>"): the prefix is stripped and
//     the bare payload is the canonical content;
//  2. a string that round-trips base64 decode/encode unchanged is kept as-is
//     and classified base64;
//  3. anything else is plain text, trimmed of surrounding whitespace.
//
// A stripped payload no longer matches the data-URI pattern, so a second pass
// leaves it unchanged. A payload that is itself cleanly decodable base64 gets
// re-classified by rule 2, which keeps the bytes identical either way.
func Normalize(in Input) (*Canonical, error) {
	if in.Empty() {
		return nil, ErrEmptyContent
	}

	if in.binary {
		return &Canonical{Bytes: in.bytes, Kind: KindBase64}, nil
	}

	if loc := dataURIPattern.FindStringIndex(in.text); loc != nil {
		return &Canonical{Bytes: []byte(in.text[loc[1]:]), Kind: KindBase64}, nil
	}

	if roundTripsBase64(in.text) {
		return &Canonical{Bytes: []byte(in.text), Kind: KindBase64}, nil
	}

	return &Canonical{Bytes: []byte(strings.TrimSpace(in.text)), Kind: KindText}, nil
}

func roundTripsBase64(s string) bool {
	decoded, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return false
	}
	return base64.StdEncoding.EncodeToString(decoded) == s
}
