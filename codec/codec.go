// Package codec converts save objects to and from their JSON text form.
//
// Two interchangeable variants exist behind the same Codec contract:
//
//   - minimal: the standard reflective encoder (encoding/json)
//   - full:    a general-purpose encoder (json-iterator) that sorts map keys
//     and keeps numbers inside untyped fields exact
//
// The full variant can be compiled out with the slotsave_nofull build tag.
// In that case New still returns a codec, but every call on it fails with
// ErrCodecUnavailable.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

// Kind selects a codec variant. It is stored as-is in the settings file.
type Kind string

const (
	KindMinimal Kind = "minimal"
	KindFull    Kind = "full"
)

var (
	// ErrDecode is returned for malformed or wrongly keyed text.
	ErrDecode = errors.New("decode failed")
	// ErrEmptyDocument is returned when the text holds no value (empty or null).
	ErrEmptyDocument = fmt.Errorf("%w: empty document", ErrDecode)
	// ErrEncode is returned when a value cannot be represented as JSON.
	ErrEncode = errors.New("encode failed")
	// ErrCodecUnavailable is returned by every call on a codec that was not
	// compiled into the current build.
	ErrCodecUnavailable = errors.New("codec unavailable")
	// ErrUnknownKind is returned by New for kinds outside the closed set.
	ErrUnknownKind = errors.New("unknown codec kind")
)

// Codec encodes a value graph to text and decodes text back into a value.
type Codec interface {
	// Encode returns the JSON text for v.
	Encode(v any) (string, error)
	// Decode fills v (a non-nil pointer) from text. Any failure wraps ErrDecode
	// or ErrCodecUnavailable; Decode never panics.
	Decode(text string, v any) error
	// Kind reports the variant.
	Kind() Kind
}

// Kinds returns every known codec kind.
func Kinds() []Kind {
	return []Kind{KindMinimal, KindFull}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k == KindMinimal || k == KindFull
}

// Available reports whether the variant is compiled into this build.
func Available(k Kind) bool {
	switch k {
	case KindMinimal:
		return true
	case KindFull:
		return fullAvailable()
	default:
		return false
	}
}

// New returns the codec for kind. An empty kind selects the minimal codec.
func New(kind Kind) (Codec, error) {
	switch kind {
	case KindMinimal, "":
		return minimalCodec{}, nil
	case KindFull:
		return newFullCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// isEmptyDocument reports whether text carries no value at all.
func isEmptyDocument(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == "null"
}

// guardDecode turns a panic raised by the underlying library into ErrDecode.
func guardDecode(kind Kind, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %s codec: %v", ErrDecode, kind, r)
	}
}
