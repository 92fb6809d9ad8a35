//go:build !slotsave_nofull

package codec

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var fullAPI = jsoniter.Config{
	EscapeHTML:             false,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

type fullCodec struct {
	api jsoniter.API
}

func newFullCodec() Codec {
	return fullCodec{api: fullAPI}
}

func fullAvailable() bool { return true }

func (fullCodec) Kind() Kind { return KindFull }

func (c fullCodec) Encode(v any) (string, error) {
	text, err := c.api.MarshalToString(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return text, nil
}

func (c fullCodec) Decode(text string, v any) (err error) {
	defer guardDecode(c.Kind(), &err)

	if isEmptyDocument(text) {
		return ErrEmptyDocument
	}
	if err := c.api.UnmarshalFromString(text, v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
