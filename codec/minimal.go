package codec

import (
	"encoding/json"
	"fmt"
)

type minimalCodec struct{}

func (minimalCodec) Kind() Kind { return KindMinimal }

func (minimalCodec) Encode(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrEncode, err)
	}
	return string(data), nil
}

func (c minimalCodec) Decode(text string, v any) (err error) {
	defer guardDecode(c.Kind(), &err)

	if isEmptyDocument(text) {
		return ErrEmptyDocument
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
