//go:build slotsave_nofull

package codec

import "fmt"

// unavailableCodec stands in for the full codec when it is compiled out.
type unavailableCodec struct{}

func newFullCodec() Codec {
	return unavailableCodec{}
}

func fullAvailable() bool { return false }

func (unavailableCodec) Kind() Kind { return KindFull }

func (unavailableCodec) Encode(any) (string, error) {
	return "", errFullUnavailable()
}

func (unavailableCodec) Decode(string, any) error {
	return errFullUnavailable()
}

func errFullUnavailable() error {
	return fmt.Errorf("%w: %s codec is not part of this build (built with slotsave_nofull)", ErrCodecUnavailable, KindFull)
}
