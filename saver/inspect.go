package saver

import (
	"fmt"

	"github.com/yoanbernabeu/slotsave/codec"
	"github.com/yoanbernabeu/slotsave/obfuscate"
	"github.com/yoanbernabeu/slotsave/policy"
)

// Files lists the files currently in the saves directory.
func (s *Saver[S, P]) Files() ([]string, error) {
	return s.e.store.List(s.e.dir)
}

// Peek decodes the slot file called fileName into a generic value without
// touching the resident save or profiles and without writing anything.
// found is false when the file does not exist. Unlike loads, decode failures
// are returned.
func (s *Saver[S, P]) Peek(fileName string) (value any, found bool, err error) {
	if !codec.Available(s.e.codec.Kind()) {
		return nil, false, fmt.Errorf("%w: %s", codec.ErrCodecUnavailable, s.e.codec.Kind())
	}

	text, found, err := s.e.store.ReadText(s.e.dir, fileName)
	if err != nil || !found {
		return nil, found, err
	}

	if key := policy.EffectiveKey(s.e.context(), s.e.cfg.Encryption); key != 0 {
		text = obfuscate.Transform(text, key)
	}

	if err := s.e.codec.Decode(text, &value); err != nil {
		return nil, true, fmt.Errorf("failed to decode %s: %w", fileName, err)
	}
	return value, true, nil
}
