package saver

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/yoanbernabeu/slotsave/codec"
	"github.com/yoanbernabeu/slotsave/config"
	"github.com/yoanbernabeu/slotsave/metrics"
	"github.com/yoanbernabeu/slotsave/obfuscate"
	"github.com/yoanbernabeu/slotsave/policy"
	"github.com/yoanbernabeu/slotsave/store"
)

// engine is the type-independent half of a Saver.
type engine struct {
	cfg     *config.Config
	dir     string
	codec   codec.Codec
	store   store.FileStore
	context policy.Provider
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// slot identifies one persisted object.
type slot[T any] struct {
	kind     string // metrics.SlotSave or metrics.SlotProfile
	name     string // profile name, empty for the save
	file     string
	override *Override[T]
}

func (sl slot[T]) logAttrs() []any {
	if sl.name == "" {
		return []any{"slot", sl.kind, "file", sl.file}
	}
	return []any{"slot", sl.kind, "profile", sl.name, "file", sl.file}
}

// loadOrDefault produces the resident value for sl: the override value or the
// decoded file, else a fresh default that is written out straight away.
func loadOrDefault[T any](e *engine, sl slot[T]) (*T, error) {
	ctx := e.context()

	var v *T
	source := metrics.SourceFile
	if policy.OverrideActive(ctx, sl.override != nil) {
		v = sl.override.Value
		source = metrics.SourceOverride
	} else {
		v = read[T](e, ctx, sl)
	}

	if v == nil {
		v = newDefault[T]()
		source = metrics.SourceDefault
		if err := persist(e, sl, v); err != nil {
			return nil, err
		}
	}

	afterLoad(v)

	e.metrics.Load(sl.kind, source)
	return v, nil
}

// afterLoad runs AfterDeserialize when v implements Receiver.
func afterLoad[T any](v *T) {
	if r, ok := any(v).(Receiver); ok {
		r.AfterDeserialize()
	}
}

// read returns the decoded slot file, or nil when there is no usable value.
// Failures are logged here and never reach the caller.
func read[T any](e *engine, ctx policy.Context, sl slot[T]) *T {
	if !codec.Available(e.codec.Kind()) {
		e.logger.Error("saver: codec unavailable, skipping read", append(sl.logAttrs(), "codec", e.codec.Kind(), "hint", "rebuild without the slotsave_nofull tag")...)
		return nil
	}

	text, found, err := e.store.ReadText(e.dir, sl.file)
	if err != nil {
		e.logger.Warn("saver: cannot read slot file, using defaults", append(sl.logAttrs(), "err", err)...)
		return nil
	}
	if !found {
		return nil
	}

	if key := policy.EffectiveKey(ctx, e.cfg.Encryption); key != 0 {
		text = obfuscate.Transform(text, key)
	}

	// Decode over a default so fields missing from the file keep their
	// SetDefaults values.
	v := newDefault[T]()
	if err := e.codec.Decode(text, v); err != nil {
		switch {
		case errors.Is(err, codec.ErrEmptyDocument):
			e.logger.Warn("saver: slot file is empty, using defaults", sl.logAttrs()...)
		default:
			e.logger.Error("saver: decoding of slot file failed, using defaults", append(sl.logAttrs(), "err", err)...)
			e.metrics.DecodeFailure(sl.kind)
		}
		return nil
	}
	return v
}

// persist writes v to the override or to the slot file. Only directory and
// write failures are returned; an unavailable codec is logged and skipped.
func persist[T any](e *engine, sl slot[T], v *T) error {
	if r, ok := any(v).(Receiver); ok {
		r.BeforeSerialize()
	}

	ctx := e.context()
	if policy.OverrideActive(ctx, sl.override != nil) {
		sl.override.Value = v
		sl.override.Dirty = true
		e.metrics.Write(sl.kind, metrics.SourceOverride)
		return nil
	}

	text, err := e.codec.Encode(v)
	if err != nil {
		if errors.Is(err, codec.ErrCodecUnavailable) {
			e.logger.Error("saver: codec unavailable, skipping write", append(sl.logAttrs(), "err", err)...)
			return nil
		}
		return fmt.Errorf("failed to encode %s %s: %w", sl.kind, sl.file, err)
	}

	if key := policy.EffectiveKey(ctx, e.cfg.Encryption); key != 0 {
		text = obfuscate.Transform(text, key)
	}

	if err := e.store.EnsureDir(e.dir); err != nil {
		return err
	}
	if err := e.store.WriteText(e.dir, sl.file, text); err != nil {
		return err
	}

	e.metrics.Write(sl.kind, metrics.SourceFile)
	return nil
}
