// Package saver keeps one global save object and any number of named profile
// objects in memory and mirrors them to files in the saves directory.
//
// # Loading
//
// Save and Profile return the cached value when there is one. Otherwise the
// slot file is read, de-obfuscated and decoded. A missing, unreadable or
// corrupt file is never an error: a fresh default value is created, written
// out immediately and cached.
//
// # Writing
//
// SaveChanged and SaveProfile encode the cached value, obfuscate it when the
// current execution context calls for a key, and replace the slot file.
//
// # Defaults and callbacks
//
// A default value is new(T). When *T implements Defaulter, SetDefaults is
// called on it. When *T implements Receiver, BeforeSerialize runs before every
// write and AfterDeserialize after every load.
//
// # Thread Safety
//
// A Saver is meant to be driven from a single goroutine (typically the
// application's main loop). It does no locking; concurrent calls must be
// serialised by the caller.
package saver

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/yoanbernabeu/slotsave/codec"
	"github.com/yoanbernabeu/slotsave/config"
	"github.com/yoanbernabeu/slotsave/metrics"
	"github.com/yoanbernabeu/slotsave/policy"
	"github.com/yoanbernabeu/slotsave/store"
)

var (
	// ErrProfileNotLoaded is returned by SaveProfile for a name that was never
	// requested through Profile.
	ErrProfileNotLoaded = errors.New("profile not loaded")
	// ErrInvalidProfileName is returned for empty names or names containing a
	// path separator.
	ErrInvalidProfileName = errors.New("invalid profile name")
	// ErrInvalidTextureName is the texture and blob counterpart of
	// ErrInvalidProfileName.
	ErrInvalidTextureName = errors.New("invalid texture name")
)

// Receiver is implemented by save and profile types that need to prepare
// themselves around serialization.
type Receiver interface {
	BeforeSerialize()
	AfterDeserialize()
}

// Defaulter is implemented by save and profile types whose default value is
// not the zero value.
type Defaulter interface {
	SetDefaults()
}

// Saver owns the resident save of type S and the resident profiles of type P.
type Saver[S any, P any] struct {
	e     engine
	hooks Hooks

	save     *S
	profiles map[string]*P

	saveOverride     *Override[S]
	profileOverrides map[string]*Override[P]
}

// New builds a Saver writing under cfg.SavesFullDirectory(root). A nil cfg
// selects config.DefaultConfig.
func New[S any, P any](cfg *config.Config, root string, opts ...Option) (*Saver[S, P], error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	o := options{
		store:   store.NewDiskStore(),
		context: policy.Detect,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	c, err := codec.New(cfg.Codec)
	if err != nil {
		return nil, err
	}

	return &Saver[S, P]{
		e: engine{
			cfg:     cfg,
			dir:     cfg.SavesFullDirectory(root),
			codec:   c,
			store:   o.store,
			context: o.context,
			logger:  o.logger,
			metrics: o.metrics,
		},
		hooks:            o.hooks,
		profiles:         make(map[string]*P),
		profileOverrides: make(map[string]*Override[P]),
	}, nil
}

// Config returns the settings the saver was built with.
func (s *Saver[S, P]) Config() *config.Config { return s.e.cfg }

// Dir returns the saves directory.
func (s *Saver[S, P]) Dir() string { return s.e.dir }

// SavePath returns the full path of the save file.
func (s *Saver[S, P]) SavePath() string {
	return filepath.Join(s.e.dir, s.e.cfg.SaveFileName())
}

// ProfilePath returns the full path of the named profile file.
func (s *Saver[S, P]) ProfilePath(name string) string {
	return filepath.Join(s.e.dir, s.e.cfg.ProfileFileName(name))
}

// Save returns the resident save, loading or creating it on first use.
func (s *Saver[S, P]) Save() (*S, error) {
	if s.save != nil {
		return s.save, nil
	}

	call(s.hooks.BeforeLoadSave)
	v, err := loadOrDefault(&s.e, s.saveSlot())
	if err != nil {
		return nil, err
	}
	s.save = v
	call(s.hooks.SaveLoaded)

	return v, nil
}

// SaveChanged writes the resident save to its slot. The save is loaded first
// if it was never requested.
func (s *Saver[S, P]) SaveChanged() error {
	v, err := s.Save()
	if err != nil {
		return err
	}

	call(s.hooks.BeforeWriteSave)
	if err := persist(&s.e, s.saveSlot(), v); err != nil {
		return err
	}
	call(s.hooks.SaveWritten)

	return nil
}

// Profile returns the resident profile called name, loading or creating it on
// first use. Names are case-sensitive.
func (s *Saver[S, P]) Profile(name string) (*P, error) {
	if err := checkProfileName(name); err != nil {
		return nil, err
	}
	if v, ok := s.profiles[name]; ok {
		return v, nil
	}

	callNamed(s.hooks.BeforeLoadProfile, name)
	v, err := loadOrDefault(&s.e, s.profileSlot(name))
	if err != nil {
		return nil, err
	}
	s.profiles[name] = v
	callNamed(s.hooks.ProfileLoaded, name)

	return v, nil
}

// DefaultProfile returns the profile named by the DefaultProfileName setting.
func (s *Saver[S, P]) DefaultProfile() (*P, error) {
	return s.Profile(s.e.cfg.DefaultProfileName)
}

// SaveProfile writes the resident profile called name to its slot.
func (s *Saver[S, P]) SaveProfile(name string) error {
	v, ok := s.profiles[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrProfileNotLoaded, name)
	}

	callNamed(s.hooks.BeforeWriteProfile, name)
	if err := persist(&s.e, s.profileSlot(name), v); err != nil {
		return err
	}
	callNamed(s.hooks.ProfileWritten, name)

	return nil
}

// ProfileNames returns the names of the resident profiles, sorted.
func (s *Saver[S, P]) ProfileNames() []string {
	names := make([]string, 0, len(s.profiles))
	for name := range s.profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeleteAllSaves removes every file in the saves directory (not recursing into
// subdirectories), then replaces each resident slot with a fresh default and
// writes it back. Reset values go through the same callbacks as defaults
// created on load: BeforeSerialize, then AfterDeserialize.
//
// Only resident slots are rewritten. Unlike a wipe that always rewrites the
// save file, a save that was never requested is left absent and gets its
// default on first access as usual. This cannot be undone.
func (s *Saver[S, P]) DeleteAllSaves() error {
	if err := s.e.store.RemoveAll(s.e.dir); err != nil {
		return fmt.Errorf("failed to delete saves: %w", err)
	}
	s.e.metrics.Wipe()
	s.e.logger.Info("saver: deleted all saves", "dir", s.e.dir)

	for _, name := range s.ProfileNames() {
		s.profiles[name] = newDefault[P]()
		if err := s.SaveProfile(name); err != nil {
			return err
		}
		afterLoad(s.profiles[name])
	}

	if s.save != nil {
		s.save = newDefault[S]()
		if err := s.SaveChanged(); err != nil {
			return err
		}
		afterLoad(s.save)
	}

	call(s.hooks.SavesDeleted)
	return nil
}

func (s *Saver[S, P]) saveSlot() slot[S] {
	return slot[S]{
		kind:     metrics.SlotSave,
		file:     s.e.cfg.SaveFileName(),
		override: s.saveOverride,
	}
}

func (s *Saver[S, P]) profileSlot(name string) slot[P] {
	return slot[P]{
		kind:     metrics.SlotProfile,
		name:     name,
		file:     s.e.cfg.ProfileFileName(name),
		override: s.profileOverrides[name],
	}
}

// validName reports whether name can be used as part of a file name in the
// saves directory without escaping it.
func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, `/\`)
}

func checkProfileName(name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidProfileName, name)
	}
	return nil
}

func checkTextureName(name string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidTextureName, name)
	}
	return nil
}

func newDefault[T any]() *T {
	v := new(T)
	if d, ok := any(v).(Defaulter); ok {
		d.SetDefaults()
	}
	return v
}
