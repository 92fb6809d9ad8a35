package saver

// Override is an in-memory slot that stands in for a save or profile file
// during interactive sessions, letting tooling feed hand-made state to the
// application. Outside an interactive context a bound override is ignored.
type Override[T any] struct {
	// Value is returned by loads. A nil Value behaves like a missing file.
	Value *T
	// Dirty is set by every write so the owning tool knows to persist Value.
	Dirty bool
}

// BindSaveOverride routes the save slot through o while the context is
// interactive. A nil o removes the binding.
func (s *Saver[S, P]) BindSaveOverride(o *Override[S]) {
	s.saveOverride = o
}

// BindProfileOverride routes the named profile slot through o while the
// context is interactive. A nil o removes the binding.
func (s *Saver[S, P]) BindProfileOverride(name string, o *Override[P]) {
	if o == nil {
		delete(s.profileOverrides, name)
		return
	}
	s.profileOverrides[name] = o
}
