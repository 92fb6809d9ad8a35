package saver

// Hooks are lifecycle callbacks. Every field is optional.
//
// Load hooks fire only when a slot is actually loaded, not on cache hits.
// Write hooks fire around SaveChanged and SaveProfile, not around the
// automatic write of a freshly created default.
type Hooks struct {
	BeforeLoadSave  func()
	SaveLoaded      func()
	BeforeWriteSave func()
	SaveWritten     func()

	BeforeLoadProfile  func(name string)
	ProfileLoaded      func(name string)
	BeforeWriteProfile func(name string)
	ProfileWritten     func(name string)

	// SavesDeleted fires at the end of DeleteAllSaves.
	SavesDeleted func()
}

func call(f func()) {
	if f != nil {
		f()
	}
}

func callNamed(f func(string), name string) {
	if f != nil {
		f(name)
	}
}
