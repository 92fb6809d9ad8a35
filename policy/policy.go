// Package policy derives execution-context dependent decisions: which
// obfuscation key applies and whether in-memory overrides replace disk
// storage. Every function here is pure in its arguments.
package policy

import (
	"os"
	"strconv"
	"strings"

	"github.com/yoanbernabeu/slotsave/config"
)

const (
	// EnvBuild forces the build type: "dev" or "release".
	EnvBuild = "SLOTSAVE_BUILD"
	// EnvInteractive marks the process as an interactive editing session.
	EnvInteractive = "SLOTSAVE_INTERACTIVE"
)

// BuildType is the kind of binary that is running.
type BuildType int

const (
	BuildRelease BuildType = iota
	BuildDev
)

func (b BuildType) String() string {
	switch b {
	case BuildRelease:
		return "release"
	case BuildDev:
		return "dev"
	default:
		return "unknown"
	}
}

// Context describes where the saver runs.
type Context struct {
	Build BuildType
	// Interactive is true inside an editor or other tooling session.
	Interactive bool
}

// DevLike reports whether the context counts as a development build.
// Interactive sessions always do.
func (c Context) DevLike() bool {
	return c.Build == BuildDev || c.Interactive
}

// Provider returns the current context. The saver calls it on every load and
// persist instead of caching the answer.
type Provider func() Context

// Static returns a Provider that always yields ctx.
func Static(ctx Context) Provider {
	return func() Context { return ctx }
}

// EffectiveKey returns the obfuscation key for ctx, or 0 when obfuscation is off.
func EffectiveKey(ctx Context, enc config.Encryption) int32 {
	if ctx.DevLike() {
		if !enc.InDevBuilds {
			return 0
		}
	} else if !enc.InRelease {
		return 0
	}
	return enc.Key
}

// OverrideActive reports whether an override bound to a slot replaces disk
// storage. Overrides only ever apply to interactive sessions.
func OverrideActive(ctx Context, bound bool) bool {
	return bound && ctx.Interactive
}

// Detect builds the context of the running process: the build type comes from
// the slotsave_dev build tag unless SLOTSAVE_BUILD says otherwise, and
// SLOTSAVE_INTERACTIVE marks an interactive session.
func Detect() Context {
	ctx := Context{Build: compiledBuild}

	switch strings.ToLower(os.Getenv(EnvBuild)) {
	case "dev", "debug", "development":
		ctx.Build = BuildDev
	case "release":
		ctx.Build = BuildRelease
	}

	if v, err := strconv.ParseBool(os.Getenv(EnvInteractive)); err == nil {
		ctx.Interactive = v
	}
	return ctx
}
