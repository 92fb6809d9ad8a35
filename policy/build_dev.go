//go:build slotsave_dev

package policy

const compiledBuild = BuildDev
