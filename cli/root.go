// Package cli implements the slotsave command-line tool: inspecting, watching
// and wiping the save files an application writes through package saver.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/yoanbernabeu/slotsave/config"
	"github.com/yoanbernabeu/slotsave/metrics"
	"github.com/yoanbernabeu/slotsave/policy"
	"github.com/yoanbernabeu/slotsave/saver"
)

var (
	rootDir     string
	rootBuild   string
	rootVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "slotsave",
	Short: "Inspect and manage application save files",
	Long: `slotsave works on the save directory of an application that persists its
state with the slotsave library: one global save file plus one file per
profile, optionally XOR-obfuscated.

The root directory defaults to <user config dir>/slotsave and can be changed
with --root or $SLOTSAVE_ROOT. Settings are read from slotsave.yaml inside it.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "Root directory (default: $SLOTSAVE_ROOT or <user config dir>/slotsave)")
	rootCmd.PersistentFlags().StringVar(&rootBuild, "build", "", "Build type whose obfuscation settings apply: dev or release (default: detected)")
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false, "Log saver diagnostics to stderr")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(pathCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(deleteAllCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(imageCmd)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// Document is the shape-agnostic value the tool loads saves and profiles into.
type Document map[string]any

func (d *Document) SetDefaults() {
	*d = Document{}
}

type documentSaver = saver.Saver[Document, Document]

func resolveRoot() (string, error) {
	if rootDir != "" {
		return rootDir, nil
	}
	return config.DefaultRoot()
}

func contextProvider() (policy.Provider, error) {
	switch strings.ToLower(rootBuild) {
	case "":
		return policy.Detect, nil
	case "dev":
		ctx := policy.Detect()
		ctx.Build = policy.BuildDev
		return policy.Static(ctx), nil
	case "release":
		ctx := policy.Detect()
		ctx.Build = policy.BuildRelease
		return policy.Static(ctx), nil
	default:
		return nil, fmt.Errorf("unknown build type %q (expected dev or release)", rootBuild)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if rootVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openSaver loads the settings under the resolved root and builds a saver on
// top of them. The returned registry holds the saver's counters.
func openSaver(opts ...saver.Option) (*documentSaver, *prometheus.Registry, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	provider, err := contextProvider()
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	opts = append([]saver.Option{
		saver.WithContext(provider),
		saver.WithLogger(newLogger()),
		saver.WithMetrics(metrics.New(reg)),
	}, opts...)

	s, err := saver.New[Document, Document](cfg, root, opts...)
	if err != nil {
		return nil, nil, err
	}
	return s, reg, nil
}
