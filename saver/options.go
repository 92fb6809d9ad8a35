package saver

import (
	"log/slog"

	"github.com/yoanbernabeu/slotsave/metrics"
	"github.com/yoanbernabeu/slotsave/policy"
	"github.com/yoanbernabeu/slotsave/store"
)

type options struct {
	store   store.FileStore
	context policy.Provider
	logger  *slog.Logger
	metrics *metrics.Metrics
	hooks   Hooks
}

// Option configures a Saver.
type Option func(*options)

// WithStore replaces the filesystem store.
func WithStore(fs store.FileStore) Option {
	return func(o *options) { o.store = fs }
}

// WithContext sets the execution-context provider. It is consulted on every
// load and write. Defaults to policy.Detect.
func WithContext(p policy.Provider) Option {
	return func(o *options) { o.context = p }
}

// WithLogger sets the logger used to report decode failures and other
// recovered problems. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithMetrics records loads, writes and failures on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithHooks installs lifecycle callbacks.
func WithHooks(h Hooks) Option {
	return func(o *options) { o.hooks = h }
}
