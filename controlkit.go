// Package controlkit loads custom control manifests and decides when a
// control's host snapshot warrants a re-render.
//
// The root package wires the loader, parser and detector together; the
// individual pieces live under pkg/.
package controlkit

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-controlkit/internal/loader"
	"github.com/goliatone/go-controlkit/pkg/changes"
	"github.com/goliatone/go-controlkit/pkg/manifest"
	"github.com/goliatone/go-controlkit/pkg/report"
	"github.com/goliatone/go-controlkit/pkg/source"
)

// Control aliases manifest.Control for callers that only import the root
// package.
type Control = manifest.Control

// Snapshot aliases changes.Snapshot.
type Snapshot = changes.Snapshot

// Option configures the load helpers.
type Option func(*options)

type options struct {
	loader     source.Loader
	loaderOpts []source.LoaderOption
	logger     logr.Logger
}

// WithLoader replaces the default loader.
func WithLoader(l source.Loader) Option {
	return func(o *options) {
		o.loader = l
	}
}

// WithLoaderOptions configures the default loader. Ignored when WithLoader
// supplies one.
func WithLoaderOptions(opts ...source.LoaderOption) Option {
	return func(o *options) {
		o.loaderOpts = append(o.loaderOpts, opts...)
	}
}

// WithLogger attaches a logger to the loader and parser.
func WithLogger(logger logr.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func newOptions(opts []Option) *options {
	o := &options{logger: logr.Discard()}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.loader == nil {
		o.loader = loader.New(source.NewLoaderOptions(o.loaderOpts...), o.logger)
	}
	return o
}

// NewLoader constructs a loader using the internal implementation while keeping
// the concrete type hidden from consumers.
func NewLoader(opts ...source.LoaderOption) source.Loader {
	return loader.New(source.NewLoaderOptions(opts...), logr.Discard())
}

// LoadManifest fetches src and parses it as a control manifest.
func LoadManifest(ctx context.Context, src source.Source, opts ...Option) (*Control, error) {
	if src == nil {
		return nil, errors.New("controlkit: source is nil")
	}
	o := newOptions(opts)

	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("controlkit: load manifest: %w", err)
	}
	control, err := manifest.NewParser(manifest.WithLogger(o.logger)).Parse(doc.Raw())
	if err != nil {
		return nil, fmt.Errorf("controlkit: %s: %w", doc.Location(), err)
	}
	return control, nil
}

// LoadSnapshot fetches src and decodes it as a JSON or YAML snapshot, picking
// the format from the location's extension.
func LoadSnapshot(ctx context.Context, src source.Source, opts ...Option) (*Snapshot, error) {
	if src == nil {
		return nil, errors.New("controlkit: source is nil")
	}
	o := newOptions(opts)

	doc, err := o.loader.Load(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("controlkit: load snapshot: %w", err)
	}
	snapshot, err := changes.DecodeDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("controlkit: %w", err)
	}
	return snapshot, nil
}

// ShouldRender reports whether next differs from prev in any field that
// affects rendering.
func ShouldRender(prev, next *Snapshot) bool {
	return !changes.IsEqual(prev, next)
}

// EmbeddedTemplates exposes the built-in report templates so callers can
// reuse or extend them without importing the report package directly.
func EmbeddedTemplates() fs.FS {
	return report.Templates()
}
