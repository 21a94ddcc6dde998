package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-controlkit"
	"github.com/goliatone/go-controlkit/internal/loader"
	"github.com/goliatone/go-controlkit/pkg/changes"
	"github.com/goliatone/go-controlkit/pkg/manifest"
	"github.com/goliatone/go-controlkit/pkg/prompt"
	"github.com/goliatone/go-controlkit/pkg/report"
	"github.com/goliatone/go-controlkit/pkg/source"
)

func (a *app) loadOptions() []controlkit.Option {
	return []controlkit.Option{
		controlkit.WithLogger(a.logger),
		controlkit.WithLoaderOptions(a.cfg.Loader.LoaderOptions()...),
	}
}

func (a *app) loadManifest(ctx context.Context, raw string) (*manifest.Control, error) {
	src, err := parseSource(raw)
	if err != nil {
		return nil, err
	}
	return controlkit.LoadManifest(ctx, src, a.loadOptions()...)
}

func (a *app) loadSnapshot(ctx context.Context, raw string) (*changes.Snapshot, error) {
	src, err := parseSource(raw)
	if err != nil {
		return nil, err
	}
	return controlkit.LoadSnapshot(ctx, src, a.loadOptions()...)
}

func (a *app) describe(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("describe <manifest>")
	}
	control, err := a.loadManifest(ctx, args[0])
	if err != nil {
		return err
	}
	engine, err := report.New()
	if err != nil {
		return err
	}
	return engine.Render(a.stdout, control)
}

func (a *app) validate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("validate <manifest> <params.json>")
	}
	control, err := a.loadManifest(ctx, args[0])
	if err != nil {
		return err
	}

	src, err := parseSource(args[1])
	if err != nil {
		return err
	}
	doc, err := loader.New(source.NewLoaderOptions(a.cfg.Loader.LoaderOptions()...), a.logger).Load(ctx, src)
	if err != nil {
		return err
	}
	var params map[string]any
	if err := json.Unmarshal(doc.Raw(), &params); err != nil {
		return fmt.Errorf("decode parameters %s: %w", doc.Location(), err)
	}

	if err := control.ValidateParameters(params); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s: %d parameter(s) valid for %s\n", doc.Location(), len(params), control.Key())
	return nil
}

func (a *app) params(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usageError("params <manifest>")
	}
	control, err := a.loadManifest(ctx, args[0])
	if err != nil {
		return err
	}

	collector := prompt.NewCollector(
		prompt.WithDriver(a.driver),
		prompt.WithLogger(a.logger),
	)
	values, err := collector.Collect(ctx, control)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, string(out))
	return nil
}

func (a *app) diff(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usageError("diff <prev> <next>")
	}
	prev, err := a.loadSnapshot(ctx, args[0])
	if err != nil {
		return err
	}
	next, err := a.loadSnapshot(ctx, args[1])
	if err != nil {
		return err
	}

	detector := changes.NewDetector(changes.WithLogger(a.logger))
	if !detector.ShouldRender(prev, next) {
		fmt.Fprintln(a.stdout, "render: false")
		return nil
	}

	fields := changes.Changes(prev, next)
	names := make([]string, len(fields))
	for i, field := range fields {
		names[i] = string(field)
	}
	fmt.Fprintf(a.stdout, "render: true\nchanged: %s\n", strings.Join(names, ", "))
	return nil
}
