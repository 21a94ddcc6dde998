package controlkit

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-controlkit/pkg/manifest"
	"github.com/goliatone/go-controlkit/pkg/source"
)

func TestLoadManifest_File(t *testing.T) {
	src := source.FromFile(filepath.Join("pkg", "manifest", "testdata", "ControlManifest.Input.xml"))
	control, err := LoadManifest(context.Background(), src)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if control.Key() != "Acme.Controls.OptionSetPicker" {
		t.Fatalf("unexpected key %q", control.Key())
	}
	binding, ok := control.BindingProperty()
	if !ok || binding.Name != "value" {
		t.Fatalf("expected value to be the binding property")
	}
}

func TestLoadManifest_FS(t *testing.T) {
	files := fstest.MapFS{
		"broken.xml": {Data: []byte(`<control><property name="x" usage="input"/></control>`)},
		"ok.xml":     {Data: []byte(`<control namespace="A" constructor="B"/>`)},
	}
	opts := []Option{WithLoaderOptions(source.WithFileSystem(files))}

	control, err := LoadManifest(context.Background(), source.FromFS("ok.xml"), opts...)
	if err != nil {
		t.Fatalf("load manifest: %v", err)
	}
	if control.Key() != "A.B" {
		t.Fatalf("unexpected key %q", control.Key())
	}

	_, err = LoadManifest(context.Background(), source.FromFS("broken.xml"), opts...)
	if !errors.Is(err, manifest.ErrMissingAttribute) {
		t.Fatalf("expected missing attribute error, got %v", err)
	}

	_, err = LoadManifest(context.Background(), source.FromFS("missing.xml"), opts...)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadManifest_NilSource(t *testing.T) {
	if _, err := LoadManifest(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestLoadSnapshot_ShouldRender(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join("pkg", "changes", "testdata")

	before, err := LoadSnapshot(ctx, source.FromFile(filepath.Join(dir, "before.json")))
	if err != nil {
		t.Fatalf("load before: %v", err)
	}
	after, err := LoadSnapshot(ctx, source.FromFile(filepath.Join(dir, "after.yaml")))
	if err != nil {
		t.Fatalf("load after: %v", err)
	}
	loading, err := LoadSnapshot(ctx, source.FromFile(filepath.Join(dir, "loading.yaml")))
	if err != nil {
		t.Fatalf("load loading: %v", err)
	}

	if ShouldRender(before, after) {
		t.Fatalf("notification details alone should not trigger a render")
	}
	if !ShouldRender(before, loading) {
		t.Fatalf("loading transition should trigger a render")
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	if _, err := fs.ReadFile(EmbeddedTemplates(), "control.tpl"); err != nil {
		t.Fatalf("expected embedded report template: %v", err)
	}
}
