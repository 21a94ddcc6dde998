package enumoptions

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/goliatone/go-controlkit/pkg/manifest"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux and chi.Router.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPath returns the route for property under basePath.
func MountPath(basePath, property string, fns ...OptionFn) string {
	return mountPath(basePath, NewOptions(fns...), property)
}

// RegisterRoutes mounts one handler per Enum input property of control and
// returns the registered patterns in document order.
func RegisterRoutes(mux Mux, basePath string, control *manifest.Control, fns ...OptionFn) ([]string, error) {
	return RegisterRoutesWithOptions(mux, basePath, control, NewOptions(fns...))
}

// RegisterRoutesWithOptions is RegisterRoutes with a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, control *manifest.Control, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("enumoptions: missing mux")
	}
	if control == nil {
		return nil, fmt.Errorf("enumoptions: missing control")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	var patterns []string
	for _, prop := range control.InputProperties() {
		if !prop.IsEnum() {
			continue
		}
		pattern := mountPath(basePath, opts, prop.Name)
		mux.Handle(pattern, HandlerWithOptions(prop, opts))
		patterns = append(patterns, pattern)
	}
	return patterns, nil
}

func mountPath(basePath string, opts Options, property string) string {
	routePath := joinPath(opts.RoutePrefix, property, opts.RouteSuffix)

	basePath = strings.TrimSpace(basePath)
	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return strings.TrimRight(basePath, "/") + routePath
}

func joinPath(parts ...string) string {
	var b strings.Builder
	for _, part := range parts {
		part = strings.Trim(strings.TrimSpace(part), "/")
		if part == "" {
			continue
		}
		b.WriteString("/")
		b.WriteString(part)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
