package enumoptions

import (
	"net/http"

	"github.com/goliatone/go-controlkit/pkg/manifest"
)

// Component binds a control to its option handlers and routing helpers.
type Component struct {
	control *manifest.Control
	opts    Options
}

// New constructs a component for control with default options plus any
// overrides.
func New(control *manifest.Control, fns ...OptionFn) *Component {
	return &Component{control: control, opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the handler for the named property. Unknown or non-Enum
// properties get a handler that answers 404.
func (c *Component) Handler(property string) http.Handler {
	if c == nil || c.control == nil {
		return HandlerWithOptions(nil, DefaultOptions())
	}
	prop, _ := c.control.Property(property)
	return HandlerWithOptions(prop, c.opts)
}

// RegisterRoutes registers every Enum property handler under basePath.
func (c *Component) RegisterRoutes(mux Mux, basePath string) ([]string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath, nil)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.control, c.opts)
}
