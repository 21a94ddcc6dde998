package enumoptions

import "net/http"

type EmptySearchMode string

const (
	// EmptySearchAll returns every value, up to the limit, for a blank query.
	EmptySearchAll  EmptySearchMode = "all"
	EmptySearchNone EmptySearchMode = "none"
)

const (
	defaultRoutePrefix = "/controls"
	defaultRouteSuffix = "/options"
	defaultSearchParam = "q"
	defaultLimitParam  = "limit"
	defaultLimit       = 50
	defaultMaxLimit    = 200
)

type GuardFunc func(r *http.Request) error

// Labeler resolves a display-name key into option label text.
type Labeler func(key string) string

type Options struct {
	RoutePrefix     string
	RouteSuffix     string
	SearchParam     string
	LimitParam      string
	DefaultLimit    int
	MaxLimit        int
	EmptySearchMode EmptySearchMode
	Guard           GuardFunc
	Labeler         Labeler
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePrefix:     defaultRoutePrefix,
		RouteSuffix:     defaultRouteSuffix,
		SearchParam:     defaultSearchParam,
		LimitParam:      defaultLimitParam,
		DefaultLimit:    defaultLimit,
		MaxLimit:        defaultMaxLimit,
		EmptySearchMode: EmptySearchAll,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = defaultLimit
	}
	if opts.MaxLimit <= 0 {
		opts.MaxLimit = defaultMaxLimit
	}
	if opts.EmptySearchMode == "" {
		opts.EmptySearchMode = EmptySearchAll
	}
	if opts.RoutePrefix == "" {
		opts.RoutePrefix = defaultRoutePrefix
	}
	if opts.RouteSuffix == "" {
		opts.RouteSuffix = defaultRouteSuffix
	}
	if opts.SearchParam == "" {
		opts.SearchParam = defaultSearchParam
	}
	if opts.LimitParam == "" {
		opts.LimitParam = defaultLimitParam
	}
	return opts
}

func WithRoutePrefix(prefix string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePrefix = prefix
	}
}

func WithSearchParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SearchParam = name
	}
}

func WithLimitParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.LimitParam = name
	}
}

func WithDefaultLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DefaultLimit = limit
	}
}

func WithMaxLimit(limit int) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxLimit = limit
	}
}

func WithEmptySearchMode(mode EmptySearchMode) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmptySearchMode = mode
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithLabeler resolves value labels from their display-name keys. Without
// one, labels fall back to the value text.
func WithLabeler(labeler Labeler) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Labeler = labeler
	}
}

func clampLimit(limit int, opts Options) int {
	if limit < 0 {
		return 0
	}
	if limit == 0 {
		limit = opts.DefaultLimit
	}
	if opts.MaxLimit > 0 && limit > opts.MaxLimit {
		return opts.MaxLimit
	}
	return limit
}
