package enumoptions

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-controlkit/pkg/manifest"
)

// DeniedError is returned by a GuardFunc to refuse a request with a specific
// status. Any other guard error answers 403.
type DeniedError struct {
	Status int
	Reason string
}

// Deny builds a DeniedError. Status codes outside 4xx fall back to 403.
func Deny(status int, reason string) error {
	return &DeniedError{Status: status, Reason: reason}
}

func (e *DeniedError) Error() string {
	if e.Reason != "" {
		return "enumoptions: request denied: " + e.Reason
	}
	return "enumoptions: request denied"
}

func guardStatus(err error) int {
	var denied *DeniedError
	if errors.As(err, &denied) && denied.Status >= 400 && denied.Status < 500 {
		return denied.Status
	}
	return http.StatusForbidden
}

type optionsResponse struct {
	Data []Option `json:"data"`
}

// NewHandler serves the options of a single Enum property.
func NewHandler(prop *manifest.Property, fns ...OptionFn) http.Handler {
	return HandlerWithOptions(prop, NewOptions(fns...))
}

// HandlerWithOptions builds the handler from a pre-constructed Options value.
// A nil or non-Enum property yields 404 for every request.
func HandlerWithOptions(prop *manifest.Property, opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	options := OptionsFor(prop, opts.Labeler)
	enum := prop != nil && prop.IsEnum()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				code := guardStatus(err)
				http.Error(w, http.StatusText(code), code)
				return
			}
		}

		if !enum {
			http.NotFound(w, r)
			return
		}

		query := r.URL.Query().Get(opts.SearchParam)
		limit := parseInt(r.URL.Query().Get(opts.LimitParam))

		results := Search(options, query, limit, opts)
		if results == nil {
			results = []Option{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}

		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(true)
		_ = enc.Encode(optionsResponse{Data: results})
	})
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}
