package changes

import (
	"math"
	"reflect"
	"slices"

	"github.com/go-logr/logr"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Field names a compared part of a Snapshot.
type Field string

const (
	FieldValue          Field = "value"
	FieldNotifications  Field = "notifications"
	FieldFormatting     Field = "customFormatting"
	FieldCustomControls Field = "customControls"
	FieldError          Field = "error"
	FieldErrorMessage   Field = "errorMessage"
	FieldEditable       Field = "editable"
	FieldParameters     Field = "parameters"
	FieldLoading        Field = "loading"
	FieldHeight         Field = "height"
)

// structuralEquality compares generic host data: nil and empty collections
// are equal, NaN equals NaN, and unexported struct fields are compared
// instead of rejected.
var structuralEquality = cmp.Options{
	cmpopts.EquateEmpty(),
	cmpopts.EquateNaNs(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

type check struct {
	field Field
	equal func(prev, next *Snapshot) bool
}

// checks run in the order IsEqual short-circuits on.
var checks = []check{
	{FieldValue, func(p, n *Snapshot) bool { return deepEqual(p.Value, n.Value) }},
	{FieldNotifications, func(p, n *Snapshot) bool { return slices.Equal(p.NotificationIDs(), n.NotificationIDs()) }},
	{FieldFormatting, func(p, n *Snapshot) bool { return deepEqual(p.Formatting, n.Formatting) }},
	{FieldCustomControls, func(p, n *Snapshot) bool { return deepEqual(p.CustomControls, n.CustomControls) }},
	{FieldError, func(p, n *Snapshot) bool { return p.HasError == n.HasError }},
	{FieldErrorMessage, func(p, n *Snapshot) bool { return p.ErrorMessage == n.ErrorMessage }},
	{FieldEditable, func(p, n *Snapshot) bool { return p.Editable == n.Editable }},
	{FieldParameters, func(p, n *Snapshot) bool { return deepEqual(p.Parameters, n.Parameters) }},
	{FieldLoading, func(p, n *Snapshot) bool { return p.Loading == n.Loading }},
	{FieldHeight, func(p, n *Snapshot) bool { return floatEqual(p.Height, n.Height) }},
}

// IsEqual reports whether two snapshots render identically. A nil snapshot
// compares as one whose fields are all absent.
func IsEqual(prev, next *Snapshot) bool {
	p, n := orEmpty(prev), orEmpty(next)
	for _, c := range checks {
		if !c.equal(p, n) {
			return false
		}
	}
	return true
}

// Changes lists every field that differs between the snapshots, in
// comparison order. It is empty exactly when IsEqual is true.
func Changes(prev, next *Snapshot) []Field {
	p, n := orEmpty(prev), orEmpty(next)
	var out []Field
	for _, c := range checks {
		if !c.equal(p, n) {
			out = append(out, c.field)
		}
	}
	return out
}

// Option configures a Detector.
type Option func(*Detector)

// WithLogger attaches a logger; changed fields are reported at V(1).
func WithLogger(logger logr.Logger) Option {
	return func(d *Detector) {
		d.logger = logger
	}
}

// Detector wraps IsEqual for callers that want re-render decisions logged.
type Detector struct {
	logger logr.Logger
}

// NewDetector constructs a Detector.
func NewDetector(options ...Option) *Detector {
	d := &Detector{logger: logr.Discard()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// ShouldRender reports whether next differs from prev.
func (d *Detector) ShouldRender(prev, next *Snapshot) bool {
	if d == nil {
		return !IsEqual(prev, next)
	}
	if !d.logger.V(1).Enabled() {
		return !IsEqual(prev, next)
	}
	changed := Changes(prev, next)
	if len(changed) > 0 {
		d.logger.V(1).Info("cell changed", "fields", changed)
	}
	return len(changed) > 0
}

var emptySnapshot = &Snapshot{}

func orEmpty(s *Snapshot) *Snapshot {
	if s == nil {
		return emptySnapshot
	}
	return s
}

func deepEqual(a, b any) bool {
	return cmp.Equal(a, b, structuralEquality)
}

func floatEqual(a, b float64) bool {
	if math.IsNaN(a) && math.IsNaN(b) {
		return true
	}
	return a == b
}
