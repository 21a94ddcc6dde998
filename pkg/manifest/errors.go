package manifest

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError.
	ErrParse = errors.New("manifest: parse error")
	// ErrMissingAttribute matches every *AttributeError.
	ErrMissingAttribute = errors.New("manifest: missing required attribute")
	// ErrDuplicateName matches every *DuplicateError.
	ErrDuplicateName = errors.New("manifest: duplicate name")
)

// ParseError reports a document that is not well-formed markup or lacks the
// control root. No model is built when it is returned.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Err != nil && e.Reason != "":
		return fmt.Sprintf("manifest: parse: %s: %v", e.Reason, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("manifest: parse: %v", e.Err)
	default:
		return "manifest: parse: " + e.Reason
	}
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// AttributeError reports a required attribute missing from a property or
// value element. Owner names the enclosing entity when it is known.
type AttributeError struct {
	Element   string
	Attribute string
	Owner     string
}

func (e *AttributeError) Error() string {
	if e.Owner != "" {
		return fmt.Sprintf("manifest: <%s> in %q missing required attribute %q", e.Element, e.Owner, e.Attribute)
	}
	return fmt.Sprintf("manifest: <%s> missing required attribute %q", e.Element, e.Attribute)
}

func (e *AttributeError) Unwrap() error { return ErrMissingAttribute }

// DuplicateError reports a second entity sharing a name with an earlier
// sibling of the same kind.
type DuplicateError struct {
	Element string
	Name    string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("manifest: duplicate <%s> name %q", e.Element, e.Name)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicateName }
