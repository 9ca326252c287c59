// Package template compiles declarative URL path templates into reusable
// matchers. A template is a sequence of /-separated segments where each
// segment is either a literal or a parameter token:
//
//	/user/{id}       required single-segment parameter
//	/user/{id?}      optional single-segment parameter
//	/files/{path*}   unbounded multi-segment parameter
//	/pair/{p*2}      fixed-count multi-segment parameter
//
// Compilation yields an immutable Compiled value that tests concrete request
// paths, extracts percent-decoded parameter values, and carries a
// fingerprint: a canonical string describing the template's structural shape
// with parameter names erased. Routes with identical shapes share a
// fingerprint regardless of how their parameters are named.
package template

import "fmt"

// Kind classifies a template segment.
type Kind int

const (
	// KindLiteral is a fixed text segment.
	KindLiteral Kind = iota
	// KindSingle matches exactly one path segment.
	KindSingle
	// KindMultiFixed matches exactly Count path segments.
	KindMultiFixed
	// KindMultiUnbounded matches one or more path segments, or none.
	KindMultiUnbounded
)

func (k Kind) String() string {
	switch k {
	case KindLiteral:
		return "literal"
	case KindSingle:
		return "single"
	case KindMultiFixed:
		return "multi-fixed"
	case KindMultiUnbounded:
		return "multi-unbounded"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParamSpec describes one segment of a parsed template, in left-to-right
// order. Name is empty for KindLiteral. Count is meaningful only for
// KindMultiFixed.
type ParamSpec struct {
	Name     string
	Kind     Kind
	Count    int
	Optional bool
}

// Options carries the routing configuration the compiler needs. It is passed
// explicitly so compiled patterns stay reproducible and independently
// testable.
type Options struct {
	// CaseSensitive controls whether literal segments match case-sensitively
	// and whether the fingerprint is case-folded.
	CaseSensitive bool

	// TrailingSlashSensitive controls whether a bare trailing slash is
	// accepted where an optional or unbounded parameter is absent, and
	// whether a template's own trailing slash is mandatory.
	TrailingSlashSensitive bool
}

// Error is a template rejection. It is fatal for the route registration that
// supplied the template; it is never produced at match time.
type Error struct {
	Template string
	Reason   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("path template %q: %s", e.Template, e.Reason)
}

func errf(tmpl, format string, args ...any) *Error {
	return &Error{Template: tmpl, Reason: fmt.Sprintf(format, args...)}
}
