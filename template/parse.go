package template

import (
	"strconv"
	"strings"
)

// segment is one /-delimited unit of a parsed template. lit carries the
// literal text for KindLiteral segments; the empty literal produced by a
// trailing slash is legal only in final position.
type segment struct {
	ParamSpec
	lit string
}

// Validate reports whether tmpl is a syntactically legal path template. It is
// a pure predicate: a nil return means the template will compile (short of a
// duplicate parameter name, which Compile detects).
func Validate(tmpl string) error {
	_, err := parse(tmpl)
	return err
}

// parse decomposes a template into segments. Both validation and compilation
// go through this single decomposition so the pattern and the fingerprint can
// never disagree on segment count.
func parse(tmpl string) ([]segment, error) {
	if tmpl == "" {
		return nil, errf(tmpl, "template is empty")
	}
	if tmpl[0] != '/' {
		return nil, errf(tmpl, "template must begin with '/'")
	}
	if tmpl == "/" {
		return nil, nil
	}

	parts := strings.Split(tmpl[1:], "/")
	segs := make([]segment, 0, len(parts))
	for i, part := range parts {
		last := i == len(parts)-1
		switch {
		case part == "":
			if !last {
				return nil, errf(tmpl, "empty path segment")
			}
			segs = append(segs, segment{ParamSpec: ParamSpec{Kind: KindLiteral}})

		case strings.ContainsAny(part, "{}"):
			spec, err := parseParam(tmpl, part)
			if err != nil {
				return nil, err
			}
			if (spec.Optional || spec.Kind == KindMultiUnbounded) && !last {
				return nil, errf(tmpl, "parameter %q must be the final segment", spec.Name)
			}
			segs = append(segs, segment{ParamSpec: spec})

		default:
			if err := checkLiteral(tmpl, part); err != nil {
				return nil, err
			}
			segs = append(segs, segment{ParamSpec: ParamSpec{Kind: KindLiteral}, lit: part})
		}
	}
	return segs, nil
}

// parseParam parses a parameter token: {name}, {name?}, {name*} or {name*N}.
func parseParam(tmpl, part string) (ParamSpec, error) {
	var spec ParamSpec
	if part[0] != '{' {
		return spec, errf(tmpl, "segment %q: parameter token must start with '{'", part)
	}
	if part[len(part)-1] != '}' {
		return spec, errf(tmpl, "segment %q: parameter token must end with '}'", part)
	}
	body := part[1 : len(part)-1]

	n := 0
	for n < len(body) && isWordChar(body[n]) {
		n++
	}
	if n == 0 {
		return spec, errf(tmpl, "segment %q: parameter name is empty", part)
	}
	spec.Name = body[:n]

	switch suffix := body[n:]; {
	case suffix == "":
		spec.Kind = KindSingle
	case suffix == "?":
		spec.Kind = KindSingle
		spec.Optional = true
	case suffix == "*":
		spec.Kind = KindMultiUnbounded
	case suffix[0] == '*':
		count, err := parseCount(tmpl, part, suffix[1:])
		if err != nil {
			return spec, err
		}
		spec.Kind = KindMultiFixed
		spec.Count = count
	default:
		return spec, errf(tmpl, "segment %q: invalid parameter token", part)
	}
	return spec, nil
}

// parseCount parses the N of {name*N}: decimal digits, at least 1, no
// leading zero. Optionality cannot combine with a fixed count.
func parseCount(tmpl, part, s string) (int, error) {
	if s == "?" {
		return 0, errf(tmpl, "segment %q: an unbounded parameter is implicitly optional", part)
	}
	if strings.HasSuffix(s, "?") {
		return 0, errf(tmpl, "segment %q: a fixed-count parameter cannot also be optional", part)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, errf(tmpl, "segment %q: segment count must be numeric", part)
		}
	}
	if s[0] == '0' {
		return 0, errf(tmpl, "segment %q: segment count must be positive without leading zeros", part)
	}
	count, err := strconv.Atoi(s)
	if err != nil {
		return 0, errf(tmpl, "segment %q: segment count out of range", part)
	}
	return count, nil
}

// checkLiteral verifies every character of a literal segment is either in
// the safe path character set or a well-formed percent-encoded octet whose
// decoded value genuinely required encoding.
func checkLiteral(tmpl, part string) error {
	for i := 0; i < len(part); i++ {
		c := part[i]
		if isSafeChar(c) {
			continue
		}
		if c != '%' {
			return errf(tmpl, "segment %q: invalid character %q", part, c)
		}
		if i+2 >= len(part) || !isHexDigit(part[i+1]) || !isHexDigit(part[i+2]) {
			return errf(tmpl, "segment %q: incomplete percent-encoding", part)
		}
		decoded := unhex(part[i+1])<<4 | unhex(part[i+2])
		if isSafeChar(decoded) {
			// Redundant encodings would let two spellings of the same
			// template slip past duplicate detection.
			return errf(tmpl, "segment %q: %q must not be percent-encoded", part, decoded)
		}
		i += 2
	}
	return nil
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// isSafeChar reports whether c may appear unencoded in a path segment:
// RFC 3986 unreserved characters, sub-delims, ':' and '@'.
func isSafeChar(c byte) bool {
	if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' {
		return true
	}
	switch c {
	case '-', '.', '_', '~',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=',
		':', '@':
		return true
	}
	return false
}

func isHexDigit(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func unhex(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	default:
		return c - 'A' + 10
	}
}
