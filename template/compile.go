package template

import (
	"regexp"
	"strings"
)

// Compile turns a path template into an immutable Compiled matcher. The
// routing configuration is passed explicitly; two calls with the same
// template and options produce patterns with identical match behavior and
// identical fingerprints.
//
// Compile re-runs full syntactic validation, so callers that already ran
// Validate pay the parse twice but can also call Compile directly. The only
// failure beyond syntax is a duplicate parameter name.
func Compile(tmpl string, opts Options) (*Compiled, error) {
	segs, err := parse(tmpl)
	if err != nil {
		return nil, err
	}

	var pattern, shape strings.Builder
	if !opts.CaseSensitive {
		pattern.WriteString("(?i)")
	}
	pattern.WriteString("^")

	if len(segs) == 0 { // the root template "/"
		pattern.WriteString("/")
		shape.WriteString("/")
	}

	specs := make([]ParamSpec, 0, len(segs))
	var params []string
	seen := make(map[string]bool)
	for _, seg := range segs {
		specs = append(specs, seg.ParamSpec)
		if seg.Kind != KindLiteral {
			if seen[seg.Name] {
				return nil, errf(tmpl, "duplicate parameter name %q", seg.Name)
			}
			seen[seg.Name] = true
			params = append(params, seg.Name)
		}

		switch seg.Kind {
		case KindLiteral:
			if seg.lit == "" {
				// Trailing slash artifact: mandatory separator when the
				// trailing slash is significant, otherwise tolerated.
				if opts.TrailingSlashSensitive {
					pattern.WriteString("/")
				} else {
					pattern.WriteString("/?")
				}
				shape.WriteString("/")
				continue
			}
			pattern.WriteString("/")
			pattern.WriteString(regexp.QuoteMeta(seg.lit))
			shape.WriteString("/")
			shape.WriteString(seg.lit)

		case KindSingle:
			if seg.Optional {
				pattern.WriteString(optionalUnit("([^/]+)", opts))
			} else {
				pattern.WriteString("/([^/]+)")
			}
			shape.WriteString("/?")

		case KindMultiFixed:
			pattern.WriteString("/([^/]+")
			pattern.WriteString(strings.Repeat("/[^/]+", seg.Count-1))
			pattern.WriteString(")")
			shape.WriteString(strings.Repeat("/?", seg.Count))

		case KindMultiUnbounded:
			// Unbounded multi is implicitly optional: zero segments is legal.
			pattern.WriteString(optionalUnit("([^/]+(?:/[^/]+)*)", opts))
			shape.WriteString("/?*")
		}
	}
	pattern.WriteString("$")

	fingerprint := shape.String()
	if !opts.CaseSensitive {
		fingerprint = strings.ToLower(fingerprint)
	}

	return &Compiled{
		tmpl:        tmpl,
		opts:        opts,
		re:          regexp.MustCompile(pattern.String()),
		specs:       specs,
		params:      params,
		fingerprint: fingerprint,
	}, nil
}

// optionalUnit wraps a capturing fragment so the fragment and its leading
// separator may be absent together. When the trailing slash is not
// significant, a bare trailing '/' is also accepted as absence, so /user/
// and /user are equivalent spellings of an omitted parameter. When it is
// significant, only full presence or full absence match.
func optionalUnit(fragment string, opts Options) string {
	if opts.TrailingSlashSensitive {
		return "(?:/" + fragment + ")?"
	}
	return "(?:/" + fragment + "|/)?"
}
