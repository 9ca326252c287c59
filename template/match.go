package template

import (
	"net/url"
	"regexp"
)

// Compiled is the reusable matcher produced by Compile. It is never mutated
// after construction and is safe for concurrent use; each Match call
// allocates its own result.
type Compiled struct {
	tmpl        string
	opts        Options
	re          *regexp.Regexp
	specs       []ParamSpec
	params      []string
	fingerprint string
}

// Template returns the raw template the pattern was compiled from.
func (c *Compiled) Template() string { return c.tmpl }

// Fingerprint returns the canonical, name-erased shape of the template.
// Structurally identical templates share a fingerprint regardless of
// parameter names, which makes it usable as a cache-partition key.
func (c *Compiled) Fingerprint() string { return c.fingerprint }

// Params returns the parameter names in declaration order, literals excluded.
func (c *Compiled) Params() []string {
	out := make([]string, len(c.params))
	copy(out, c.params)
	return out
}

// Specs returns the full segment specification in declaration order,
// literals included.
func (c *Compiled) Specs() []ParamSpec {
	out := make([]ParamSpec, len(c.specs))
	copy(out, c.specs)
	return out
}

// Test reports whether path structurally matches the pattern. It never
// decodes captured values; callers that only need match/no-match avoid the
// decoding cost.
func (c *Compiled) Test(path string) bool {
	return c.re.MatchString(path)
}

// Match applies the pattern to path. A failed structural match and a capture
// with malformed percent-encoding both report ok == false; neither is an
// error. A value that cannot be decoded is not a usable parameter value, so
// the route is treated as non-matching.
func (c *Compiled) Match(path string) (*MatchResult, bool) {
	m := c.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	values := make([]string, len(c.params))
	lookup := make(map[string]string, len(c.params))
	for i, raw := range m[1:] {
		if raw != "" {
			decoded, err := url.PathUnescape(raw)
			if err != nil {
				return nil, false
			}
			raw = decoded
		}
		values[i] = raw
		lookup[c.params[i]] = raw
	}
	return &MatchResult{names: c.params, values: values, lookup: lookup}, true
}

// MatchResult holds the decoded parameter values of a successful match.
// Absent optional and unbounded parameters are present with an empty value:
// a captured run can never legally be empty, so "" always means absent.
type MatchResult struct {
	names  []string
	values []string
	lookup map[string]string
}

// Param returns the decoded value of the named parameter, or "" if the
// parameter was absent or never declared.
func (r *MatchResult) Param(name string) string { return r.lookup[name] }

// Has reports whether the named parameter was declared and captured a value.
func (r *MatchResult) Has(name string) bool {
	v, ok := r.lookup[name]
	return ok && v != ""
}

// Names returns the parameter names in declaration order.
func (r *MatchResult) Names() []string { return r.names }

// Values returns the decoded values aligned with Names.
func (r *MatchResult) Values() []string { return r.values }
