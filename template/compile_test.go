package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yshengliao/pathway/template"
)

func TestCompile_ParamOrder(t *testing.T) {
	c, err := template.Compile("/orgs/{org}/repos/{repo}/files/{path*}", template.Options{CaseSensitive: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"org", "repo", "path"}, c.Params())

	specs := c.Specs()
	require.Len(t, specs, 6)
	assert.Equal(t, template.KindLiteral, specs[0].Kind)
	assert.Equal(t, template.KindSingle, specs[1].Kind)
	assert.Equal(t, template.KindMultiUnbounded, specs[5].Kind)
}

func TestCompile_DuplicateName(t *testing.T) {
	_, err := template.Compile("/{a}/{a}", template.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate parameter name "a"`)

	// A parameter sharing its name with a literal is fine.
	_, err = template.Compile("/a/{a}", template.Options{})
	assert.NoError(t, err)
	_, err = template.Compile("/{a}/b", template.Options{})
	assert.NoError(t, err)
}

func TestCompile_Fingerprint(t *testing.T) {
	opts := template.Options{CaseSensitive: true}
	tests := []struct {
		tmpl string
		want string
	}{
		{"/", "/"},
		{"/user", "/user"},
		{"/user/", "/user/"},
		{"/user/{id}", "/user/?"},
		{"/user/{id?}", "/user/?"},
		{"/a/{p*2}", "/a/?/?"},
		{"/a/{p*}", "/a/?*"},
		{"/a/{p*3}/b", "/a/?/?/?/b"},
	}
	for _, tt := range tests {
		c, err := template.Compile(tt.tmpl, opts)
		require.NoError(t, err, "template %q", tt.tmpl)
		assert.Equal(t, tt.want, c.Fingerprint(), "template %q", tt.tmpl)
	}
}

func TestCompile_FingerprintNameIndependent(t *testing.T) {
	opts := template.Options{CaseSensitive: true}
	a, err := template.Compile("/user/{id}", opts)
	require.NoError(t, err)
	b, err := template.Compile("/user/{name}", opts)
	require.NoError(t, err)
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	c, err := template.Compile("/account/{id}", opts)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestCompile_FingerprintCaseFolding(t *testing.T) {
	ci, err := template.Compile("/User/{id}", template.Options{CaseSensitive: false})
	require.NoError(t, err)
	assert.Equal(t, "/user/?", ci.Fingerprint())

	cs, err := template.Compile("/User/{id}", template.Options{CaseSensitive: true})
	require.NoError(t, err)
	assert.Equal(t, "/User/?", cs.Fingerprint())
}

func TestCompile_Idempotent(t *testing.T) {
	opts := template.Options{CaseSensitive: true, TrailingSlashSensitive: true}
	a, err := template.Compile("/user/{id?}", opts)
	require.NoError(t, err)
	b, err := template.Compile("/user/{id?}", opts)
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.Params(), b.Params())
	for _, path := range []string{"/user", "/user/", "/user/42", "/other"} {
		assert.Equal(t, a.Test(path), b.Test(path), "path %q", path)
	}
}
