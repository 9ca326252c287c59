package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yshengliao/pathway/template"
)

func TestValidate_Accepts(t *testing.T) {
	valid := []string{
		"/",
		"/user",
		"/user/",
		"/user/{id}",
		"/user/{id?}",
		"/files/{path*}",
		"/pair/{p*2}",
		"/deep/{p*12}",
		"/a.b",
		"/a-b_c~d",
		"/v1.0/items",
		"/enc%20oded",
		"/sub!$&'()*+,;=:@delims",
		"/{a}/{b}/{c}",
		"/mixed/{id}/tail",
		"/{p*3}/tail",
	}
	for _, tmpl := range valid {
		assert.NoError(t, template.Validate(tmpl), "template %q", tmpl)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		tmpl   string
		reason string
	}{
		{"", "empty"},
		{"user/{id}", "begin with '/'"},
		{"/user//detail", "empty path segment"},
		{"/user/{id", "must end with '}'"},
		{"/user/id}", "must start with '{'"},
		{"/user/{}", "name is empty"},
		{"/user/{a-b}", "invalid parameter token"},
		{"/user/{id?}/more", "final segment"},
		{"/files/{path*}/more", "final segment"},
		{"/user/{p*0}", "leading zeros"},
		{"/user/{p*01}", "leading zeros"},
		{"/user/{p*x}", "numeric"},
		{"/user/{p*2?}", "cannot also be optional"},
		{"/user/{p*?}", "implicitly optional"},
		{"/sp ace", "invalid character"},
		{"/bad%2", "incomplete percent-encoding"},
		{"/bad%zz", "incomplete percent-encoding"},
		{"/redundant%41", "must not be percent-encoded"},
		{"/redundant%7e", "must not be percent-encoded"},
	}
	for _, tt := range tests {
		err := template.Validate(tt.tmpl)
		require.Error(t, err, "template %q", tt.tmpl)
		assert.Contains(t, err.Error(), tt.reason, "template %q", tt.tmpl)
	}
}

func TestValidate_RejectionType(t *testing.T) {
	err := template.Validate("/user/{id")
	var terr *template.Error
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, "/user/{id", terr.Template)
	assert.NotEmpty(t, terr.Reason)
}
