package config

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// RouteSpec is one declarative route entry of a route file.
type RouteSpec struct {
	Method string `yaml:"method"`
	Path   string `yaml:"path"`
}

// RouteFile is a YAML document listing route templates:
//
//	routes:
//	  - method: GET
//	    path: /user/{id}
type RouteFile struct {
	Routes []RouteSpec `yaml:"routes"`
}

var knownMethods = map[string]bool{
	http.MethodGet:     true,
	http.MethodHead:    true,
	http.MethodPost:    true,
	http.MethodPut:     true,
	http.MethodPatch:   true,
	http.MethodDelete:  true,
	http.MethodOptions: true,
}

// LoadRouteFile reads and parses a route file. Methods are normalized to
// upper case; unknown methods and empty paths are rejected here so template
// compilation only ever sees plausible entries.
func LoadRouteFile(path string) (*RouteFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read route file: %w", err)
	}
	var rf RouteFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse route file %s: %w", path, err)
	}
	for i := range rf.Routes {
		r := &rf.Routes[i]
		r.Method = strings.ToUpper(strings.TrimSpace(r.Method))
		if !knownMethods[r.Method] {
			return nil, fmt.Errorf("route file %s: entry %d: unknown method %q", path, i, r.Method)
		}
		if r.Path == "" {
			return nil, fmt.Errorf("route file %s: entry %d: path is empty", path, i)
		}
	}
	return &rf, nil
}
