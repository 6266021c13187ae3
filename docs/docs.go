// Package docs embeds the OpenAPI description of the HTTP API.
package docs

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPIYAML []byte

//go:embed index.html
var indexHTML []byte

// YAML returns the OpenAPI document as written.
func YAML() []byte { return openAPIYAML }

// Page returns the HTML page rendering the document.
func Page() []byte { return indexHTML }

var parsed = sync.OnceValues(func() (map[string]interface{}, error) {
	doc := make(map[string]interface{})
	if err := yaml.Unmarshal(openAPIYAML, &doc); err != nil {
		return nil, fmt.Errorf("parse openapi.yaml: %w", err)
	}
	return doc, nil
})

// Document returns the OpenAPI document decoded into generic maps, ready for
// JSON encoding.
func Document() (map[string]interface{}, error) {
	return parsed()
}
