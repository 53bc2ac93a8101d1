package docs

import (
	"encoding/json"
	"testing"

	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	if err != nil {
		t.Fatalf("read doc: %v", err)
	}
	var parsed struct {
		Paths map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal([]byte(doc), &parsed); err != nil {
		t.Fatalf("doc is not JSON: %v", err)
	}
	for _, path := range []string{"/ingest", "/emails", "/emails/{id}", "/prompts", "/prompts/update", "/chat/agent", "/drafts/generate", "/health"} {
		if _, ok := parsed.Paths[path]; !ok {
			t.Errorf("path %s missing from swagger doc", path)
		}
	}
}
