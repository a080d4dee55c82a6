package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestDocsRender(t *testing.T) {
	for instance, paths := range map[string][]string{
		AuthInstance:  {"/signup", "/token", "/refresh", "/profile", "/validate"},
		NotesInstance: {"/notes", "/notes/{id}"},
	} {
		t.Run(instance, func(t *testing.T) {
			raw, err := swag.ReadDoc(instance)
			require.NoError(t, err)

			var doc struct {
				BasePath string                     `json:"basePath"`
				Paths    map[string]json.RawMessage `json:"paths"`
			}
			require.NoError(t, json.Unmarshal([]byte(raw), &doc))
			for _, p := range paths {
				assert.Contains(t, doc.Paths, p)
			}
		})
	}
}
