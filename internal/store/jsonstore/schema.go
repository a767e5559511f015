package jsonstore

import (
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todosh/internal/model"
)

const schemaURL = "todos.schema.json"

var todosSchema = jsonschema.MustCompileString(schemaURL, fmt.Sprintf(`{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "name", "status"],
    "additionalProperties": false,
    "properties": {
      "id": {"type": "integer", "minimum": 1, "maximum": %d},
      "name": {"type": "string"},
      "status": {"enum": [%q, %q]}
    }
  }
}`, model.MaxID, model.StatusTodo, model.StatusDone))

// schemaError flattens a validation error to its first leaf, e.g.
// "/2/status: value must be one of "TODO", "DONE"".
func schemaError(err error) string {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err.Error()
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return strings.TrimSpace(loc + ": " + ve.Message)
}
