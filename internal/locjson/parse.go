package locjson

import (
	"encoding/json"
	"fmt"
	"sync"

	"locparse/internal/locfile"

	"github.com/kaptinlin/jsonschema"
	"github.com/tidwall/gjson"
)

// schemaJSON describes a .loc.json document: an object whose properties are
// string names mapped to a value and an optional comment.
const schemaJSON = `{
  "type": "object",
  "properties": {
    "$schema": { "type": "string" }
  },
  "patternProperties": {
    "^[A-Za-z_][0-9A-Za-z_]*$": {
      "type": "object",
      "properties": {
        "value": { "type": "string" },
        "comment": { "type": "string" }
      },
      "required": ["value"],
      "additionalProperties": false
    }
  },
  "additionalProperties": false
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	schema, err := compiler.Compile([]byte(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile loc.json schema: %w", err)
	}
	return schema, nil
})

// Parse reads a .loc.json (or .resx.json) file.
func Parse(opts locfile.ParseFileOptions) (*locfile.File, error) {
	var doc any
	if err := json.Unmarshal([]byte(opts.Content), &doc); err != nil {
		return nil, fmt.Errorf("parse loc.json file %s: %w", opts.FilePath, err)
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if result := schema.Validate(doc); !result.Valid {
		return nil, fmt.Errorf("invalid loc.json file %s: %v", opts.FilePath, result.Errors)
	}

	file := locfile.NewFile()
	var dupErr error
	gjson.Parse(opts.Content).ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if name == "$schema" || opts.IgnoreString.Ignore(opts.FilePath, name) {
			return true
		}
		s := locfile.String{
			Value:   value.Get("value").String(),
			Comment: value.Get("comment").String(),
		}
		if !file.Add(name, s) {
			dupErr = fmt.Errorf("loc.json file %s defines string %q more than once", opts.FilePath, name)
			return false
		}
		return true
	})
	if dupErr != nil {
		return nil, dupErr
	}

	return file, nil
}
