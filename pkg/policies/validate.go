package policies

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	zenerrors "github.com/zen-tools/zenctl/pkg/errors"
)

//go:embed schema.json
var policySchema []byte

var (
	schemaOnce   sync.Once
	cachedSchema *jsonschema.Schema
	cachedErr    error
)

// compiledSchema compiles the embedded policy schema once per process.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("policies.schema.json", bytes.NewReader(policySchema)); err != nil {
			cachedErr = err
			return
		}
		cachedSchema, cachedErr = compiler.Compile("policies.schema.json")
	})
	return cachedSchema, cachedErr
}

// Validate checks a rendered policy document for structural
// well-formedness against the embedded JSON Schema.
func Validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return zenerrors.Wrap(zenerrors.ErrCodeInternal, "compiling policy schema", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return zenerrors.Wrap(zenerrors.ErrCodeInvalidPolicy, "generated policies.json is not valid JSON", err)
	}
	if err := schema.Validate(doc); err != nil {
		return zenerrors.Wrap(zenerrors.ErrCodeInvalidPolicy, "generated policies.json failed validation", err)
	}
	return nil
}
