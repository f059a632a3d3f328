package manifest

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed schema.json
var schemaJSON []byte

var (
	ErrSchema          = errors.New("manifest does not match schema")
	ErrNameMismatch    = errors.New("manifest name does not match pack name")
	ErrVersionMismatch = errors.New("manifest version does not match published version")
)

// Manifest holds the fields of a pack manifest the registry reads.
type Manifest struct {
	Name        string `json:"name,omitempty"`
	Version     string `json:"version,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	Description string `json:"description,omitempty"`
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiled, compileErr = compiler.Compile(schemaJSON)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile manifest schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// Validate checks raw against the embedded schema and, when present, against name and version.
// An empty raw manifest is allowed and yields a zero Manifest.
func Validate(raw []byte, name, version string) (Manifest, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return Manifest{}, nil
	}

	s, err := schema()
	if err != nil {
		return Manifest{}, err
	}
	result := s.ValidateJSON(raw)
	if !result.IsValid() {
		return Manifest{}, fmt.Errorf("%w: %v", ErrSchema, result.Errors)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return Manifest{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if m.Name != "" && m.Name != name {
		return Manifest{}, ErrNameMismatch
	}
	if m.Version != "" && m.Version != version {
		return Manifest{}, ErrVersionMismatch
	}
	return m, nil
}
