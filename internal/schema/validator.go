// validator.go
//
// Productivity dashboard service for real estate agents
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of expiestack.
// expiestack is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// expiestack is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with expiestack.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package schema

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/kaptinlin/jsonschema"
	"github.com/localnerve/expiestack/data"
)

// ValidationError describes a request body that does not match its schema
type ValidationError struct {
	Schema string
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s validation failed: %s", e.Schema, strings.Join(parts, "; "))
}

// Validator holds the compiled request schemas
type Validator struct {
	schemas map[string]*jsonschema.Schema
}

// New compiles every schema embedded in the data package
func New() (*Validator, error) {
	return NewFromFS(data.Schemas, "schemas")
}

// NewFromFS compiles every *.json file in dir. The file name without
// extension is the schema name.
func NewFromFS(fsys fs.FS, dir string) (*Validator, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema directory: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	v := &Validator{schemas: make(map[string]*jsonschema.Schema, len(entries))}

	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", entry.Name(), err)
		}
		compiled, err := compiler.Compile(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to compile schema %s: %w", entry.Name(), err)
		}
		v.schemas[strings.TrimSuffix(entry.Name(), ".json")] = compiled
	}

	return v, nil
}

// Names lists the compiled schema names
func (v *Validator) Names() []string {
	names := make([]string, 0, len(v.schemas))
	for name := range v.schemas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks a raw JSON body against the named schema.
// It returns a *ValidationError for malformed or non-conforming input.
func (v *Validator) Validate(name string, body []byte) error {
	compiled, ok := v.schemas[name]
	if !ok {
		return fmt.Errorf("unknown schema %q", name)
	}

	var instance interface{}
	if len(body) == 0 {
		instance = map[string]interface{}{}
	} else if err := json.Unmarshal(body, &instance); err != nil {
		return &ValidationError{Schema: name, Fields: map[string]string{"body": "malformed JSON"}}
	}

	result := compiled.Validate(instance)
	if result.IsValid() {
		return nil
	}

	fields := make(map[string]string, len(result.Errors))
	for field, evalErr := range result.Errors {
		fields[field] = evalErr.Error()
	}
	if len(fields) == 0 {
		fields["body"] = "does not match schema"
	}
	return &ValidationError{Schema: name, Fields: fields}
}
