package contracts

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed events
var schemasFS embed.FS

const schemaBaseURL = "https://schemas.property-list-service.local/"

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	compileErr      error
)

// compileAll компилирует все схемы из events/ один раз.
// Сначала добавляются все ресурсы, чтобы работали ссылки $ref между схемами.
func compileAll() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemasFS, "events", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		data, err := schemasFS.ReadFile(path)
		if err != nil {
			return err
		}
		if err := compiler.AddResource(schemaBaseURL+path, bytes.NewReader(data)); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	schemas := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(schemaBaseURL + path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		key := KeyFromPath(path)
		if key == "" {
			return nil, fmt.Errorf("unexpected schema path %s", path)
		}
		schemas[key] = schema
	}
	return schemas, nil
}

// KeyFromPath преобразует путь вида "events/page-loaded/v1.json"
// в ключ вида "PageLoadedEvent/1.0.0".
func KeyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "events/"), ".json")

	parts := strings.Split(trimmed, "/")
	if len(parts) != 2 || !strings.HasPrefix(parts[1], "v") {
		return ""
	}

	caser := cases.Title(language.English)
	var name strings.Builder
	for _, part := range strings.Split(parts[0], "-") {
		name.WriteString(caser.String(part))
	}
	name.WriteString("Event")

	return fmt.Sprintf("%s/%s.0.0", name.String(), strings.TrimPrefix(parts[1], "v"))
}

// Validate проверяет JSON-тело события по схеме с ключом key.
func Validate(key string, body []byte) error {
	compileOnce.Do(func() {
		compiledSchemas, compileErr = compileAll()
	})
	if compileErr != nil {
		return compileErr
	}

	schema, found := compiledSchemas[key]
	if !found {
		return fmt.Errorf("contracts: unknown schema %q", key)
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contracts: invalid JSON: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("contracts: %s validation failed: %w", key, err)
	}
	return nil
}
