// pkg/catalog/catalog.go
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "voice-demo-generator/internal/common/errors"
	"voice-demo-generator/internal/models"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	templatesSchema  = mustSchema("schemas/templates.schema.json")
	industriesSchema = mustSchema("schemas/industries.schema.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("catalog: missing embedded schema %s: %v", name, err))
	}
	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("catalog: invalid embedded schema %s: %v", name, err))
	}
	return schema
}

// LoadTemplates reads and validates a conversation template file.
func LoadTemplates(path string) (*TemplateSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewCatalogInvalidError(path, err)
	}
	set, err := ParseTemplates(data)
	if err != nil {
		return nil, apperrors.NewCatalogInvalidError(path, err)
	}
	return set, nil
}

// ParseTemplates validates raw JSON against the template schema and decodes it.
func ParseTemplates(data []byte) (*TemplateSet, error) {
	if err := validate(templatesSchema, data); err != nil {
		return nil, err
	}
	var set TemplateSet
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, err
	}
	if set.IndustryContexts == nil {
		set.IndustryContexts = map[string]models.BusinessContext{}
	}
	return &set, nil
}

// LoadIndustries reads and validates the ordered industry list.
func LoadIndustries(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewCatalogInvalidError(path, err)
	}
	industries, err := ParseIndustries(data)
	if err != nil {
		return nil, apperrors.NewCatalogInvalidError(path, err)
	}
	return industries, nil
}

func ParseIndustries(data []byte) ([]string, error) {
	if err := validate(industriesSchema, data); err != nil {
		return nil, err
	}
	var industries []string
	if err := json.Unmarshal(data, &industries); err != nil {
		return nil, err
	}
	return industries, nil
}

// SaveTemplates validates set and writes it back as indented JSON.
func SaveTemplates(path string, set *TemplateSet) error {
	return save(path, templatesSchema, set)
}

// SaveIndustries validates the list and writes it back as indented JSON.
func SaveIndustries(path string, industries []string) error {
	return save(path, industriesSchema, industries)
}

func save(path string, schema *gojsonschema.Schema, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return apperrors.NewCatalogInvalidError(path, err)
	}
	if err := validate(schema, data); err != nil {
		return apperrors.NewCatalogInvalidError(path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return apperrors.NewArtifactWriteFailedError(path, err)
	}
	return nil
}

func validate(schema *gojsonschema.Schema, data []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("schema validation failed: %s", strings.Join(msgs, "; "))
}
