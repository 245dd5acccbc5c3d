// Package openapi imports OpenAPI 3 request bodies as form schemas. The
// importer targets one operation at a time: the JSON request body of the
// named operation becomes sections and fields, so an API document can seed a
// form without hand-authoring the schema.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formflow/pkg/schema"
)

var (
	// ErrOperationNotFound reports that no operation carries the requested id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody reports that the operation has no JSON object body to
	// build fields from.
	ErrNoRequestBody = errors.New("openapi: operation has no usable request body")
)

// Options tunes the import.
type Options struct {
	// ContentType selects the request body media type. Defaults to
	// application/json.
	ContentType string
	// SectionTitle names the section holding the body's scalar properties.
	// Defaults to "Details".
	SectionTitle string
}

// Importer converts OpenAPI documents into form schemas.
type Importer struct {
	options Options
}

// New constructs an Importer.
func New(options Options) *Importer {
	if options.ContentType == "" {
		options.ContentType = "application/json"
	}
	if options.SectionTitle == "" {
		options.SectionTitle = "Details"
	}
	return &Importer{options: options}
}

// Import loads the document, locates the operation by operationId, and builds
// a schema from its request body. Scalar properties land in one main section;
// object-typed properties become their own sections.
func (i *Importer) Import(ctx context.Context, data []byte, operationID string) (schema.FormSchema, error) {
	if err := ctx.Err(); err != nil {
		return schema.FormSchema{}, err
	}
	if len(data) == 0 {
		return schema.FormSchema{}, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return schema.FormSchema{}, fmt.Errorf("openapi: load document: %w", err)
	}

	operation := findOperation(doc, operationID)
	if operation == nil {
		return schema.FormSchema{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	body := requestBodySchema(operation, i.options.ContentType)
	if body == nil || len(body.Properties) == 0 {
		return schema.FormSchema{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	form := schema.NewSchema(titleFor(operation, operationID))
	form.Description = operation.Description

	main := schema.FormSection{
		ID:     form.ID + "-main",
		Title:  i.options.SectionTitle,
		Fields: nil,
	}

	required := stringSet(body.Required)
	for _, name := range orderedProperties(body) {
		property := body.Properties[name]
		if property == nil || property.Value == nil {
			continue
		}
		if isObject(property.Value) && len(property.Value.Properties) > 0 {
			form.Sections = append(form.Sections, i.objectSection(form.ID, name, property.Value))
			continue
		}
		field, ok := fieldFrom(form.ID, name, property.Value, required[name])
		if !ok {
			continue
		}
		main.Fields = append(main.Fields, field)
	}

	if len(main.Fields) > 0 {
		form.Sections = append([]schema.FormSection{main}, form.Sections...)
	}
	if len(form.Sections) == 0 {
		return schema.FormSchema{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}
	return *form, nil
}

// objectSection turns a nested object property into its own section. Field
// names stay flat: nested keys are joined with a dot so records remain a
// single-level map.
func (i *Importer) objectSection(formID, name string, src *openapi3.Schema) schema.FormSection {
	section := schema.FormSection{
		ID:          formID + "-" + name,
		Title:       labelFor(name, src.Title),
		Description: src.Description,
	}
	required := stringSet(src.Required)
	for _, propName := range orderedProperties(src) {
		property := src.Properties[propName]
		if property == nil || property.Value == nil {
			continue
		}
		field, ok := fieldFrom(formID, name+"."+propName, property.Value, required[propName])
		if !ok {
			continue
		}
		section.Fields = append(section.Fields, field)
	}
	return section
}

func findOperation(doc *openapi3.T, operationID string) *openapi3.Operation {
	if doc.Paths == nil {
		return nil
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, operation := range item.Operations() {
			if operation != nil && operation.OperationID == operationID {
				return operation
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation, contentType string) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	if len(content) == 0 {
		return nil
	}
	mt, ok := content[contentType]
	if !ok {
		for _, fallback := range content {
			mt = fallback
			break
		}
	}
	if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
		return nil
	}
	return mt.Schema.Value
}

// orderedProperties returns property names with the required ones first, in
// declaration order, and the rest alphabetically. kin-openapi stores
// properties in a map, so the source ordering is already gone.
func orderedProperties(src *openapi3.Schema) []string {
	seen := make(map[string]bool, len(src.Properties))
	var out []string
	for _, name := range src.Required {
		if _, ok := src.Properties[name]; ok && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	var rest []string
	for name := range src.Properties {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func fieldFrom(formID, name string, src *openapi3.Schema, required bool) (schema.FormField, bool) {
	fieldType, options, ok := mapType(src)
	if !ok {
		return schema.FormField{}, false
	}

	field := schema.FormField{
		ID:          formID + "-" + strings.ReplaceAll(name, ".", "-"),
		Type:        fieldType,
		Label:       labelFor(name, src.Title),
		Name:        name,
		Placeholder: src.Description,
		Required:    required,
		Options:     options,
	}

	rule := ruleFrom(src, required)
	if rule != nil {
		field.Validation = rule
	}
	if value, ok := defaultValue(src.Default); ok {
		field.DefaultValue = value
	}
	return field, true
}

// mapType resolves the field type for an OpenAPI property. Unmappable shapes
// (arrays of objects, bare objects, unsupported types) report false and are
// skipped.
func mapType(src *openapi3.Schema) (schema.FieldType, []schema.FieldOption, bool) {
	switch firstType(src.Type) {
	case "string":
		if len(src.Enum) > 0 {
			return schema.FieldTypeDropdown, enumOptions(src.Enum), true
		}
		switch src.Format {
		case "email":
			return schema.FieldTypeEmail, nil, true
		case "password":
			return schema.FieldTypePassword, nil, true
		case "date":
			return schema.FieldTypeDate, nil, true
		case "date-time":
			return schema.FieldTypeDatetime, nil, true
		case "textarea":
			return schema.FieldTypeTextarea, nil, true
		default:
			return schema.FieldTypeText, nil, true
		}
	case "boolean":
		return schema.FieldTypeToggle, nil, true
	case "integer", "number":
		return schema.FieldTypeText, nil, true
	case "array":
		if src.Items == nil || src.Items.Value == nil {
			return "", nil, false
		}
		items := src.Items.Value
		if firstType(items.Type) == "string" && len(items.Enum) > 0 {
			return schema.FieldTypeCheckbox, enumOptions(items.Enum), true
		}
		return "", nil, false
	default:
		return "", nil, false
	}
}

func ruleFrom(src *openapi3.Schema, required bool) *schema.ValidationRule {
	rule := schema.ValidationRule{Required: required}
	populated := required
	if src.MinLength != 0 {
		rule.MinLength = int(src.MinLength)
		populated = true
	}
	if src.MaxLength != nil {
		rule.MaxLength = int(*src.MaxLength)
		populated = true
	}
	if src.Pattern != "" {
		rule.Pattern = src.Pattern
		populated = true
	}
	if !populated {
		return nil
	}
	return &rule
}

func defaultValue(raw any) (schema.Value, bool) {
	switch typed := raw.(type) {
	case string:
		return schema.String(typed), true
	case bool:
		return schema.Bool(typed), true
	case float64:
		return schema.Number(typed), true
	default:
		return schema.Value{}, false
	}
}

func enumOptions(values []any) []schema.FieldOption {
	var out []schema.FieldOption
	for _, raw := range values {
		text, ok := raw.(string)
		if !ok || text == "" {
			continue
		}
		out = append(out, schema.FieldOption{Label: labelFor(text, ""), Value: text})
	}
	return out
}

func isObject(src *openapi3.Schema) bool {
	return firstType(src.Type) == "object"
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func titleFor(operation *openapi3.Operation, operationID string) string {
	if operation.Summary != "" {
		return operation.Summary
	}
	return labelFor(operationID, "")
}

// labelFor produces a display label: an explicit title wins, otherwise the
// key with separators spaced out and the first rune upper-cased.
func labelFor(name, title string) string {
	if title != "" {
		return title
	}
	replaced := strings.NewReplacer("_", " ", "-", " ", ".", " ").Replace(name)
	if replaced == "" {
		return name
	}
	return strings.ToUpper(replaced[:1]) + replaced[1:]
}

func stringSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, value := range values {
		out[value] = true
	}
	return out
}
