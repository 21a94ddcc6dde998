package manifest

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"
)

// ParametersSchema describes the control's input parameters (usage bound or
// input) as an OpenAPI 3 object schema. Properties keep document order in
// Required; unknown data types are left unconstrained.
func (c *Control) ParametersSchema() *openapi3.Schema {
	root := openapi3.NewObjectSchema()
	if c == nil {
		return root
	}
	root.Title = c.Key()
	root.Description = c.DescriptionKey

	for _, prop := range c.InputProperties() {
		root.WithProperty(prop.Name, c.propertySchema(prop))
		if prop.Required {
			root.Required = append(root.Required, prop.Name)
		}
	}
	return root
}

// ValidateParameters checks a parameter payload against ParametersSchema.
// Values are normalised through JSON first so Go numeric types compare the
// same way host-supplied JSON does.
func (c *Control) ValidateParameters(params map[string]any) error {
	normalised, err := normaliseJSON(params)
	if err != nil {
		return fmt.Errorf("manifest: normalise parameters: %w", err)
	}
	if err := c.ParametersSchema().VisitJSON(normalised, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("manifest: parameters for %s: %w", c.Key(), err)
	}
	return nil
}

func (c *Control) propertySchema(prop *Property) *openapi3.Schema {
	var schema *openapi3.Schema
	switch types := c.ResolveTypes(prop); {
	case prop.IsEnum():
		schema = enumSchema(prop)
	case len(types) == 1:
		schema = dataTypeSchema(types[0])
	case len(types) > 1:
		members := make([]*openapi3.Schema, 0, len(types))
		for _, t := range types {
			members = append(members, dataTypeSchema(t))
		}
		schema = openapi3.NewAnyOfSchema(members...)
	default:
		schema = &openapi3.Schema{}
	}

	schema.Title = prop.DisplayNameKey
	schema.Description = prop.DescriptionKey
	return schema
}

func enumSchema(prop *Property) *openapi3.Schema {
	schema := openapi3.NewStringSchema()
	values := prop.Values().Values()
	members := make([]any, 0, len(values))
	for _, value := range values {
		members = append(members, value.Text())
	}
	if len(members) > 0 {
		schema = schema.WithEnum(members...)
	}
	if def, ok := prop.DefaultEnumValue(); ok {
		schema.Default = def.Text()
	}
	return schema
}

// dataTypeSchema maps a manifest of-type onto a JSON schema type.
func dataTypeSchema(dataType string) *openapi3.Schema {
	switch {
	case dataType == "TwoOptions":
		return openapi3.NewBoolSchema()
	case dataType == "Whole.None", dataType == "OptionSet":
		return openapi3.NewIntegerSchema()
	case dataType == "Decimal", dataType == "FP", dataType == "Currency":
		return openapi3.NewFloat64Schema()
	case dataType == "DateAndTime.DateOnly":
		return openapi3.NewStringSchema().WithFormat("date")
	case dataType == "DateAndTime.DateAndTime":
		return openapi3.NewStringSchema().WithFormat("date-time")
	case dataType == "Multiple", strings.HasPrefix(dataType, "SingleLine."):
		return openapi3.NewStringSchema()
	default:
		return &openapi3.Schema{}
	}
}

func normaliseJSON(params map[string]any) (map[string]any, error) {
	if params == nil {
		return map[string]any{}, nil
	}
	data, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
