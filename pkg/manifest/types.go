package manifest

// Usage declares how the host binds a property.
type Usage string

const (
	UsageBound  Usage = "bound"
	UsageInput  Usage = "input"
	UsageOutput Usage = "output"
)

// Valid reports whether u is one of the declared usages.
func (u Usage) Valid() bool {
	switch u {
	case UsageBound, UsageInput, UsageOutput:
		return true
	default:
		return false
	}
}

// TypeEnum is the of-type value that enables enumerated values.
const TypeEnum = "Enum"

// ResourceKind identifies an entry under <resources>.
type ResourceKind string

const (
	ResourceCode  ResourceKind = "code"
	ResourceCSS   ResourceKind = "css"
	ResourceResx  ResourceKind = "resx"
	ResourceImage ResourceKind = "img"
)

// Resource is a file the control bundles.
type Resource struct {
	Kind    ResourceKind `json:"kind"`
	Path    string       `json:"path"`
	Order   int          `json:"order,omitempty"`
	Version string       `json:"version,omitempty"`
}

// Feature is a host capability declared under <feature-usage>.
type Feature struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// Control is the root of a parsed manifest. Attribute fields are empty when
// the manifest omits them.
type Control struct {
	Namespace      string
	Constructor    string
	Version        string
	DisplayNameKey string
	DescriptionKey string
	ControlType    string
	PreviewImage   string

	properties *OrderedMap[*Property]
	typeGroups *OrderedMap[*TypeGroup]
	resources  []Resource
	features   []Feature
	binding    *Property
}

// Key returns the namespace-qualified constructor name.
func (c *Control) Key() string {
	if c == nil {
		return ""
	}
	if c.Namespace == "" {
		return c.Constructor
	}
	return c.Namespace + "." + c.Constructor
}

// Properties returns the properties keyed by name, in document order.
func (c *Control) Properties() *OrderedMap[*Property] {
	if c == nil {
		return nil
	}
	return c.properties
}

// Property looks up a property by name.
func (c *Control) Property(name string) (*Property, bool) {
	return c.Properties().Get(name)
}

// TypeGroups returns the type groups keyed by name, in document order.
func (c *Control) TypeGroups() *OrderedMap[*TypeGroup] {
	if c == nil {
		return nil
	}
	return c.typeGroups
}

// TypeGroup looks up a type group by name.
func (c *Control) TypeGroup(name string) (*TypeGroup, bool) {
	return c.TypeGroups().Get(name)
}

// BindingProperty returns the first property declared with usage="bound".
func (c *Control) BindingProperty() (*Property, bool) {
	if c == nil || c.binding == nil {
		return nil, false
	}
	return c.binding, true
}

// InputProperties returns the properties the host supplies values for
// (usage bound or input), in document order.
func (c *Control) InputProperties() []*Property {
	var out []*Property
	for _, prop := range c.Properties().All() {
		if prop.Usage == UsageBound || prop.Usage == UsageInput {
			out = append(out, prop)
		}
	}
	return out
}

// ResolveTypes returns the data types p accepts: the members of its type
// group when it declares one, otherwise its single of-type.
func (c *Control) ResolveTypes(p *Property) []string {
	if p == nil {
		return nil
	}
	if p.OfTypeGroup != "" {
		if group, ok := c.TypeGroup(p.OfTypeGroup); ok {
			return group.Types()
		}
	}
	if p.OfType != "" {
		return []string{p.OfType}
	}
	return nil
}

// Resources returns the bundled resources in document order.
func (c *Control) Resources() []Resource {
	if c == nil || len(c.resources) == 0 {
		return nil
	}
	return append([]Resource(nil), c.resources...)
}

// Features returns the declared feature usage in document order.
func (c *Control) Features() []Feature {
	if c == nil || len(c.features) == 0 {
		return nil
	}
	return append([]Feature(nil), c.features...)
}

// Property describes one configurable input or output of a control.
type Property struct {
	Name           string
	DisplayNameKey string
	DescriptionKey string
	OfType         string
	OfTypeGroup    string
	Usage          Usage
	Required       bool

	// DefaultValue is the default-value attribute, replaced by the content of
	// the last default-marked value for Enum properties.
	DefaultValue string

	// IsBinding is set on the control's first bound property only.
	IsBinding bool

	values *OrderedMap[*Value]
}

// IsEnum reports whether the property declares of-type="Enum".
func (p *Property) IsEnum() bool {
	return p != nil && p.OfType == TypeEnum
}

// Values returns the enum members keyed by name. It is empty unless the
// property is an Enum.
func (p *Property) Values() *OrderedMap[*Value] {
	if p == nil {
		return nil
	}
	return p.values
}

// DefaultEnumValue returns the value that supplied DefaultValue.
func (p *Property) DefaultEnumValue() (*Value, bool) {
	var found *Value
	for _, value := range p.Values().All() {
		if value.IsDefault {
			found = value
		}
	}
	return found, found != nil
}

// Value is one member of an Enum property.
type Value struct {
	Name           string
	DisplayNameKey string
	DescriptionKey string
	IsDefault      bool

	// Content is the element's inner markup, verbatim.
	Content string
}

// Text returns Content reduced to plain text.
func (v *Value) Text() string {
	if v == nil {
		return ""
	}
	return plainText(v.Content)
}

// TypeGroup is a named set of alternative data types.
type TypeGroup struct {
	Name  string
	types []string
}

// Types returns the declared type names in document order.
func (g *TypeGroup) Types() []string {
	if g == nil || len(g.types) == 0 {
		return nil
	}
	return append([]string(nil), g.types...)
}
