package manifest

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
)

const (
	rootControl  = "control"
	rootManifest = "manifest"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger attaches a logger for diagnostic output.
func WithLogger(logger logr.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Parser turns manifest documents into Control graphs. The zero value is
// ready to use and discards log output.
type Parser struct {
	logger logr.Logger
}

// NewParser constructs a Parser with the supplied options.
func NewParser(options ...Option) *Parser {
	p := &Parser{logger: logr.Discard()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(p)
	}
	return p
}

// Parse builds a Control from manifest markup using a default Parser.
func Parse(data []byte) (*Control, error) {
	return NewParser().Parse(data)
}

// ParseReader reads r to EOF and builds a Control from its content.
func ParseReader(r io.Reader) (*Control, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Reason: "read document", Err: err}
	}
	return Parse(data)
}

// Parse builds a Control from manifest markup. The document must be
// well-formed and rooted at <control>, or at <manifest> wrapping a <control>.
func (p *Parser) Parse(data []byte) (*Control, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Reason: "document is empty"}
	}

	root, err := decodeDocument(data)
	if err != nil {
		return nil, err
	}

	element, err := controlRoot(root)
	if err != nil {
		return nil, err
	}

	control, err := p.buildControl(element)
	if err != nil {
		return nil, err
	}

	p.logger.V(1).Info("manifest parsed",
		"control", control.Key(),
		"properties", control.properties.Len(),
		"typeGroups", control.typeGroups.Len(),
	)
	if control.Version != "" && control.SemVer() == "" {
		p.logger.Info("manifest version is not a semantic version", "control", control.Key(), "version", control.Version)
	}
	return control, nil
}

// decodeDocument decodes the single root element of data. Only the prolog
// (declaration, comments, doctype, whitespace) may precede it and only
// comments, processing instructions and whitespace may follow it.
func decodeDocument(data []byte) (controlElement, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))

	var root controlElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return controlElement{}, &ParseError{Reason: "document has no root element"}
		}
		if err != nil {
			return controlElement{}, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.ProcInst, xml.Comment, xml.Directive:
			continue
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return controlElement{}, &ParseError{Reason: "text before the root element"}
			}
			continue
		case xml.StartElement:
			if err := dec.DecodeElement(&root, &t); err != nil {
				return controlElement{}, &ParseError{Err: err}
			}
		default:
			return controlElement{}, &ParseError{Reason: "unexpected markup before the root element"}
		}
		break
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return root, nil
		}
		if err != nil {
			return controlElement{}, &ParseError{Err: err}
		}

		switch t := tok.(type) {
		case xml.ProcInst, xml.Comment:
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return controlElement{}, &ParseError{Reason: "text after the root element"}
			}
		case xml.StartElement:
			return controlElement{}, &ParseError{Reason: "second root element <" + t.Name.Local + ">"}
		case xml.EndElement:
			return controlElement{}, &ParseError{Reason: "unmatched end element </" + t.Name.Local + ">"}
		default:
			return controlElement{}, &ParseError{Reason: "unexpected markup after the root element"}
		}
	}
}

func controlRoot(root controlElement) (controlElement, error) {
	switch root.XMLName.Local {
	case rootControl:
		return root, nil
	case rootManifest:
		if len(root.Controls) == 0 {
			return controlElement{}, &ParseError{Reason: "<manifest> has no <control> element"}
		}
		if len(root.Controls) > 1 {
			return controlElement{}, &ParseError{Reason: "<manifest> declares more than one <control> element"}
		}
		return root.Controls[0], nil
	default:
		return controlElement{}, &ParseError{Reason: "root element <" + root.XMLName.Local + "> is not <control>"}
	}
}

func (p *Parser) buildControl(el controlElement) (*Control, error) {
	attrs := attributes(el.Attrs)
	control := &Control{
		Namespace:      attrs.get("namespace"),
		Constructor:    attrs.get("constructor"),
		Version:        attrs.get("version"),
		DisplayNameKey: attrs.get("display-name-key"),
		DescriptionKey: attrs.get("description-key"),
		ControlType:    attrs.get("control-type"),
		PreviewImage:   attrs.get("preview-image"),
		properties:     newOrderedMap[*Property](len(el.Properties)),
		typeGroups:     newOrderedMap[*TypeGroup](len(el.TypeGroups)),
	}

	for _, propEl := range el.Properties {
		prop, err := p.buildProperty(propEl)
		if err != nil {
			return nil, err
		}
		if prop.Usage == UsageBound && control.binding == nil {
			prop.IsBinding = true
			control.binding = prop
		}
		if !control.properties.set(prop.Name, prop) {
			return nil, &DuplicateError{Element: "property", Name: prop.Name}
		}
	}

	for _, groupEl := range el.TypeGroups {
		group := buildTypeGroup(groupEl)
		if !control.typeGroups.set(group.Name, group) {
			return nil, &DuplicateError{Element: "type-group", Name: group.Name}
		}
	}

	for _, set := range el.Resources {
		control.resources = append(control.resources, buildResources(set)...)
	}
	for _, usage := range el.FeatureUsage {
		for _, feature := range usage.Features {
			fa := attributes(feature.Attrs)
			control.features = append(control.features, Feature{
				Name:     fa.get("name"),
				Required: fa.flag("required"),
			})
		}
	}

	return control, nil
}

func (p *Parser) buildProperty(el propertyElement) (*Property, error) {
	attrs := attributes(el.Attrs)

	name, ok := attrs.lookup("name")
	if !ok {
		return nil, &AttributeError{Element: "property", Attribute: "name"}
	}
	displayNameKey, ok := attrs.lookup("display-name-key")
	if !ok {
		return nil, &AttributeError{Element: "property", Attribute: "display-name-key", Owner: name}
	}
	usage, ok := attrs.lookup("usage")
	if !ok {
		return nil, &AttributeError{Element: "property", Attribute: "usage", Owner: name}
	}

	prop := &Property{
		Name:           name,
		DisplayNameKey: displayNameKey,
		DescriptionKey: attrs.get("description-key"),
		OfType:         attrs.get("of-type"),
		OfTypeGroup:    attrs.get("of-type-group"),
		Usage:          Usage(usage),
		Required:       attrs.flag("required"),
		DefaultValue:   attrs.get("default-value"),
		values:         newOrderedMap[*Value](0),
	}
	if !prop.Usage.Valid() {
		p.logger.V(1).Info("property declares unknown usage", "property", name, "usage", usage)
	}

	if !prop.IsEnum() {
		return prop, nil
	}

	for _, valueEl := range el.Values {
		value, err := buildValue(valueEl, name)
		if err != nil {
			return nil, err
		}
		if !prop.values.set(value.Name, value) {
			return nil, &DuplicateError{Element: "value", Name: name + "." + value.Name}
		}
	}

	defaults := 0
	for _, value := range prop.values.All() {
		if value.IsDefault {
			prop.DefaultValue = value.Content
			defaults++
		}
	}
	if defaults > 1 {
		p.logger.V(1).Info("enum declares several default values, keeping the last", "property", name, "defaults", defaults)
	}

	return prop, nil
}

func buildValue(el valueElement, owner string) (*Value, error) {
	attrs := attributes(el.Attrs)

	name, ok := attrs.lookup("name")
	if !ok {
		return nil, &AttributeError{Element: "value", Attribute: "name", Owner: owner}
	}
	displayNameKey, ok := attrs.lookup("display-name-key")
	if !ok {
		return nil, &AttributeError{Element: "value", Attribute: "display-name-key", Owner: owner + "." + name}
	}

	return &Value{
		Name:           name,
		DisplayNameKey: displayNameKey,
		DescriptionKey: attrs.get("description-key"),
		IsDefault:      attrs.flag("default"),
		Content:        el.Content,
	}, nil
}

func buildTypeGroup(el typeGroupElement) *TypeGroup {
	group := &TypeGroup{
		Name:  attributes(el.Attrs).get("name"),
		types: make([]string, 0, len(el.Types)),
	}
	for _, t := range el.Types {
		group.types = append(group.types, strings.TrimSpace(t.Text))
	}
	return group
}

func buildResources(el resourcesElement) []Resource {
	out := make([]Resource, 0, len(el.Entries))
	for _, entry := range el.Entries {
		kind := ResourceKind(entry.XMLName.Local)
		switch kind {
		case ResourceCode, ResourceCSS, ResourceResx, ResourceImage:
		default:
			continue
		}
		attrs := attributes(entry.Attrs)
		order, _ := strconv.Atoi(attrs.get("order"))
		out = append(out, Resource{
			Kind:    kind,
			Path:    attrs.get("path"),
			Order:   order,
			Version: attrs.get("version"),
		})
	}
	return out
}

type controlElement struct {
	XMLName      xml.Name
	Attrs        []xml.Attr            `xml:",any,attr"`
	Properties   []propertyElement     `xml:"property"`
	TypeGroups   []typeGroupElement    `xml:"type-group"`
	Resources    []resourcesElement    `xml:"resources"`
	FeatureUsage []featureUsageElement `xml:"feature-usage"`
	Controls     []controlElement      `xml:"control"`
}

type propertyElement struct {
	Attrs  []xml.Attr     `xml:",any,attr"`
	Values []valueElement `xml:"value"`
}

type valueElement struct {
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",innerxml"`
}

type typeGroupElement struct {
	Attrs []xml.Attr    `xml:",any,attr"`
	Types []typeElement `xml:"type"`
}

type typeElement struct {
	Text string `xml:",chardata"`
}

type resourcesElement struct {
	Entries []resourceElement `xml:",any"`
}

type resourceElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
}

type featureUsageElement struct {
	Features []featureElement `xml:"uses-feature"`
}

type featureElement struct {
	Attrs []xml.Attr `xml:",any,attr"`
}

// attributeSet indexes an element's attributes by local name, keeping the
// first occurrence.
type attributeSet map[string]string

func attributes(attrs []xml.Attr) attributeSet {
	set := make(attributeSet, len(attrs))
	for _, attr := range attrs {
		if _, exists := set[attr.Name.Local]; exists {
			continue
		}
		set[attr.Name.Local] = attr.Value
	}
	return set
}

func (s attributeSet) lookup(name string) (string, bool) {
	value, ok := s[name]
	return value, ok
}

func (s attributeSet) get(name string) string {
	return s[name]
}

func (s attributeSet) flag(name string) bool {
	return s[name] == "true"
}
