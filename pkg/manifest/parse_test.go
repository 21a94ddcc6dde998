package manifest_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-controlkit/pkg/manifest"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

func mustParse(t *testing.T, doc string) *manifest.Control {
	t.Helper()
	control, err := manifest.Parse([]byte(doc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return control
}

func TestParse_ControlManifestFixture(t *testing.T) {
	control, err := manifest.Parse(loadFixture(t, "ControlManifest.Input.xml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantAttrs := map[string]string{
		"namespace":        "Acme.Controls",
		"constructor":      "OptionSetPicker",
		"version":          "1.2.0",
		"display-name-key": "OptionSetPicker_Display_Key",
		"description-key":  "OptionSetPicker_Desc_Key",
		"control-type":     "standard",
		"preview-image":    "img/preview.png",
	}
	gotAttrs := map[string]string{
		"namespace":        control.Namespace,
		"constructor":      control.Constructor,
		"version":          control.Version,
		"display-name-key": control.DisplayNameKey,
		"description-key":  control.DescriptionKey,
		"control-type":     control.ControlType,
		"preview-image":    control.PreviewImage,
	}
	if diff := cmp.Diff(wantAttrs, gotAttrs); diff != "" {
		t.Fatalf("control attributes mismatch (-want +got):\n%s", diff)
	}
	if control.Key() != "Acme.Controls.OptionSetPicker" {
		t.Fatalf("unexpected key %q", control.Key())
	}

	wantProps := []string{"value", "shadowValue", "layout", "maxItems", "showIcons", "selectedLabel"}
	if diff := cmp.Diff(wantProps, control.Properties().Keys()); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"numbers", "texts"}, control.TypeGroups().Keys()); diff != "" {
		t.Fatalf("type group order mismatch (-want +got):\n%s", diff)
	}
	texts, ok := control.TypeGroup("texts")
	if !ok {
		t.Fatalf("texts type group missing")
	}
	if diff := cmp.Diff([]string{"SingleLine.Text", "Multiple"}, texts.Types()); diff != "" {
		t.Fatalf("type names mismatch (-want +got):\n%s", diff)
	}

	wantResources := []manifest.Resource{
		{Kind: manifest.ResourceCode, Path: "index.ts", Order: 1},
		{Kind: manifest.ResourceCSS, Path: "css/OptionSetPicker.css", Order: 1},
		{Kind: manifest.ResourceResx, Path: "strings/OptionSetPicker.1033.resx", Version: "1.0.0"},
	}
	if diff := cmp.Diff(wantResources, control.Resources()); diff != "" {
		t.Fatalf("resources mismatch (-want +got):\n%s", diff)
	}

	wantFeatures := []manifest.Feature{
		{Name: "Device.captureImage", Required: true},
		{Name: "Utility", Required: false},
	}
	if diff := cmp.Diff(wantFeatures, control.Features()); diff != "" {
		t.Fatalf("features mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_PropertyAttributes(t *testing.T) {
	control, err := manifest.Parse(loadFixture(t, "ControlManifest.Input.xml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	value, ok := control.Property("value")
	if !ok {
		t.Fatalf("value property missing")
	}
	if !value.Required || value.Usage != manifest.UsageBound || value.OfTypeGroup != "numbers" {
		t.Fatalf("unexpected value property: %+v", value)
	}
	if value.DescriptionKey != "Value_Desc_Key" || value.DisplayNameKey != "Value_Display_Key" {
		t.Fatalf("unexpected keys: %+v", value)
	}
	if value.Values().Len() != 0 {
		t.Fatalf("non-enum property should not carry values")
	}

	shadow, _ := control.Property("shadowValue")
	if shadow.Required {
		t.Fatalf(`required="false" should map to false`)
	}

	maxItems, _ := control.Property("maxItems")
	if maxItems.DefaultValue != "10" {
		t.Fatalf("default-value not read: %q", maxItems.DefaultValue)
	}
}

func TestParse_FirstBoundPropertyWins(t *testing.T) {
	control := mustParse(t, `<control namespace="Acme" constructor="Twin">
  <property name="first" display-name-key="First" of-type="SingleLine.Text" usage="bound" />
  <property name="second" display-name-key="Second" of-type="SingleLine.Text" usage="bound" />
</control>`)

	binding, ok := control.BindingProperty()
	if !ok {
		t.Fatalf("expected a binding property")
	}
	if binding.Name != "first" {
		t.Fatalf("expected first property to bind, got %q", binding.Name)
	}

	first, _ := control.Property("first")
	second, _ := control.Property("second")
	if !first.IsBinding {
		t.Fatalf("first property should be flagged")
	}
	if second.IsBinding {
		t.Fatalf("second bound property must not be flagged")
	}
}

func TestParse_NoBindingProperty(t *testing.T) {
	control := mustParse(t, `<control namespace="Acme" constructor="Inputs">
  <property name="label" display-name-key="Label" of-type="SingleLine.Text" usage="input" />
</control>`)

	if _, ok := control.BindingProperty(); ok {
		t.Fatalf("expected no binding property")
	}
}

func TestParse_EnumDefaults(t *testing.T) {
	cases := []struct {
		name        string
		doc         string
		wantDefault string
	}{
		{
			name: "second of three marked default",
			doc: `<control namespace="Acme" constructor="Enum">
  <property name="size" display-name-key="Size" of-type="Enum" usage="input" default-value="small">
    <value name="small" display-name-key="Small">1</value>
    <value name="medium" display-name-key="Medium" default="true">2</value>
    <value name="large" display-name-key="Large">3</value>
  </property>
</control>`,
			wantDefault: "2",
		},
		{
			name: "last of two marked default wins",
			doc: `<control namespace="Acme" constructor="Enum">
  <property name="size" display-name-key="Size" of-type="Enum" usage="input">
    <value name="small" display-name-key="Small" default="true">1</value>
    <value name="large" display-name-key="Large" default="true">3</value>
  </property>
</control>`,
			wantDefault: "3",
		},
		{
			name: "no default keeps attribute",
			doc: `<control namespace="Acme" constructor="Enum">
  <property name="size" display-name-key="Size" of-type="Enum" usage="input" default-value="1">
    <value name="small" display-name-key="Small">1</value>
    <value name="large" display-name-key="Large" default="yes">3</value>
  </property>
</control>`,
			wantDefault: "1",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			control := mustParse(t, tc.doc)
			size, ok := control.Property("size")
			if !ok {
				t.Fatalf("size property missing")
			}
			if size.DefaultValue != tc.wantDefault {
				t.Fatalf("default value = %q, want %q", size.DefaultValue, tc.wantDefault)
			}
		})
	}
}

func TestParse_EnumValuesInDocumentOrder(t *testing.T) {
	control, err := manifest.Parse(loadFixture(t, "ControlManifest.Input.xml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	layout, _ := control.Property("layout")
	if !layout.IsEnum() {
		t.Fatalf("layout should be an enum")
	}
	if diff := cmp.Diff([]string{"Horizontal", "Vertical", "Grid"}, layout.Values().Keys()); diff != "" {
		t.Fatalf("value order mismatch (-want +got):\n%s", diff)
	}
	vertical, _ := layout.Values().Get("Vertical")
	if vertical.DescriptionKey != "Layout_Vertical_Desc" || vertical.IsDefault {
		t.Fatalf("unexpected vertical value: %+v", vertical)
	}
	def, ok := layout.DefaultEnumValue()
	if !ok || def.Name != "Horizontal" {
		t.Fatalf("unexpected default enum value: %+v", def)
	}
	if layout.DefaultValue != "Horizontal" {
		t.Fatalf("unexpected default value %q", layout.DefaultValue)
	}
}

func TestParse_ValueContentIsVerbatim(t *testing.T) {
	control := mustParse(t, `<control namespace="Acme" constructor="Markup">
  <property name="tone" display-name-key="Tone" of-type="Enum" usage="input">
    <value name="loud" display-name-key="Loud" default="true"><b>LOUD</b> &amp; clear</value>
  </property>
</control>`)

	tone, _ := control.Property("tone")
	loud, ok := tone.Values().Get("loud")
	if !ok {
		t.Fatalf("loud value missing")
	}
	if loud.Content != "<b>LOUD</b> &amp; clear" {
		t.Fatalf("content not verbatim: %q", loud.Content)
	}
	if tone.DefaultValue != loud.Content {
		t.Fatalf("default should take the verbatim content, got %q", tone.DefaultValue)
	}
	if loud.Text() != "LOUD & clear" {
		t.Fatalf("unexpected plain text %q", loud.Text())
	}
}

func TestParse_ValuesIgnoredForNonEnum(t *testing.T) {
	control := mustParse(t, `<control namespace="Acme" constructor="Plain">
  <property name="label" display-name-key="Label" of-type="SingleLine.Text" usage="input">
    <value name="a" display-name-key="A" default="true">x</value>
  </property>
</control>`)

	label, _ := control.Property("label")
	if label.Values().Len() != 0 || label.DefaultValue != "" {
		t.Fatalf("values must only be read for Enum properties: %+v", label)
	}
}

func TestParse_AbsentControlAttributes(t *testing.T) {
	control := mustParse(t, `<control />`)
	if control.Namespace != "" || control.Constructor != "" || control.Version != "" {
		t.Fatalf("expected empty attributes, got %+v", control)
	}
	if control.Properties().Len() != 0 || control.TypeGroups().Len() != 0 {
		t.Fatalf("expected empty collections")
	}
}

func TestParse_PrologAndTrailingMiscAccepted(t *testing.T) {
	control := mustParse(t, `<?xml version="1.0" encoding="utf-8"?>
<!-- generated -->
<!DOCTYPE control>
<control namespace="Acme" constructor="Picker"/>
<!-- end -->
`)
	if control.Key() != "Acme.Picker" {
		t.Fatalf("unexpected key %q", control.Key())
	}
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string][]byte{
		"unclosed root":     loadFixture(t, "unclosed.xml"),
		"not markup":        []byte("namespace=Acme"),
		"empty":             []byte("   "),
		"trailing open tag": []byte(`<control namespace="a" constructor="b"></control><junk>`),
		"second root":       []byte(`<control namespace="a"/><control namespace="b"/>`),
		"stray end tag":     []byte(`<control namespace="a"/></oops>`),
		"text before root":  []byte(`garbage <control namespace="a"/>`),
		"text after root":   []byte(`<control namespace="a"/> trailing`),
		"prolog only":       []byte(`<?xml version="1.0"?><!-- nothing here -->`),
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			control, err := manifest.Parse(doc)
			if err == nil {
				t.Fatalf("expected parse error")
			}
			if control != nil {
				t.Fatalf("no control may be returned on parse failure")
			}
			if !errors.Is(err, manifest.ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			var parseErr *manifest.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
		})
	}
}

func TestParse_RootMustBeControl(t *testing.T) {
	_, err := manifest.Parse(loadFixture(t, "wrong_root.xml"))
	if !errors.Is(err, manifest.ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
	if !strings.Contains(err.Error(), "<widget>") {
		t.Fatalf("error should name the root element: %v", err)
	}

	_, err = manifest.Parse([]byte(`<manifest><resources /></manifest>`))
	if !errors.Is(err, manifest.ErrParse) {
		t.Fatalf("expected ErrParse for manifest without control, got %v", err)
	}
}

func TestParse_BareControlRoot(t *testing.T) {
	control, err := manifest.Parse(loadFixture(t, "bare_control.xml"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if control.Key() != "Acme.Bare" {
		t.Fatalf("unexpected key %q", control.Key())
	}
	if _, ok := control.BindingProperty(); !ok {
		t.Fatalf("expected binding property")
	}
}

func TestParse_MissingRequiredAttributes(t *testing.T) {
	cases := []struct {
		name      string
		doc       string
		element   string
		attribute string
	}{
		{
			name:      "property name",
			doc:       `<control><property display-name-key="K" usage="input" /></control>`,
			element:   "property",
			attribute: "name",
		},
		{
			name:      "property display name key",
			doc:       `<control><property name="p" usage="input" /></control>`,
			element:   "property",
			attribute: "display-name-key",
		},
		{
			name:      "property usage",
			doc:       `<control><property name="p" display-name-key="K" /></control>`,
			element:   "property",
			attribute: "usage",
		},
		{
			name:      "value name",
			doc:       `<control><property name="p" display-name-key="K" usage="input" of-type="Enum"><value display-name-key="V">1</value></property></control>`,
			element:   "value",
			attribute: "name",
		},
		{
			name:      "value display name key",
			doc:       `<control><property name="p" display-name-key="K" usage="input" of-type="Enum"><value name="v">1</value></property></control>`,
			element:   "value",
			attribute: "display-name-key",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			control, err := manifest.Parse([]byte(tc.doc))
			if control != nil {
				t.Fatalf("no control may be returned")
			}
			if !errors.Is(err, manifest.ErrMissingAttribute) {
				t.Fatalf("expected ErrMissingAttribute, got %v", err)
			}
			var attrErr *manifest.AttributeError
			if !errors.As(err, &attrErr) {
				t.Fatalf("expected *AttributeError, got %T", err)
			}
			if attrErr.Element != tc.element || attrErr.Attribute != tc.attribute {
				t.Fatalf("unexpected attribute error: %+v", attrErr)
			}
		})
	}
}

func TestParse_EmptyRequiredAttributeIsPresent(t *testing.T) {
	control := mustParse(t, `<control><property name="p" display-name-key="" usage="input" /></control>`)
	if _, ok := control.Property("p"); !ok {
		t.Fatalf("an empty attribute is still present")
	}
}

func TestParse_DuplicateNames(t *testing.T) {
	cases := map[string]string{
		"property": `<control>
  <property name="p" display-name-key="A" usage="input" />
  <property name="p" display-name-key="B" usage="input" />
</control>`,
		"type-group": `<control>
  <type-group name="g"><type>FP</type></type-group>
  <type-group name="g"><type>Decimal</type></type-group>
</control>`,
		"value": `<control>
  <property name="p" display-name-key="A" usage="input" of-type="Enum">
    <value name="v" display-name-key="V">1</value>
    <value name="v" display-name-key="V">2</value>
  </property>
</control>`,
	}
	for element, doc := range cases {
		t.Run(element, func(t *testing.T) {
			_, err := manifest.Parse([]byte(doc))
			var dupErr *manifest.DuplicateError
			if !errors.As(err, &dupErr) {
				t.Fatalf("expected *DuplicateError, got %v", err)
			}
			if dupErr.Element != element {
				t.Fatalf("unexpected element %q", dupErr.Element)
			}
			if !errors.Is(err, manifest.ErrDuplicateName) {
				t.Fatalf("expected ErrDuplicateName")
			}
		})
	}
}

func TestParse_UnknownUsageKeptVerbatim(t *testing.T) {
	control := mustParse(t, `<control><property name="p" display-name-key="K" usage="sideways" /></control>`)
	prop, _ := control.Property("p")
	if prop.Usage != "sideways" || prop.Usage.Valid() {
		t.Fatalf("unexpected usage %q", prop.Usage)
	}
}

func TestParseReader(t *testing.T) {
	control, err := manifest.ParseReader(strings.NewReader(`<control namespace="Acme" constructor="Reader" />`))
	if err != nil {
		t.Fatalf("parse reader: %v", err)
	}
	if control.Key() != "Acme.Reader" {
		t.Fatalf("unexpected key %q", control.Key())
	}
}
