package report

import "github.com/goliatone/go-controlkit/pkg/manifest"

// View flattens a Control into the map/slice shape templates consume.
// Collections keep document order.
func View(control *manifest.Control) map[string]any {
	if control == nil {
		return map[string]any{}
	}

	view := map[string]any{
		"key":            control.Key(),
		"namespace":      control.Namespace,
		"constructor":    control.Constructor,
		"version":        control.Version,
		"semver":         control.SemVer(),
		"displayNameKey": control.DisplayNameKey,
		"descriptionKey": control.DescriptionKey,
		"controlType":    control.ControlType,
		"previewImage":   control.PreviewImage,
	}
	if binding, ok := control.BindingProperty(); ok {
		view["binding"] = binding.Name
	}

	props := make([]map[string]any, 0, control.Properties().Len())
	for _, prop := range control.Properties().All() {
		values := make([]map[string]any, 0, prop.Values().Len())
		for _, value := range prop.Values().All() {
			values = append(values, map[string]any{
				"name":           value.Name,
				"displayNameKey": value.DisplayNameKey,
				"text":           value.Text(),
				"default":        value.IsDefault,
			})
		}
		props = append(props, map[string]any{
			"name":           prop.Name,
			"displayNameKey": prop.DisplayNameKey,
			"usage":          string(prop.Usage),
			"types":          control.ResolveTypes(prop),
			"required":       prop.Required,
			"binding":        prop.IsBinding,
			"default":        prop.DefaultValue,
			"values":         values,
		})
	}
	view["properties"] = props

	groups := make([]map[string]any, 0, control.TypeGroups().Len())
	for _, group := range control.TypeGroups().All() {
		groups = append(groups, map[string]any{
			"name":  group.Name,
			"types": group.Types(),
		})
	}
	view["typeGroups"] = groups

	resources := make([]map[string]any, 0)
	for _, res := range control.Resources() {
		resources = append(resources, map[string]any{
			"kind":  string(res.Kind),
			"path":  res.Path,
			"order": res.Order,
		})
	}
	view["resources"] = resources

	return view
}
