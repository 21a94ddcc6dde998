package enumoptions

import (
	"sort"
	"strings"

	"github.com/goliatone/go-controlkit/pkg/manifest"
)

// Option is one selectable enum value.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsFor lists the values of an Enum property in document order.
func OptionsFor(prop *manifest.Property, labeler Labeler) []Option {
	if prop == nil || !prop.IsEnum() {
		return nil
	}
	out := make([]Option, 0, prop.Values().Len())
	for _, value := range prop.Values().All() {
		text := value.Text()
		label := ""
		if labeler != nil && value.DisplayNameKey != "" {
			label = strings.TrimSpace(labeler(value.DisplayNameKey))
		}
		if label == "" {
			label = text
		}
		out = append(out, Option{Value: text, Label: label})
	}
	return out
}

// Search filters options by a case-insensitive substring of the label or
// value. Prefix matches sort first, otherwise document order holds.
func Search(options []Option, query string, limit int, opts Options) []Option {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode != EmptySearchAll {
			return nil
		}
		if len(options) <= limit {
			return append([]Option{}, options...)
		}
		return append([]Option{}, options[:limit]...)
	}

	q := strings.ToLower(query)
	matches := make([]matchedOption, 0, len(options))
	for _, option := range options {
		label := strings.ToLower(option.Label)
		value := strings.ToLower(option.Value)
		if !strings.Contains(label, q) && !strings.Contains(value, q) {
			continue
		}
		matches = append(matches, matchedOption{
			option:   option,
			isPrefix: strings.HasPrefix(label, q) || strings.HasPrefix(value, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].isPrefix && !matches[j].isPrefix
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Option, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.option)
	}
	return out
}

type matchedOption struct {
	option   Option
	isPrefix bool
}
