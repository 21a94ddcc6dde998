package prompt

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/goliatone/go-controlkit/pkg/manifest"
)

// Labeler resolves a display-name key into the text shown to the user.
type Labeler func(key string) string

// Option configures a Collector.
type Option func(*Collector)

// WithDriver overrides the prompt driver.
func WithDriver(driver Driver) Option {
	return func(c *Collector) {
		if driver != nil {
			c.driver = driver
		}
	}
}

// WithLabeler resolves display-name keys, typically from a resx bundle.
func WithLabeler(labeler Labeler) Option {
	return func(c *Collector) {
		if labeler != nil {
			c.labeler = labeler
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger logr.Logger) Option {
	return func(c *Collector) {
		c.logger = logger
	}
}

// Collector asks for a value for every input property of a control.
type Collector struct {
	driver  Driver
	labeler Labeler
	logger  logr.Logger
}

// NewCollector constructs a Collector backed by survey unless another driver
// is supplied.
func NewCollector(options ...Option) *Collector {
	c := &Collector{
		labeler: func(key string) string { return key },
		logger:  logr.Discard(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.driver == nil {
		c.driver = NewSurveyDriver()
	}
	return c
}

type valueKind int

const (
	kindText valueKind = iota
	kindEnum
	kindBool
	kindInteger
	kindNumber
)

// Collect prompts for each input property in document order and returns the
// parameter payload, validated against the control's parameter schema.
// Optional properties left blank are omitted.
func (c *Collector) Collect(ctx context.Context, control *manifest.Control) (map[string]any, error) {
	if ctx == nil {
		return nil, errors.New("prompt: context is required")
	}
	if control == nil {
		return nil, errors.New("prompt: control is required")
	}

	values := make(map[string]any)
	for _, prop := range control.InputProperties() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		value, ok, err := c.promptProperty(ctx, prop, classify(prop, control.ResolveTypes(prop)))
		if err != nil {
			return nil, fmt.Errorf("prompt: property %q: %w", prop.Name, err)
		}
		if ok {
			values[prop.Name] = value
		}
	}

	if err := control.ValidateParameters(values); err != nil {
		return nil, err
	}
	c.logger.V(1).Info("parameters collected", "control", control.Key(), "count", len(values))
	return values, nil
}

func (c *Collector) promptProperty(ctx context.Context, prop *manifest.Property, kind valueKind) (any, bool, error) {
	label := c.label(prop)
	help := ""
	if prop.DescriptionKey != "" {
		help = c.labeler(prop.DescriptionKey)
	}

	switch kind {
	case kindEnum:
		return c.promptEnum(ctx, prop, label, help)
	case kindBool:
		resp, err := c.driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: prop.DefaultValue == "true",
			Help:    help,
		})
		if err != nil {
			return nil, false, err
		}
		return resp, true, nil
	default:
		return c.promptScalar(ctx, prop, kind, label, help)
	}
}

func (c *Collector) promptEnum(ctx context.Context, prop *manifest.Property, label, help string) (any, bool, error) {
	values := prop.Values().Values()
	if len(values) == 0 {
		return nil, false, ErrNoOptions
	}

	options := make([]string, len(values))
	defaultIndex := 0
	for i, value := range values {
		options[i] = c.labeler(value.DisplayNameKey)
		if value.Content == prop.DefaultValue {
			defaultIndex = i
		}
	}

	idx, err := c.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: defaultIndex,
		Help:         help,
	})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(values) {
		return nil, false, fmt.Errorf("prompt: selection %d out of range", idx)
	}
	return values[idx].Text(), true, nil
}

func (c *Collector) promptScalar(ctx context.Context, prop *manifest.Property, kind valueKind, label, help string) (any, bool, error) {
	input, err := c.driver.Input(ctx, InputConfig{
		Message: label,
		Default: prop.DefaultValue,
		Help:    help,
		Validate: func(answer string) error {
			_, _, err := parseAnswer(prop, kind, answer)
			return err
		},
	})
	if err != nil {
		return nil, false, err
	}

	value, ok, err := parseAnswer(prop, kind, input)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}
	return value, ok, nil
}

// parseAnswer converts a typed answer for prop. A blank answer is accepted
// and omitted unless the property is required.
func parseAnswer(prop *manifest.Property, kind valueKind, answer string) (any, bool, error) {
	trimmed := strings.TrimSpace(answer)
	if trimmed == "" {
		if prop.Required {
			return nil, false, fmt.Errorf("%s is required", prop.Name)
		}
		return nil, false, nil
	}
	value, err := parseScalar(trimmed, kind)
	if err != nil {
		return nil, false, fmt.Errorf("%s expects %s", prop.Name, kindLabel(kind))
	}
	return value, true, nil
}

func (c *Collector) label(prop *manifest.Property) string {
	label := c.labeler(prop.DisplayNameKey)
	if label == "" {
		label = prop.Name
	}
	if prop.Required {
		label += " *"
	}
	return label
}

func parseScalar(input string, kind valueKind) (any, error) {
	switch kind {
	case kindInteger:
		return strconv.ParseInt(input, 10, 64)
	case kindNumber:
		return strconv.ParseFloat(input, 64)
	default:
		return input, nil
	}
}

// classify picks the prompt for a property from its resolved data types. A
// type group collapses to the narrowest kind every member accepts.
func classify(prop *manifest.Property, types []string) valueKind {
	if prop.IsEnum() {
		return kindEnum
	}
	if len(types) == 0 {
		return kindText
	}

	kind := kindOf(types[0])
	for _, t := range types[1:] {
		next := kindOf(t)
		switch {
		case next == kind:
		case isNumeric(next) && isNumeric(kind):
			kind = kindNumber
		default:
			return kindText
		}
	}
	return kind
}

func kindOf(dataType string) valueKind {
	switch dataType {
	case "TwoOptions":
		return kindBool
	case "Whole.None", "OptionSet":
		return kindInteger
	case "Decimal", "FP", "Currency":
		return kindNumber
	default:
		return kindText
	}
}

func kindLabel(kind valueKind) string {
	switch kind {
	case kindInteger:
		return "a whole number"
	case kindNumber:
		return "a number"
	default:
		return "text"
	}
}

func isNumeric(kind valueKind) bool {
	return kind == kindInteger || kind == kindNumber
}
