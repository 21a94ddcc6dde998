// Package manifest builds an immutable object graph from a control manifest
// (the ControlManifest.Input.xml document shipped with every control). The
// resulting Control exposes its properties, enum values, and type groups in
// document order so callers can instantiate nested controls dynamically.
//
// Document order is significant: the first property declaring usage="bound"
// becomes the binding property, and for Enum properties the last value marked
// default="true" supplies the resolved default. Both policies fall out of a
// single ordered pass, which is why the model uses OrderedMap rather than
// plain maps.
//
// Beyond the structural model, Control can describe its input parameters as
// an OpenAPI 3 schema (ParametersSchema) and validate parameter payloads
// against it (ValidateParameters).
package manifest
