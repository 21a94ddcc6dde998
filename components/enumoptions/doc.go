// Package enumoptions serves the values of a control's Enum properties as
// JSON option lists, suitable for remote-backed select widgets.
//
// Every Enum input property gets its own route:
//
//	GET {base}/controls/{property}/options?q=hor&limit=10
//
// The response body is {"data":[{"value":"Horizontal","label":"Horizontal"}]}.
package enumoptions
