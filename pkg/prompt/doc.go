// Package prompt collects control parameter values interactively. The
// Collector walks a manifest's input properties in document order and asks
// for each one through a Driver; the default Driver is backed by survey.
package prompt
