// Package report renders plain-text descriptions of parsed control manifests
// through pongo2 templates. The default template is embedded; callers can
// point the engine at their own template directory or fs.FS.
package report
