// Package source describes where control manifests and cell snapshots come
// from (files, fs.FS entries, URLs) and the Document wrapper loaders return.
// Construction helpers for the loader live in the top-level controlkit package
// to prevent import cycles.
package source
