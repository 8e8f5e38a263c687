// Package catalog holds the static list of theme templates offered by
// "viewport create". The list is embedded from templates.yaml; each entry
// names the repository to fetch, an optional sub directory that becomes the
// project root, and the literal substitutions applied to its build script.
package catalog
