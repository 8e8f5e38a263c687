// Package manifest rewrites the package.json of a freshly fetched template.
// Only the name and version fields change; every other value and the key
// order survive. Comments and trailing commas are tolerated on input. The
// result is checked against an embedded JSON schema and any problems are
// reported as issues instead of errors.
package manifest
