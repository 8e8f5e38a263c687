package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// FileName is the manifest every template carries at its root.
const FileName = "package.json"

// ErrNotObject is returned when the manifest's top-level value is not an object.
var ErrNotObject = errors.New("manifest is not a JSON object")

var prettyOptions = &pretty.Options{Width: 80, Indent: "  "}

// Rewrite sets name and version in the manifest at path and writes it back
// pretty-printed. The returned result describes schema problems in the
// rewritten document; it is never nil when err is nil.
func Rewrite(path, name, version string) (*ValidationResult, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	out, err := Set(data, name, version)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	return Validate(out)
}

// Set returns data with the top-level name and version replaced. Input may be
// JSONC; output is plain JSON with two-space indentation and a trailing newline.
func Set(data []byte, name, version string) ([]byte, error) {
	doc := jsonc.ToJSON(data)
	if !gjson.ValidBytes(doc) {
		return nil, fmt.Errorf("invalid JSON")
	}
	if !gjson.ParseBytes(doc).IsObject() {
		return nil, ErrNotObject
	}

	doc, err := sjson.SetBytes(doc, "name", name)
	if err != nil {
		return nil, fmt.Errorf("setting name: %w", err)
	}
	doc, err = sjson.SetBytes(doc, "version", version)
	if err != nil {
		return nil, fmt.Errorf("setting version: %w", err)
	}
	return pretty.PrettyOptions(doc, prettyOptions), nil
}
