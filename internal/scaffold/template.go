package scaffold

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spark-tools/viewport/internal/catalog"
	"github.com/spark-tools/viewport/internal/manifest"
	"github.com/spark-tools/viewport/internal/project"
)

// RewriteManifest sets name and version in the project's package.json.
// Schema problems are kept as warnings.
func (c *Creator) RewriteManifest(_ context.Context, pc project.Context) (project.Context, error) {
	path := filepath.Join(pc.Dir(), manifest.FileName)
	result, err := manifest.Rewrite(path, pc.Key, pc.Version)
	if err != nil {
		return pc, err
	}

	var warnings []string
	for _, issue := range result.Issues {
		c.Logger.Warn("package.json does not match the schema", "path", issue.Path, "issue", issue.Message)
		warnings = append(warnings, fmt.Sprintf("%s: %s", manifest.FileName, issue))
	}
	return pc.WithWarnings(warnings...), nil
}

// ApplySubstitutions fills the template's placeholders into its build script.
func (c *Creator) ApplySubstitutions(_ context.Context, pc project.Context) (project.Context, error) {
	tmpl := pc.Template
	path := filepath.Join(pc.Dir(), tmpl.BuildScript)

	info, err := os.Stat(path)
	if err != nil {
		return pc, fmt.Errorf("reading build script: %w", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return pc, fmt.Errorf("reading build script: %w", err)
	}

	values := catalog.Values{Key: pc.Key, Version: pc.Version, Dev: pc.Dev}
	out, misses, err := ApplySubstitutions(string(data), tmpl.Substitutions, values)
	if err != nil {
		return pc, fmt.Errorf("%s: %w", tmpl.BuildScript, err)
	}
	if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
		return pc, fmt.Errorf("writing build script: %w", err)
	}

	var warnings []string
	for _, m := range misses {
		c.Logger.Warn("placeholder not found in build script", "file", tmpl.BuildScript, "placeholder", m)
		warnings = append(warnings, fmt.Sprintf("%s: placeholder %s not found", tmpl.BuildScript, m))
	}
	return pc.WithWarnings(warnings...), nil
}

// ApplySubstitutions replaces each substitution's literal in content, in
// order. Only the first occurrence is replaced unless the substitution sets
// All. Replacement values are resolved only for literals that occur. The
// literals that did not occur are returned as misses; content is unchanged
// for them.
func ApplySubstitutions(content string, subs []catalog.Substitution, v catalog.Values) (string, []string, error) {
	var misses []string
	for _, s := range subs {
		if !strings.Contains(content, s.Match) {
			misses = append(misses, s.Match)
			continue
		}
		repl, err := s.Rule.Resolve(v)
		if err != nil {
			return content, misses, err
		}
		n := 1
		if s.All {
			n = -1
		}
		content = strings.Replace(content, s.Match, repl, n)
	}
	return content, misses, nil
}
