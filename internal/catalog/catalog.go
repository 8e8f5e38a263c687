package catalog

import (
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spark-tools/viewport/internal/devconfig"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed templates.yaml
var rawTemplates []byte

// DefaultBuildScript is used when a template does not name one.
const DefaultBuildScript = "gulpfile.js"

// Rule selects how the replacement for a substitution is computed.
type Rule string

// Known substitution rules.
const (
	RuleProjectKey     Rule = "project-key"
	RuleProjectVersion Rule = "project-version"
	RuleDisplayName    Rule = "display-name"
	RuleDevBaseURL     Rule = "dev-base-url"
	RuleDevUsername    Rule = "dev-username"
	RuleDevPassword    Rule = "dev-password"
)

// Values are the project facts a rule may draw on.
type Values struct {
	Key     string
	Version string
	Dev     *devconfig.Dev
}

var titleCaser = cases.Title(language.English)

// Resolve computes the replacement text. Dev rules fall back to the
// documented defaults when no dev settings are available.
func (r Rule) Resolve(v Values) (string, error) {
	dev := devconfig.DefaultDev()
	if v.Dev != nil {
		dev = *v.Dev
	}

	switch r {
	case RuleProjectKey:
		return v.Key, nil
	case RuleProjectVersion:
		return v.Version, nil
	case RuleDisplayName:
		return titleCaser.String(strings.NewReplacer("-", " ", "_", " ").Replace(v.Key)), nil
	case RuleDevBaseURL:
		return dev.BaseURL, nil
	case RuleDevUsername:
		return dev.Username, nil
	case RuleDevPassword:
		return dev.Password, nil
	default:
		return "", fmt.Errorf("unknown substitution rule %q", r)
	}
}

func (r Rule) valid() bool {
	_, err := r.Resolve(Values{})
	return err == nil
}

// Substitution replaces the literal Match in the build script. Only the
// first occurrence is replaced unless All is set.
type Substitution struct {
	Match string `yaml:"match"`
	Rule  Rule   `yaml:"rule"`
	All   bool   `yaml:"all,omitempty"`
}

// Template is one catalog entry.
type Template struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Repository    string         `yaml:"repository"`
	SubPath       string         `yaml:"sub_path,omitempty"`
	BuildScript   string         `yaml:"build_script,omitempty"`
	Substitutions []Substitution `yaml:"substitutions,omitempty"`
	Instructions  []string       `yaml:"instructions,omitempty"`
}

type document struct {
	Templates []Template `yaml:"templates"`
}

// Parse decodes and checks a catalog document.
func Parse(data []byte) ([]Template, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}
	if len(doc.Templates) == 0 {
		return nil, fmt.Errorf("catalog has no templates")
	}

	seen := make(map[string]bool)
	for i := range doc.Templates {
		t := &doc.Templates[i]
		if t.ID == "" {
			return nil, fmt.Errorf("template #%d: missing id", i+1)
		}
		if seen[t.ID] {
			return nil, fmt.Errorf("template %q: duplicate id", t.ID)
		}
		seen[t.ID] = true

		if t.Name == "" {
			t.Name = t.ID
		}
		if t.Repository == "" {
			return nil, fmt.Errorf("template %q: missing repository", t.ID)
		}
		if t.SubPath != "" {
			t.SubPath = filepath.FromSlash(strings.Trim(t.SubPath, "/"))
			if !filepath.IsLocal(t.SubPath) {
				return nil, fmt.Errorf("template %q: sub_path %q must be a relative path inside the repository", t.ID, t.SubPath)
			}
		}
		if t.BuildScript == "" {
			t.BuildScript = DefaultBuildScript
		}
		for _, s := range t.Substitutions {
			if s.Match == "" {
				return nil, fmt.Errorf("template %q: substitution with empty match", t.ID)
			}
			if !s.Rule.valid() {
				return nil, fmt.Errorf("template %q: unknown substitution rule %q", t.ID, s.Rule)
			}
		}
	}
	return doc.Templates, nil
}

var (
	loadOnce  sync.Once
	templates []Template
	loadErr   error
)

// All returns the embedded catalog in display order.
func All() ([]Template, error) {
	loadOnce.Do(func() {
		templates, loadErr = Parse(rawTemplates)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]Template, len(templates))
	copy(out, templates)
	return out, nil
}
