package scaffold

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"
	"github.com/spark-tools/viewport/internal/pipeline"
	"github.com/spark-tools/viewport/internal/project"
	"github.com/spark-tools/viewport/internal/prompt"
)

// question enumerates what create asks, in order.
type question int

const (
	questionKey question = iota
	questionVersion
	questionTemplate
	questionConfirm
)

func (q question) message() string {
	switch q {
	case questionKey:
		return "Project key (used as folder and package name)"
	case questionVersion:
		return "Version"
	case questionTemplate:
		return "Theme template"
	case questionConfirm:
		return "Create the project?"
	}
	return ""
}

func (q question) defaultValue(pc project.Context) string {
	switch q {
	case questionVersion:
		return pc.Version
	case questionTemplate:
		return "1"
	}
	return ""
}

func (q question) validator(pc project.Context) func(string) error {
	if q == questionKey {
		return func(key string) error {
			return project.ValidateKey(pc.WorkingDir, key)
		}
	}
	return nil
}

func (q question) prompt(pc project.Context) prompt.Question {
	return prompt.Question{
		Message:  q.message(),
		Default:  q.defaultValue(pc),
		Validate: q.validator(pc),
	}
}

// CollectProjectInfo asks for key, version and template and a final
// confirmation. Declining cancels the pipeline.
func (c *Creator) CollectProjectInfo(_ context.Context, pc project.Context) (project.Context, error) {
	templates, err := c.templates()
	if err != nil {
		return pc, err
	}
	if len(templates) == 0 {
		return pc, fmt.Errorf("no templates available")
	}

	key, err := c.Prompter.Input(questionKey.prompt(pc))
	if err != nil {
		return pc, err
	}

	version, err := c.Prompter.Input(questionVersion.prompt(pc))
	if err != nil {
		return pc, err
	}

	names := make([]string, len(templates))
	for i, t := range templates {
		names[i] = t.Name
	}
	idx, err := c.Prompter.Select(questionTemplate.prompt(pc), names)
	if err != nil {
		return pc, err
	}
	tmpl := templates[idx]

	next := pc.WithInfo(key, version, tmpl, false)
	if w := versionWarning(version); w != "" {
		c.Logger.Warn(w)
		next = next.WithWarnings(w)
	}
	fmt.Fprintf(c.Out, "\n  %s %s (%s) in %s\n\n", tmpl.Name, key, version, next.Dir())

	ok, err := c.Prompter.Confirm(questionConfirm.message(), true)
	if err != nil {
		return pc, err
	}
	next = next.WithInfo(key, version, tmpl, ok)
	if !ok {
		return next, pipeline.Cancel("project creation not confirmed")
	}
	c.Logger.Debug("project info collected", "key", key, "version", version, "template", tmpl.ID)
	return next, nil
}

// versionWarning describes why version is not strict semver, suggesting the
// normalized form when a loose parse succeeds. Empty when version is valid.
func versionWarning(version string) string {
	if _, err := semver.StrictNewVersion(version); err == nil {
		return ""
	}
	if v, err := semver.NewVersion(version); err == nil {
		return fmt.Sprintf("version %q is not a semantic version, npm expects %q", version, v.String())
	}
	return fmt.Sprintf("version %q is not a semantic version", version)
}
