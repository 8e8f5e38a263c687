package project

import (
	"github.com/spark-tools/viewport/internal/catalog"
	"github.com/spark-tools/viewport/internal/devconfig"
)

// DefaultVersion is offered when asking for the project version.
const DefaultVersion = "1.0.0"

// Context describes the project being created. It is passed by value; steps
// derive a new Context with the With* methods instead of mutating one.
type Context struct {
	WorkingDir string
	Key        string
	Version    string
	Template   catalog.Template
	Dev        *devconfig.Dev
	Confirmed  bool
	Warnings   []string
}

// New returns the initial Context for a run started in workingDir.
func New(workingDir string) Context {
	return Context{WorkingDir: workingDir, Version: DefaultVersion}
}

// WithInfo returns a copy carrying the collected project answers.
func (c Context) WithInfo(key, version string, tmpl catalog.Template, confirmed bool) Context {
	c.Key = key
	c.Version = version
	c.Template = tmpl
	c.Confirmed = confirmed
	return c
}

// WithDev returns a copy carrying the persisted dev settings.
func (c Context) WithDev(d *devconfig.Dev) Context {
	c.Dev = d
	return c
}

// WithWarnings returns a copy with msgs appended to the warnings.
func (c Context) WithWarnings(msgs ...string) Context {
	if len(msgs) == 0 {
		return c
	}
	w := make([]string, 0, len(c.Warnings)+len(msgs))
	w = append(w, c.Warnings...)
	c.Warnings = append(w, msgs...)
	return c
}

// Dir returns the project directory.
func (c Context) Dir() string {
	return Dir(c.WorkingDir, c.Key)
}
