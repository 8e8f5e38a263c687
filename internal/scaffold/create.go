package scaffold

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/lipgloss"
	"github.com/spark-tools/viewport/internal/branding"
	"github.com/spark-tools/viewport/internal/catalog"
	"github.com/spark-tools/viewport/internal/devconfig"
	"github.com/spark-tools/viewport/internal/fetch"
	"github.com/spark-tools/viewport/internal/pipeline"
	"github.com/spark-tools/viewport/internal/project"
	"github.com/spark-tools/viewport/internal/prompt"
)

var (
	bannerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// Creator wires the collaborators of the create pipeline.
type Creator struct {
	Prompter prompt.Prompter
	Fetcher  fetch.Fetcher
	// OpenStore opens the dev-settings store. It may be nil, in which case
	// the build script receives the default dev settings.
	OpenStore func() (devconfig.Store, error)
	// Templates overrides the embedded catalog.
	Templates []catalog.Template
	Out       io.Writer
	Logger    *slog.Logger
}

// Steps returns the create pipeline in execution order.
func (c *Creator) Steps() []pipeline.Step[project.Context] {
	return []pipeline.Step[project.Context]{
		{Name: "welcome", Run: c.Welcome},
		{Name: "load dev config", Run: c.LoadDevConfig},
		{Name: "collect project info", Run: c.CollectProjectInfo},
		{Name: "create project directory", Run: c.CreateProjectDir},
		{Name: "fetch template", Run: c.FetchTemplate},
		{Name: "rewrite manifest", Run: c.RewriteManifest},
		{Name: "apply substitutions", Run: c.ApplySubstitutions},
		{Name: "report", Run: c.Report},
	}
}

// Run executes the create pipeline for a project below workingDir.
func (c *Creator) Run(ctx context.Context, workingDir string) (project.Context, error) {
	if c.Logger == nil {
		c.Logger = slog.New(slog.DiscardHandler)
	}
	if c.Out == nil {
		c.Out = io.Discard
	}
	return pipeline.Run(ctx, c.Logger, c.Steps(), project.New(workingDir))
}

// Welcome prints the product banner.
func (c *Creator) Welcome(_ context.Context, pc project.Context) (project.Context, error) {
	fmt.Fprintln(c.Out, bannerStyle.Render(branding.DisplayName()))
	fmt.Fprintln(c.Out, subtleStyle.Render("Create a new Scroll Viewport theme project."))
	fmt.Fprintln(c.Out)
	return pc, nil
}

// LoadDevConfig reads the DEV section, if any, into the context.
func (c *Creator) LoadDevConfig(_ context.Context, pc project.Context) (project.Context, error) {
	if c.OpenStore == nil {
		return pc, nil
	}
	store, err := c.OpenStore()
	if err != nil {
		return pc, fmt.Errorf("loading dev config: %w", err)
	}
	dev, err := devconfig.ReadDev(store)
	if err != nil {
		return pc, fmt.Errorf("loading dev config: %w", err)
	}
	if dev == nil {
		c.Logger.Debug("no dev config found, using defaults")
		return pc, nil
	}
	c.Logger.Debug("dev config loaded", "baseUrl", dev.BaseURL, "username", dev.Username)
	return pc.WithDev(dev), nil
}

func (c *Creator) templates() ([]catalog.Template, error) {
	if c.Templates != nil {
		return c.Templates, nil
	}
	return catalog.All()
}
