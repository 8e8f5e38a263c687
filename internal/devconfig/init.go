package devconfig

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/url"

	"github.com/jonboulle/clockwork"
	"github.com/spark-tools/viewport/internal/pipeline"
	"github.com/spark-tools/viewport/internal/prompt"
)

// InitState is threaded through the init pipeline.
type InitState struct {
	Dev       Dev
	Confirmed bool
	Backup    string // name of the displaced DEV section, if any
	Path      string // where the store was saved
}

// Initializer collects dev settings and persists them.
type Initializer struct {
	Prompter prompt.Prompter
	// Open is called only after the user confirmed, so a cancelled run
	// never touches the file.
	Open   func() (*File, error)
	Clock  clockwork.Clock
	Out    io.Writer
	Logger *slog.Logger
}

// Steps returns the init pipeline in execution order.
func (in *Initializer) Steps() []pipeline.Step[InitState] {
	return []pipeline.Step[InitState]{
		{Name: "collect dev settings", Run: in.collect},
		{Name: "persist dev section", Run: in.persist},
		{Name: "report", Run: in.report},
	}
}

// Run executes the init pipeline.
func (in *Initializer) Run(ctx context.Context) (InitState, error) {
	if in.Logger == nil {
		in.Logger = slog.New(slog.DiscardHandler)
	}
	if in.Clock == nil {
		in.Clock = clockwork.NewRealClock()
	}
	return pipeline.Run(ctx, in.Logger, in.Steps(), InitState{})
}

func validateBaseURL(v string) error {
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid URL %q: expected e.g. %s", v, DefaultBaseURL)
	}
	return nil
}

func (in *Initializer) collect(_ context.Context, s InitState) (InitState, error) {
	baseURL, err := in.Prompter.Input(prompt.Question{
		Message:  "Confluence Base URL",
		Default:  DefaultBaseURL,
		Validate: validateBaseURL,
	})
	if err != nil {
		return s, err
	}
	username, err := in.Prompter.Input(prompt.Question{Message: "Username", Default: DefaultUsername})
	if err != nil {
		return s, err
	}
	password, err := in.Prompter.Password(prompt.Question{Message: "Password", Default: DefaultPassword})
	if err != nil {
		return s, err
	}
	ok, err := in.Prompter.Confirm("About to write the DEV configuration. Everything ok?", true)
	if err != nil {
		return s, err
	}

	s.Dev = Dev{BaseURL: baseURL, Username: username, Password: password}
	s.Confirmed = ok
	if !ok {
		return s, pipeline.Cancel("dev configuration not confirmed")
	}
	return s, nil
}

func (in *Initializer) persist(_ context.Context, s InitState) (InitState, error) {
	store, err := in.Open()
	if err != nil {
		return s, err
	}

	backup, err := WriteDev(store, s.Dev, in.Clock.Now())
	if err != nil {
		return s, err
	}
	if err := store.Save(); err != nil {
		return s, err
	}

	if backup != "" {
		in.Logger.Debug("previous DEV section backed up", "section", backup)
	}
	s.Backup = backup
	s.Path = store.Path()
	return s, nil
}

func (in *Initializer) report(_ context.Context, s InitState) (InitState, error) {
	fmt.Fprintf(in.Out, "\nSaved %s section to %s\n", SectionDev, s.Path)
	if s.Backup != "" {
		fmt.Fprintf(in.Out, "Previous settings kept as %s\n", s.Backup)
	}
	return s, nil
}
