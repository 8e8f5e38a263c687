package scaffold

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spark-tools/viewport/internal/catalog"
	"github.com/spark-tools/viewport/internal/devconfig"
	"github.com/spark-tools/viewport/internal/pipeline"
	"github.com/spark-tools/viewport/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gulpfile = `var themeName = 'THEME_NAME';
var baseUrl = 'CONFLUENCE_BASE_URL';
var user = 'CONFLUENCE_USERNAME';
var pass = 'CONFLUENCE_PASSWORD';
// upload THEME_NAME to Confluence
`

// fakeFetcher writes a fixed tree instead of downloading one.
type fakeFetcher struct {
	files map[string]string
	err   error
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, repository, dest string) error {
	f.calls = append(f.calls, repository)
	if f.err != nil {
		return f.err
	}
	for name, content := range f.files {
		path := filepath.Join(dest, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}

func sparkToolsTree() map[string]string {
	return map[string]string{
		"README.md":                  "# spark-tools",
		"example/package.json":       `{"name": "example", "version": "0.0.1", "scripts": {"build": "gulp"}}`,
		"example/gulpfile.js":        gulpfile,
		"example/src/theme.vm":       "<html></html>",
		"example-themes/foo/foo.txt": "foo",
	}
}

func newCreator(t *testing.T, input string, fetcher *fakeFetcher) (*Creator, *bytes.Buffer, string) {
	t.Helper()
	var out bytes.Buffer
	rc := filepath.Join(t.TempDir(), ".viewportrc")
	return &Creator{
		Prompter: prompt.NewLine(strings.NewReader(input), &out),
		Fetcher:  fetcher,
		OpenStore: func() (devconfig.Store, error) {
			f, err := devconfig.Open(rc)
			if err != nil {
				return nil, err
			}
			return f, nil
		},
		Out: &out,
	}, &out, rc
}

func hiddenEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var hidden []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			hidden = append(hidden, e.Name())
		}
	}
	return hidden
}

func TestCreateEndToEnd(t *testing.T) {
	work := t.TempDir()
	fetcher := &fakeFetcher{files: sparkToolsTree()}
	c, out, rc := newCreator(t, "my-theme\n2.0.0\n3\ny\n", fetcher)

	store, err := devconfig.Open(rc)
	require.NoError(t, err)
	_, err = devconfig.WriteDev(store, devconfig.Dev{BaseURL: "http://wiki.local", Username: "bob", Password: "p;w"}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.Save())

	pc, err := c.Run(context.Background(), work)
	require.NoError(t, err)
	assert.Equal(t, "simple", pc.Template.ID)
	assert.Equal(t, []string{"github:K15t/spark-tools"}, fetcher.calls)
	assert.Empty(t, pc.Warnings)

	dir := filepath.Join(work, "my-theme")
	assert.FileExists(t, filepath.Join(dir, "src", "theme.vm"))
	assert.NoFileExists(t, filepath.Join(dir, "README.md"))
	assert.NoDirExists(t, filepath.Join(dir, "example"))
	assert.Empty(t, hiddenEntries(t, work))

	pkg, err := os.ReadFile(filepath.Join(dir, "package.json"))
	require.NoError(t, err)
	assert.Contains(t, string(pkg), `"name": "my-theme"`)
	assert.Contains(t, string(pkg), `"version": "2.0.0"`)
	assert.Contains(t, string(pkg), `"build": "gulp"`)

	script, err := os.ReadFile(filepath.Join(dir, "gulpfile.js"))
	require.NoError(t, err)
	assert.Equal(t, `var themeName = 'my-theme';
var baseUrl = 'http://wiki.local';
var user = 'bob';
var pass = 'p;w';
// upload THEME_NAME to Confluence
`, string(script))

	assert.Contains(t, out.String(), "Next steps:")
	assert.Contains(t, out.String(), "1. cd my-theme")
	assert.Contains(t, out.String(), "2. Run 'npm install'")
}

func TestCreateWithoutDevConfigUsesDefaults(t *testing.T) {
	work := t.TempDir()
	c, _, _ := newCreator(t, "my-theme\n\n3\n\n", &fakeFetcher{files: sparkToolsTree()})

	pc, err := c.Run(context.Background(), work)
	require.NoError(t, err)
	assert.Nil(t, pc.Dev)
	assert.Equal(t, "1.0.0", pc.Version)

	script, err := os.ReadFile(filepath.Join(work, "my-theme", "gulpfile.js"))
	require.NoError(t, err)
	assert.Contains(t, string(script), devconfig.DefaultBaseURL)
	assert.Contains(t, string(script), "var user = 'admin';")
}

func TestCreateRepromptsForTakenKey(t *testing.T) {
	work := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(work, "taken"), 0755))
	c, out, _ := newCreator(t, "taken\n1bad\nfresh\n\n3\ny\n", &fakeFetcher{files: sparkToolsTree()})

	pc, err := c.Run(context.Background(), work)
	require.NoError(t, err)
	assert.Equal(t, "fresh", pc.Key)
	assert.Contains(t, out.String(), "folder already exists")
	assert.Contains(t, out.String(), "invalid key format")
	assert.DirExists(t, filepath.Join(work, "fresh"))
}

func TestCreateCancelledLeavesNoTrace(t *testing.T) {
	work := t.TempDir()
	fetcher := &fakeFetcher{files: sparkToolsTree()}
	c, _, _ := newCreator(t, "my-theme\n\n\nn\n", fetcher)

	_, err := c.Run(context.Background(), work)
	require.Error(t, err)
	assert.True(t, pipeline.IsCancelled(err))
	assert.Empty(t, fetcher.calls)
	assert.NoDirExists(t, filepath.Join(work, "my-theme"))
}

func TestCreateFetchErrorStopsPipeline(t *testing.T) {
	work := t.TempDir()
	c, out, _ := newCreator(t, "my-theme\n\n1\ny\n", &fakeFetcher{err: errors.New("network down")})

	_, err := c.Run(context.Background(), work)
	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "fetch template", stepErr.Step)
	assert.Contains(t, err.Error(), "network down")
	assert.NotContains(t, out.String(), "Next steps:")
}

func TestCreateCollectsWarnings(t *testing.T) {
	work := t.TempDir()
	tmpl := catalog.Template{
		ID:          "plain",
		Name:        "Plain",
		Repository:  "github:acme/plain",
		BuildScript: "gulpfile.js",
		Substitutions: []catalog.Substitution{
			{Match: "THEME_NAME", Rule: catalog.RuleProjectKey},
			{Match: "THEME_DISPLAY_NAME", Rule: catalog.RuleDisplayName},
		},
	}
	fetcher := &fakeFetcher{files: map[string]string{
		"package.json": `{"name": "plain"}`,
		"gulpfile.js":  "THEME_NAME\n",
	}}
	c, out, _ := newCreator(t, "Plain_Theme\n\n\ny\n", fetcher)
	c.Templates = []catalog.Template{tmpl}

	pc, err := c.Run(context.Background(), work)
	require.NoError(t, err)
	require.Len(t, pc.Warnings, 2)
	assert.Contains(t, pc.Warnings[0], "package.json: /name")
	assert.Equal(t, "gulpfile.js: placeholder THEME_DISPLAY_NAME not found", pc.Warnings[1])
	assert.Contains(t, out.String(), "Warnings:")
}

func TestCreateWarnsOnLooseVersion(t *testing.T) {
	c, out, _ := newCreator(t, "my-theme\nv1.2\n3\ny\n", &fakeFetcher{files: sparkToolsTree()})
	pc, err := c.Run(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "v1.2", pc.Version)
	require.NotEmpty(t, pc.Warnings)
	assert.Equal(t, `version "v1.2" is not a semantic version, npm expects "1.2.0"`, pc.Warnings[0])
	assert.Contains(t, out.String(), `npm expects "1.2.0"`)
}

func TestVersionWarning(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.0.0", ""},
		{"2.1.0-beta.1", ""},
		{"1.2", `version "1.2" is not a semantic version, npm expects "1.2.0"`},
		{"latest", `version "latest" is not a semantic version`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, versionWarning(tt.version), tt.version)
	}
}

func TestCreateMissingBuildScript(t *testing.T) {
	work := t.TempDir()
	c, _, _ := newCreator(t, "my-theme\n\n\ny\n", &fakeFetcher{files: map[string]string{"package.json": `{}`}})
	c.Templates = []catalog.Template{{ID: "x", Name: "X", Repository: "github:a/b", BuildScript: "gulpfile.js"}}

	_, err := c.Run(context.Background(), work)
	var stepErr *pipeline.StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "apply substitutions", stepErr.Step)
}

func TestMakeProjectDirIsIdempotent(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	dir := filepath.Join(t.TempDir(), "my-theme")

	require.NoError(t, MakeProjectDir(logger, dir))
	require.NoError(t, MakeProjectDir(logger, dir))
	assert.DirExists(t, dir)

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	assert.ErrorIs(t, MakeProjectDir(logger, file), ErrAlreadyExists)

	missingParent := filepath.Join(t.TempDir(), "no", "such")
	err := MakeProjectDir(logger, missingParent)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrAlreadyExists)
}

func TestRelocateNestedSubPath(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	work := t.TempDir()
	dir := filepath.Join(work, "dark")
	require.NoError(t, (&fakeFetcher{files: map[string]string{
		"README.md":                   "root",
		"themes/dark/package.json":    "{}",
		"themes/dark/assets/main.css": "body{}",
		"themes/light/package.json":   "{}",
	}}).Fetch(context.Background(), "", dir))

	require.NoError(t, Relocate(logger, work, "dark", filepath.Join("themes", "dark")))

	assert.FileExists(t, filepath.Join(dir, "package.json"))
	assert.FileExists(t, filepath.Join(dir, "assets", "main.css"))
	assert.NoFileExists(t, filepath.Join(dir, "README.md"))
	assert.NoDirExists(t, filepath.Join(dir, "themes"))
	assert.Empty(t, hiddenEntries(t, work))
}

func TestRelocateMissingSubPathRestoresTree(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	work := t.TempDir()
	dir := filepath.Join(work, "my-theme")
	require.NoError(t, (&fakeFetcher{files: map[string]string{"README.md": "root"}}).Fetch(context.Background(), "", dir))

	err := Relocate(logger, work, "my-theme", "example")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `sub path "example" not found`)

	var relErr *RelocationError
	assert.False(t, errors.As(err, &relErr))
	assert.FileExists(t, filepath.Join(dir, "README.md"))
	assert.Empty(t, hiddenEntries(t, work))
}

func TestRelocateRejectsEscapingSubPath(t *testing.T) {
	work := t.TempDir()
	err := Relocate(slog.New(slog.DiscardHandler), work, "x", "../elsewhere")
	require.Error(t, err)
	assert.Empty(t, hiddenEntries(t, work))
}

func TestRelocationErrorUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := error(&RelocationError{TempDir: "/work/.x-relocate-1", Err: cause})
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "/work/.x-relocate-1")
}

func TestApplySubstitutions(t *testing.T) {
	v := catalog.Values{Key: "my-theme", Version: "2.0.0"}

	t.Run("first occurrence only", func(t *testing.T) {
		got, misses, err := ApplySubstitutions("THEME_NAME/THEME_NAME", []catalog.Substitution{
			{Match: "THEME_NAME", Rule: catalog.RuleProjectKey},
		}, v)
		require.NoError(t, err)
		assert.Empty(t, misses)
		assert.Equal(t, "my-theme/THEME_NAME", got)
	})

	t.Run("all occurrences", func(t *testing.T) {
		got, _, err := ApplySubstitutions("THEME_NAME/THEME_NAME", []catalog.Substitution{
			{Match: "THEME_NAME", Rule: catalog.RuleProjectKey, All: true},
		}, v)
		require.NoError(t, err)
		assert.Equal(t, "my-theme/my-theme", got)
	})

	t.Run("exact literal only", func(t *testing.T) {
		got, misses, err := ApplySubstitutions("theme_name THEME.NAME", []catalog.Substitution{
			{Match: "THEME_NAME", Rule: catalog.RuleProjectKey},
		}, v)
		require.NoError(t, err)
		assert.Equal(t, "theme_name THEME.NAME", got)
		assert.Equal(t, []string{"THEME_NAME"}, misses)
	})

	t.Run("catalog order", func(t *testing.T) {
		got, _, err := ApplySubstitutions("A", []catalog.Substitution{
			{Match: "A", Rule: catalog.RuleProjectVersion},
			{Match: "2.0", Rule: catalog.RuleProjectKey},
		}, v)
		require.NoError(t, err)
		assert.Equal(t, "my-theme.0", got)
	})

	t.Run("unmatched rules are not resolved", func(t *testing.T) {
		got, misses, err := ApplySubstitutions("x", []catalog.Substitution{
			{Match: "NOPE", Rule: catalog.Rule("bogus")},
		}, v)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
		assert.Equal(t, []string{"NOPE"}, misses)
	})
}
