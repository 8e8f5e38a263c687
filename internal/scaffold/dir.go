package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spark-tools/viewport/internal/project"
)

// ErrAlreadyExists is returned when the project path is taken by something
// other than a directory.
var ErrAlreadyExists = errors.New("already exists and is not a directory")

// CreateProjectDir creates WorkingDir/Key.
func (c *Creator) CreateProjectDir(_ context.Context, pc project.Context) (project.Context, error) {
	return pc, MakeProjectDir(c.Logger, pc.Dir())
}

// MakeProjectDir creates dir. An existing directory is accepted, so calling
// it twice succeeds.
func MakeProjectDir(logger *slog.Logger, dir string) error {
	err := os.Mkdir(dir, 0755)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("creating project directory: %w", err)
	}

	info, statErr := os.Stat(dir)
	if statErr != nil || !info.IsDir() {
		return fmt.Errorf("%s: %w", dir, ErrAlreadyExists)
	}
	logger.Debug("project directory already exists", "dir", dir)
	return nil
}
