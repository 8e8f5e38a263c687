package scaffold

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spark-tools/viewport/internal/project"
)

// RelocationError reports a relocation that left its temporary directory
// behind. The project directory may be incomplete.
type RelocationError struct {
	TempDir string
	Err     error
}

func (e *RelocationError) Error() string {
	return fmt.Sprintf("relocating template: %v (remove %s by hand)", e.Err, e.TempDir)
}

func (e *RelocationError) Unwrap() error { return e.Err }

// FetchTemplate fetches the template repository into the project directory
// and narrows it to the template's sub path.
func (c *Creator) FetchTemplate(ctx context.Context, pc project.Context) (project.Context, error) {
	tmpl := pc.Template
	fmt.Fprintf(c.Out, "Fetching %s ...\n", tmpl.Repository)
	if err := c.Fetcher.Fetch(ctx, tmpl.Repository, pc.Dir()); err != nil {
		return pc, fmt.Errorf("fetching %s: %w", tmpl.Repository, err)
	}
	if tmpl.SubPath == "" {
		return pc, nil
	}
	return pc, Relocate(c.Logger, pc.WorkingDir, pc.Key, tmpl.SubPath)
}

// Relocate replaces WorkingDir/key with its own subPath subtree. The move goes
// through a hidden sibling directory, which is removed afterwards.
func Relocate(logger *slog.Logger, workingDir, key, subPath string) error {
	if !filepath.IsLocal(subPath) {
		return fmt.Errorf("sub path %q must be relative to the template root", subPath)
	}
	dir := project.Dir(workingDir, key)

	tmp, err := os.MkdirTemp(workingDir, "."+key+"-relocate-*")
	if err != nil {
		return fmt.Errorf("reserving relocation directory: %w", err)
	}
	tree := filepath.Join(tmp, "tree")

	if err := os.Rename(dir, tree); err != nil {
		return discard(logger, tmp, fmt.Errorf("moving fetched tree aside: %w", err))
	}

	src := filepath.Join(tree, subPath)
	info, err := os.Stat(src)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return restore(logger, tmp, tree, dir, fmt.Errorf("sub path %q not found in template", filepath.ToSlash(subPath)))
	case err != nil:
		return restore(logger, tmp, tree, dir, err)
	case !info.IsDir():
		return restore(logger, tmp, tree, dir, fmt.Errorf("sub path %q is not a directory", filepath.ToSlash(subPath)))
	}

	if err := os.Rename(src, dir); err != nil {
		return restore(logger, tmp, tree, dir, fmt.Errorf("moving sub path into place: %w", err))
	}
	logger.Debug("template relocated", "subPath", subPath, "dir", dir)
	return discard(logger, tmp, nil)
}

// restore moves the fetched tree back to dir before discarding tmp.
func restore(logger *slog.Logger, tmp, tree, dir string, cause error) error {
	if err := os.Rename(tree, dir); err != nil {
		logger.Warn("could not restore fetched template", "dir", dir, "err", err)
		return leftover(logger, tmp, cause)
	}
	return discard(logger, tmp, cause)
}

// discard removes tmp and returns cause, or a RelocationError if tmp stays.
func discard(logger *slog.Logger, tmp string, cause error) error {
	if err := os.RemoveAll(tmp); err != nil {
		if cause == nil {
			cause = err
		}
		return leftover(logger, tmp, cause)
	}
	return cause
}

func leftover(logger *slog.Logger, tmp string, cause error) error {
	logger.Warn("relocation left files behind", "path", tmp)
	return &RelocationError{TempDir: tmp, Err: cause}
}
