package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// clone performs a shallow clone of r into dest and drops the .git directory
// so the result is a plain source tree.
func (c *Client) clone(ctx context.Context, r Ref, dest string) error {
	args := []string{"clone", "--depth=1"}
	if r.Ref != "" {
		args = append(args, "--branch", r.Ref)
	}
	args = append(args, r.URL, dest)

	if err := c.git(ctx, "", args...); err != nil {
		return fmt.Errorf("cloning %s: %w", r.URL, err)
	}
	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return fmt.Errorf("removing .git from %s: %w", dest, err)
	}
	return nil
}

func runGit(ctx context.Context, dir string, args ...string) error {
	if err := ensureGit(); err != nil {
		return err
	}
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w\n%s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}

// ensureGit checks that git is available on PATH.
func ensureGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return fmt.Errorf("git is required but not found in PATH")
	}
	return nil
}
