// Package cli defines the Cobra command tree for the viewport CLI. Each file
// registers one top-level command with the root command. Commands only wire
// collaborators and I/O; the pipelines live in scaffold and devconfig.
package cli
