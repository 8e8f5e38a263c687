// Package prompt asks the user questions on a terminal. The Prompter interface
// is what the pipelines depend on; Line is the line-oriented implementation
// used by the CLI and by tests with scripted input.
package prompt
