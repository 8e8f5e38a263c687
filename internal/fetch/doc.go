// Package fetch materializes a remote template repository into a local
// directory. Repositories are named with short locators such as
// "github:owner/repo#branch"; hosted providers are downloaded as archives and
// extracted with the top-level directory stripped, "direct:" locators ending
// in .git are cloned with git.
package fetch
