// Package platform hides the filesystem differences between Unix and Windows
// that matter when writing the dev settings file and extracting templates.
package platform
