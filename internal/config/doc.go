// Package config manages tool settings stored at ~/.viewport/config.yaml,
// such as the dev-config store location and the archive base URL of each
// repository provider.
package config
