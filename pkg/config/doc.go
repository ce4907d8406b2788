// Package config loads resolution settings from embedded defaults, a project
// file (TOML or YAML), TARGETENV_* environment variables and command-line
// overrides, in increasing order of precedence.
package config
