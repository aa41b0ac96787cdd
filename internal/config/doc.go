// Package config holds the run configuration for LinkLens.
//
// Configuration is assembled in three layers: built-in defaults, an
// optional .linklens.yaml file (current directory, then the XDG config
// directory, then the home directory), and CLI flags. The resulting Config
// is validated once before any task starts and then passed through the
// application by value; there is no global configuration state.
package config
