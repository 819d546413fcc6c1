// Package config holds the operator's runtime settings.
//
// Settings come from three layers applied in order: built-in defaults, an
// optional YAML file, and NODEREFRESH_* environment variables. [Load]
// applies all three and validates the result.
package config
