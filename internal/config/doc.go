// Package config loads prismctl settings.
//
// Values are layered with viper, lowest priority first: built-in defaults,
// an optional YAML file (prismctl.yaml or --config), PRISM_* environment
// variables, then command-line flags. Nested keys map to environment
// variables by replacing dots with underscores, so cluster.address becomes
// PRISM_CLUSTER_ADDRESS.
package config
