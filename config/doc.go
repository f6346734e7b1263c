// Package config loads provider configuration from YAML files, .env
// files, and RESTDATA_-prefixed environment variables. Environment
// variables take precedence over file values.
package config
