// Package config handles application configuration loading and validation.
//
// Configuration is loaded from config.yml and validated using struct tags.
// Command line flags may override individual values before validation, so
// the bot can also be configured entirely from the command line.
package config
