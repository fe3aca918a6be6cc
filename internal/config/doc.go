// Package config loads and merges mentor configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (MENTOR_PROVIDER, MENTOR_MODEL, MENTOR_FORMAT, etc.)
//  3. Config file ($XDG_CONFIG_HOME/mentor/config.json)
//  4. Built-in defaults
//
// Credentials are never stored in the config file. Provider keys are read
// from the environment, which [LoadDotEnv] can populate from a .env file.
package config
