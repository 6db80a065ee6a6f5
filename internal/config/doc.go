// Package config loads, parses and validates service configuration from
// environment variables, an optional .env file and an optional YAML file.
package config
