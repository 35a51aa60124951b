// Package config loads service configuration with viper from an optional
// config.yaml and JSONAPI_ prefixed environment variables, and validates it
// with validator struct tags.
package config
