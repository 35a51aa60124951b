package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. JSONAPI_SERVER_PORT.
const EnvPrefix = "JSONAPI"

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.allowed_origins", []string{})

	// Registered so that JSONAPI_DATABASE_URL is picked up by Unmarshal.
	v.SetDefault("database.url", "")

	v.SetDefault("document.base_url", "")
	v.SetDefault("document.key_format", "underscored")
	v.SetDefault("document.locale", "en")
	v.SetDefault("document.top_level_links_include_pagination", true)
	v.SetDefault("document.top_level_meta_include_record_count", false)
	v.SetDefault("document.top_level_meta_record_count_key", "record_count")
	v.SetDefault("document.top_level_meta_include_page_count", false)
	v.SetDefault("document.top_level_meta_page_count_key", "page_count")

	v.SetDefault("pagination.default_paginator", "paged")
	v.SetDefault("pagination.default_page_size", 10)
	v.SetDefault("pagination.maximum_page_size", 100)
}

// Load reads configuration from an optional config.yaml in the working
// directory and from JSONAPI_ environment variables.
// Environment variables take precedence over values from config files.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with config.yaml looked up in dir.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cfg against its struct tags and the cross-field rules
// the tags cannot express.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	p := cfg.Pagination
	if p.DefaultPaginator != "none" && p.DefaultPageSize < 1 {
		return fmt.Errorf("config validation failed: pagination.default_page_size must be positive for paginator %q", p.DefaultPaginator)
	}
	if p.MaximumPageSize > 0 && p.DefaultPageSize > p.MaximumPageSize {
		return fmt.Errorf("config validation failed: pagination.default_page_size exceeds maximum_page_size")
	}
	return nil
}
