package config

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Document   DocumentConfig   `mapstructure:"document" validate:"required"`
	Pagination PaginationConfig `mapstructure:"pagination" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel       string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// DocumentConfig controls how documents are rendered.
type DocumentConfig struct {
	// BaseURL prefixes resource and pagination links. Empty means relative links.
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	KeyFormat string `mapstructure:"key_format" validate:"required,oneof=underscored dasherized camelized"`
	Locale    string `mapstructure:"locale" validate:"required,oneof=en es"`

	TopLevelLinksIncludePagination bool   `mapstructure:"top_level_links_include_pagination"`
	TopLevelMetaIncludeRecordCount bool   `mapstructure:"top_level_meta_include_record_count"`
	TopLevelMetaRecordCountKey     string `mapstructure:"top_level_meta_record_count_key" validate:"required"`
	TopLevelMetaIncludePageCount   bool   `mapstructure:"top_level_meta_include_page_count"`
	TopLevelMetaPageCountKey       string `mapstructure:"top_level_meta_page_count_key" validate:"required"`
}

// PaginationConfig selects the default paginator and its page sizes.
type PaginationConfig struct {
	// DefaultPaginator names a registered strategy, or "none".
	DefaultPaginator string `mapstructure:"default_paginator" validate:"required"`
	DefaultPageSize  int    `mapstructure:"default_page_size" validate:"gte=0"`
	// MaximumPageSize of 0 leaves page sizes unbounded.
	MaximumPageSize int `mapstructure:"maximum_page_size" validate:"gte=0"`
}
