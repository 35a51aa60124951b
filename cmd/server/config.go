package main

import (
	"github.com/phrazzld/jsonapi-utils/internal/config"
	"github.com/phrazzld/jsonapi-utils/internal/document"
	"github.com/phrazzld/jsonapi-utils/internal/pagination"
)

// documentConfig maps the document section of the loaded configuration onto
// the builder's settings.
func documentConfig(cfg config.DocumentConfig) document.Config {
	return document.Config{
		BaseURL:                cfg.BaseURL,
		LinksIncludePagination: cfg.TopLevelLinksIncludePagination,
		MetaIncludeRecordCount: cfg.TopLevelMetaIncludeRecordCount,
		RecordCountKey:         cfg.TopLevelMetaRecordCountKey,
		MetaIncludePageCount:   cfg.TopLevelMetaIncludePageCount,
		PageCountKey:           cfg.TopLevelMetaPageCountKey,
	}
}

func paginationSettings(cfg config.PaginationConfig) pagination.Settings {
	return pagination.Settings{
		DefaultPageSize: cfg.DefaultPageSize,
		MaximumPageSize: cfg.MaximumPageSize,
	}
}
