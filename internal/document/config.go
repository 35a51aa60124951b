package document

// Default meta keys.
const (
	DefaultRecordCountKey = "record_count"
	DefaultPageCountKey   = "page_count"
)

// Config controls the top-level members of built documents.
type Config struct {
	// BaseURL prefixes resource self links and pagination links,
	// e.g. "http://localhost:8080/api". Resource links are omitted when
	// it is empty.
	BaseURL string

	LinksIncludePagination bool

	MetaIncludeRecordCount bool
	RecordCountKey         string

	MetaIncludePageCount bool
	PageCountKey         string
}

func (c Config) recordCountKey() string {
	if c.RecordCountKey == "" {
		return DefaultRecordCountKey
	}
	return c.RecordCountKey
}

func (c Config) pageCountKey() string {
	if c.PageCountKey == "" {
		return DefaultPageCountKey
	}
	return c.PageCountKey
}
