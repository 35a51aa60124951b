package query

import (
	"net/url"
	"strings"
)

// Params holds the JSON:API query parameters of one request.
type Params struct {
	// Filter maps external field names to raw filter values. It is nil when
	// the request carries no filter parameter and empty for a bare "filter=".
	Filter map[string]string
	// FilterSyntax holds the value of a bare filter parameter that is not a
	// mapping, e.g. "filter=title".
	FilterSyntax string
	// Sort is the raw sort directive.
	Sort string
	// Page maps page keys to raw values. nil when absent.
	Page map[string]string
	// PageSyntax holds the value of a bare page parameter.
	PageSyntax string
	// Fields maps resource types to requested sparse fieldsets.
	Fields map[string][]string
	// Include lists the requested relationship paths.
	Include []string
}

// HasFilter reports whether the request carries a filter parameter.
func (p Params) HasFilter() bool { return p.Filter != nil }

// ParseParams extracts the JSON:API parameters from a query string. Bracket
// keys such as filter[title] and page[size] become map entries.
func ParseParams(values url.Values) Params {
	var p Params
	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		val := vals[len(vals)-1]

		family, member, bracketed := splitBracket(key)
		switch family {
		case "filter":
			if p.Filter == nil {
				p.Filter = map[string]string{}
			}
			if bracketed {
				p.Filter[member] = val
			} else if strings.TrimSpace(val) != "" {
				p.FilterSyntax = val
			}
		case "page":
			if bracketed {
				if p.Page == nil {
					p.Page = map[string]string{}
				}
				p.Page[member] = val
			} else if strings.TrimSpace(val) != "" {
				p.PageSyntax = val
			}
		case "fields":
			if bracketed {
				if p.Fields == nil {
					p.Fields = map[string][]string{}
				}
				p.Fields[member] = splitList(val)
			}
		case "sort":
			if !bracketed {
				p.Sort = val
			}
		case "include":
			if !bracketed {
				p.Include = splitList(val)
			}
		}
	}
	return p
}

// splitBracket splits "filter[title]" into ("filter", "title", true).
func splitBracket(key string) (family, member string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open < 0 || !strings.HasSuffix(key, "]") {
		return key, "", false
	}
	member = key[open+1 : len(key)-1]
	if member == "" {
		return key[:open], "", false
	}
	return key[:open], member, true
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
