// Package redact scrubs credentials, SQL and infrastructure details from
// error text before it is logged or rendered in an error document.
package redact

import (
	"log/slog"
	"regexp"
)

// Placeholders substituted for redacted fragments.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedHostPlaceholder       = "[REDACTED_HOST]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order: connection strings go before hosts and paths
// so the credential placeholder wins.
var rules = []rule{
	{
		regexp.MustCompile(`(?i)(postgres|postgresql|mysql|mongodb)://[^@\s]+@`),
		RedactedCredentialPlaceholder,
	},
	{
		regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`),
		RedactedCredentialPlaceholder,
	},
	{
		// Generated statements quote identifiers, e.g. SELECT COUNT(...) FROM "posts" WHERE ...
		regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP)\b[^;]*?\b(FROM|INTO|SET|TABLE)\b\s+("[^"]*"|\w+)[^;\n]*`),
		RedactedSQLPlaceholder,
	},
	{
		regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`),
		"[STACK_TRACE_REDACTED]",
	},
	{
		regexp.MustCompile(`(/[\w.-]+){2,}`),
		RedactedPathPlaceholder,
	},
	{
		regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		"[REDACTED_EMAIL]",
	},
	{
		regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
	{
		regexp.MustCompile(`\b\d{1,3}(?:\.\d{1,3}){3}(?::\d{1,5})?\b`),
		RedactedHostPlaceholder,
	},
}

// String redacts sensitive information from s.
func String(s string) string {
	if s == "" {
		return s
	}
	for _, r := range rules {
		s = r.pattern.ReplaceAllString(s, r.placeholder)
	}
	return s
}

// Error redacts sensitive information from err's message. A nil error
// yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// ErrorAttr is the redacted "error" log attribute for err.
func ErrorAttr(err error) slog.Attr {
	return slog.String("error", Error(err))
}
