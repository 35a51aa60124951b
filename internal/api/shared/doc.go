// Package shared holds the request decoding, response writing and trace
// context helpers used by handlers and middleware.
package shared
