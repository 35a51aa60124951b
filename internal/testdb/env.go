//go:build integration

package testdb

import "os"

// urlEnvVars are checked in order for the test database URL.
var urlEnvVars = []string{"JSONAPI_TEST_DB_URL", "JSONAPI_DATABASE_URL", "DATABASE_URL"}

// DatabaseURL returns the first configured test database URL, or "".
func DatabaseURL() string {
	for _, name := range urlEnvVars {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}

// ShouldSkipDatabaseTest reports whether no database is configured.
func ShouldSkipDatabaseTest() bool {
	return DatabaseURL() == ""
}
