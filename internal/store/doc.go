// Package store defines the persistence contracts the document pipeline
// relies on: the lazy Relation collection, the Model used to coerce plain
// structures into records, and entity stores. Implementations live under
// internal/platform.
package store
