// Package resource maps domain records onto JSON:API resource objects.
//
// A Schema whitelists a resource type's attributes, relationships and
// filters, and carries the KeyCodec that converts between the external
// (wire) key form and the internal key form used by records and queries.
package resource
