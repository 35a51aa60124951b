// Package document builds JSON:API success documents from record
// collections, single records and plain keyed-value structures.
//
// Collections run through the request's filter, sort and pagination before
// each surviving record is wrapped as a resource object. Top-level links and
// meta are assembled from the request's pagination context.
package document
