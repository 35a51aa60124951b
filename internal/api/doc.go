// Package api serves users and posts as JSON:API documents. Handlers parse
// and validate query parameters, hand collections to the document builder
// and render failures as error documents.
package api
