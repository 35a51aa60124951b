// Package apierror builds JSON:API error objects.
//
// Normalize converts any error source (a value exposing an Errors accessor,
// a sequence of error-like entries, or a single entry) into the stable Error
// schema. Validation wraps go-playground validator errors so they normalize
// with JSON Pointer sources and localized messages.
package apierror
