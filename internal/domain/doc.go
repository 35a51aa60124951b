// Package domain defines the entities rendered as JSON:API resources and the
// Record abstraction every rendered entity satisfies, along with domain-level
// errors and validation rules.
package domain
