// Package postgres implements the store interfaces on PostgreSQL through the
// pgx database/sql driver.
//
// Relations are built lazily: every builder call returns a new Relation and
// SQL is only generated and executed by Count and Load. Eager-loaded includes
// become LEFT JOINs, and rows duplicated by those joins are collapsed with a
// primary key sub-select.
package postgres
