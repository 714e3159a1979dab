// Package postgres provides a PostgreSQL implementation of the document store.
//
// The schema follows the document service's own tables (users, documents,
// reloads) so docdeck can run against the same database. Connections go
// through database/sql with the pgx driver; migrations are embedded and
// applied with golang-migrate on open.
package postgres
