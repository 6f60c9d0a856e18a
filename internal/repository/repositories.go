// Package repository handles all interactions with the database.
//
// It contains raw SQL queries and methods to fetch, persist,
// or update data, abstracting SQL logic away from the service layer.
//
// Repositories are stateless: every method receives the database.Querier
// (normally the request's Session) it should run on, so the service layer
// decides the transaction boundaries.
//
// Queries use "?" placeholders; the Session rebinds them for PostgreSQL.
// Lookup errors are wrapped as "table:<name>:..." so sqlerr.HandleError can
// name the missing entity.
package repository

// Repositories is a container for all repository instances.
type Repositories struct {
	Product *ProductRepository
	User    *UserRepository
}

// NewRepositories constructs the repository container.
func NewRepositories() *Repositories {
	return &Repositories{
		Product: NewProductRepository(),
		User:    NewUserRepository(),
	}
}
