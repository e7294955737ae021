// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// SchemaInitializer interface is exposed by the database schema
// implementation. It provides two methods of InitDevSchema and
// InitProdSchema in order to create new tables and fill an existing
// schema with them, using the development and production suitable
// initial data rows respectively.
// Each implementation should contain the relevant information for
// finding the destination database (such as a database transaction)
// so the SchemaInitializer does not need to take any argument.
type SchemaInitializer interface {
	// InitDevSchema creates tables in an existing database schema
	// and fills them with the development suitable initial data,
	// such as a few sample transports of each known type.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates tables in an existing database schema
	// and fills them with the production suitable initial data.
	InitProdSchema(ctx context.Context) error
}

// Schema interface presents expectations from a repository which allows
// database schema management. This repository creates schema and grant
// relevant privileges on them, so they may be filled by tables during
// the initialization or queried during other use cases.
type Schema interface {
	// Tx takes a Tx interface instance, unwraps it as required,
	// and returns a SchemaTxQueryer interface.
	Tx(Tx) SchemaTxQueryer
}

// SchemaTxQueryer interface lists the schema management operations
// which must be performed in a transaction, so a failed initialization
// leaves no half-created schema behind.
type SchemaTxQueryer interface {
	// DropIfExists drops the `schema` schema and all of its tables if
	// it exists. Caller is responsible to pass a trusted schema name.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates the `schema` schema which must not exist.
	CreateSchema(ctx context.Context, schema string) error

	// UseSchema sets the search_path of the current transaction, so
	// the following table creation statements will target `schema`.
	UseSchema(ctx context.Context, schema string) error

	// GrantPrivileges grants the `role` role the privileges which are
	// required for using (but not altering) tables of `schema`.
	// The `role` role must exist beforehand.
	GrantPrivileges(ctx context.Context, schema string, role Role) error
}
