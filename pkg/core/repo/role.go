// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a string specifying a database connection role. Each role
// has a set of granted privileges which indicates which operations
// may be performed after using it for connecting to a database.
// Passwords of roles are read from a pgpass formatted file whose
// directory is given in the configuration file.
type Role string

// These constants specify the expected database roles. Both roles must
// be created by the database administrator beforehand. This program
// does not manage roles or their passwords.
const (
	// AdminRole owns the bswebN schema. It is used by the db init-dev
	// and db init-prod commands for (re)creating the schema and
	// granting privileges on it to the NormalRole.
	AdminRole Role = "bsadmin"

	// NormalRole is used by the web server and the loans import
	// command. It creates the tables of the bswebN schema during the
	// database initialization and cannot drop the schema itself.
	NormalRole Role = "bsweb"
)
