// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package migrationuc

import (
	"context"

	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/repo"
)

// ClosablePool is a connection pool which must be closed by the user.
type ClosablePool interface {
	repo.Pool
	Close() error
}

// Settings represents the configuration settings which are required
// for initializing a database.
type Settings interface {
	// ConnectionPool creates a connection pool for the r role,
	// using the connection information and passwords which are
	// kept in the settings.
	ConnectionPool(ctx context.Context, r repo.Role) (ClosablePool, error)

	// NewSchemaRepo instantiates a repo.Schema which may be used
	// for dropping and creating schemas.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer returns a repo.SchemaInitializer which
	// creates tables of the expected schema version using tx.
	SchemaInitializer(tx repo.Tx) (repo.SchemaInitializer, error)

	// SchemaVersion returns the expected database schema version.
	SchemaVersion() model.SemVer
}
