// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts GORM (with its pgx based PostgreSQL driver)
// to the repo.Pool, repo.Conn, and repo.Tx interfaces. Repositories
// which are implemented in its sub-packages unwrap these interfaces
// in order to access the GORM sessions.
package postgres

import "github.com/momeni/bikeshare/pkg/core/model"

// These constants represent the major, minor, and patch components of
// the current database schema semantic version. They must match with
// the latest schN migration package.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}
