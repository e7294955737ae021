// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package migrationuc provides the database initialization use case.
// InitDBUseCase (re)creates the database schema and fills it with the
// initial data which is suitable for development or production
// environments. This package also exposes the Settings interface which
// represents the expectations of this use case from the configuration
// layer, so it may be used without depending on the adapters.
package migrationuc
