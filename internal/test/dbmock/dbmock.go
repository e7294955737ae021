// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbmock opens GORM sessions on top of a go-sqlmock database,
// so the PostgreSQL repositories may be unit tested by expecting the
// exact queries which they should send.
package dbmock

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/stretchr/testify/require"
	gpg "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New creates a mocked database and wraps it as a postgres.Conn.
// All expectations must be met by the end of the t test.
func New(t *testing.T) (*postgres.Conn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "creating sqlmock")
	gdb, err := gorm.Open(gpg.New(gpg.Config{Conn: db}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err, "opening gorm on sqlmock")
	t.Cleanup(func() {
		require.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return &postgres.Conn{DB: gdb}, mock
}

// Tx is similar to New, but wraps the mocked database as a postgres.Tx
// instead of beginning a transaction, so no BEGIN/COMMIT is expected.
func Tx(t *testing.T) (*postgres.Tx, sqlmock.Sqlmock) {
	t.Helper()
	c, mock := New(t)
	return &postgres.Tx{DB: c.DB}, mock
}
