// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/bikeshare/internal/test/dbmock"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/momeni/bikeshare/pkg/core/repo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func TestTxCommits(t *testing.T) {
	c, mock := dbmock.New(t)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE loans").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	err := c.Tx(context.Background(), func(ctx context.Context, tx repo.Tx) error {
		n, err := tx.Exec(ctx, "UPDATE loans SET cost = 0")
		assert.Equal(t, int64(2), n)
		return err
	})
	assert.NoError(t, err)
}

func TestTxRollsBackOnError(t *testing.T) {
	c, mock := dbmock.New(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	err := c.Tx(context.Background(), func(context.Context, repo.Tx) error {
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)
}

func TestTxRollsBackOnPanic(t *testing.T) {
	c, mock := dbmock.New(t)
	mock.ExpectBegin()
	mock.ExpectRollback()
	err := c.Tx(context.Background(), func(context.Context, repo.Tx) error {
		panic("oops")
	})
	assert.EqualError(t, err, "panicked: oops")
}

func TestQueryValues(t *testing.T) {
	c, mock := dbmock.New(t)
	mock.ExpectQuery("SELECT kind, count").WillReturnRows(
		sqlmock.NewRows([]string{"kind", "count"}).
			AddRow("bicycle", int64(2)).
			AddRow("scooter", int64(1)),
	)
	rows, err := c.Query(
		context.Background(),
		"SELECT kind, count(*) FROM transports GROUP BY kind",
	)
	require.NoError(t, err)
	defer rows.Close()
	var got [][]any
	for rows.Next() {
		vals, err := rows.Values()
		require.NoError(t, err)
		got = append(got, vals)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, [][]any{
		{"bicycle", int64(2)},
		{"scooter", int64(1)},
	}, got)
}

func TestViolationChecks(t *testing.T) {
	unique := fmt.Errorf("insert: %w", &pgconn.PgError{
		Code: postgres.UniqueViolation, ConstraintName: "loans_pkey",
	})
	assert.True(t, postgres.IsUniqueViolation(unique))
	assert.True(t, postgres.IsUniqueViolation(unique, "x", "loans_pkey"))
	assert.False(t, postgres.IsUniqueViolation(unique, "x"))
	assert.False(t, postgres.IsForeignKeyViolation(unique))

	fk := &pgconn.PgError{Code: postgres.ForeignKeyViolation}
	assert.True(t, postgres.IsForeignKeyViolation(fk))
	assert.False(t, postgres.IsUniqueViolation(errBoom))
}
