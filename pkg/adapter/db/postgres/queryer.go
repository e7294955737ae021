// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/bikeshare/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is satisfied by *Conn and *Tx, so repositories may implement
// their queries once as generic functions for both of them.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}

// PostgreSQL error codes which are translated by the repositories.
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

// IsUniqueViolation reports whether err wraps a PostgreSQL error which
// was caused by violating a unique constraint (or index).
// The optional constraint names restrict the accepted constraints.
func IsUniqueViolation(err error, constraints ...string) bool {
	return hasCode(err, UniqueViolation, constraints)
}

// IsForeignKeyViolation is similar to IsUniqueViolation, but checks
// for a violated foreign key constraint.
func IsForeignKeyViolation(err error, constraints ...string) bool {
	return hasCode(err, ForeignKeyViolation, constraints)
}

func hasCode(err error, code string, constraints []string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != code {
		return false
	}
	if len(constraints) == 0 {
		return true
	}
	for _, c := range constraints {
		if pgErr.ConstraintName == c {
			return true
		}
	}
	return false
}

func exec(gdb *gorm.DB, sql string, args ...any) (int64, error) {
	res := gdb.Exec(sql, args...)
	if err := res.Error; err != nil {
		return 0, err
	}
	return res.RowsAffected, nil
}

func query(gdb *gorm.DB, sql string, args ...any) (repo.Rows, error) {
	rows, err := gdb.Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rows}, nil
}
