// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package schemarp

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/momeni/bikeshare/pkg/core/repo"
)

func ident(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

func DropIfExists[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "DROP SCHEMA IF EXISTS "+ident(schema)+" CASCADE")
	if err != nil {
		return fmt.Errorf("drop schema: %w", err)
	}
	return nil
}

func CreateSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "CREATE SCHEMA "+ident(schema))
	if err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// UseSchema changes the search_path until the end of the current
// transaction, hence, it is only useful with a Tx.
func UseSchema[Q postgres.Queryer](
	ctx context.Context, q Q, schema string,
) error {
	_, err := q.Exec(ctx, "SET LOCAL search_path TO "+ident(schema))
	if err != nil {
		return fmt.Errorf("set search_path: %w", err)
	}
	return nil
}

func GrantPrivileges[Q postgres.Queryer](
	ctx context.Context, q Q, schema string, role repo.Role,
) error {
	_, err := q.Exec(
		ctx,
		"GRANT USAGE, CREATE ON SCHEMA "+ident(schema)+
			" TO "+ident(string(role)),
	)
	if err != nil {
		return fmt.Errorf("grant: %w", err)
	}
	return nil
}
