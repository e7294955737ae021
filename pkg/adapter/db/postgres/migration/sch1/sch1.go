// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sch1 provides the Initializer type for the database schema
// major version 1. It creates the transports and loans tables in the
// current schema (see the search_path) and fills them with the
// development or production suitable initial data.
package sch1

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/momeni/bikeshare/pkg/core/repo"
)

// These constants indicate the major, minor, and patch components of
// the schema which is created by this package.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

var (
	//go:embed schema.sql
	schemaSQL string

	//go:embed dev.sql
	devSQL string
)

// Initializer wraps a transaction of the destination database. The
// caller is responsible to commit that transaction.
type Initializer struct {
	tx repo.Tx
}

func New(tx repo.Tx) *Initializer {
	return &Initializer{tx: tx}
}

// InitDevSchema creates tables and inserts a few sample transports of
// each known type (and one unknown type which is priced by default).
func (i *Initializer) InitDevSchema(ctx context.Context) error {
	if err := i.createTables(ctx); err != nil {
		return err
	}
	if _, err := i.tx.Exec(ctx, devSQL); err != nil {
		return fmt.Errorf("inserting sample transports: %w", err)
	}
	return nil
}

// InitProdSchema creates empty tables.
func (i *Initializer) InitProdSchema(ctx context.Context) error {
	return i.createTables(ctx)
}

func (i *Initializer) createTables(ctx context.Context) error {
	if _, err := i.tx.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// MajorVersion returns the Major constant. It may be called with a
// nil receiver.
func (i *Initializer) MajorVersion() uint {
	return Major
}
