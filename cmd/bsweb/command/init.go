// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/bikeshare/pkg/core/usecase/migrationuc"
	"github.com/spf13/cobra"
)

const initMessage = `
The database connection information and the schema version are read
from the config file. No changes will be made to the config file.
The passwords of the bsadmin and bsweb roles are read from the .pgpass
file in the pass-dir directory. Both roles must exist beforehand.

If database schema version X.Y.Z is asked in the config file, relevant
tables will be created in the bswebX schema. Existing bswebX schema
will be dropped with all of its contents.`

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
creating empty tables without any transports.
` + initMessage,
	RunE: initDB(func(ctx context.Context, iduc *migrationuc.InitDBUseCase) error {
		return iduc.InitProd(ctx)
	}),
	Args: cobra.NoArgs,
}

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data,
creating tables and filling them with a few sample transports.
` + initMessage,
	RunE: initDB(func(ctx context.Context, iduc *migrationuc.InitDBUseCase) error {
		return iduc.InitDev(ctx)
	}),
	Args: cobra.NoArgs,
}

func initDB(
	f func(ctx context.Context, iduc *migrationuc.InitDBUseCase) error,
) func(*cobra.Command, []string) error {
	return func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()
		c, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		if err = f(ctx, migrationuc.NewInitDB(c)); err != nil {
			return fmt.Errorf("initializing DB: %w", err)
		}
		return nil
	}
}

func init() {
	dbCmd.AddCommand(initProdCmd)
	dbCmd.AddCommand(initDevCmd)
}
