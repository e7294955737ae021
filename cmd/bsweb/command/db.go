// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import "github.com/spf13/cobra"

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Create the loans schema of the bsweb service in a PostgreSQL
database. The schema is named after the major version of the database
format (e.g., bsweb1) and holds the transports and loans tables.
The admin role creates the schema and grants the normal role, which is
used by the web server, access to its tables.
Use init-dev to also insert a few sample transports for local testing
or init-prod to create empty tables.`,
}

func init() {
	rootCmd.AddCommand(dbCmd)
}
