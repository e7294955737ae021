// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres/transportsrp"
	"github.com/momeni/bikeshare/pkg/core/log"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/repo"
	"github.com/spf13/cobra"
)

var loansCmd = &cobra.Command{
	Use:   "loans",
	Short: "Loans management actions",
}

var loansImportCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Import loans from a JSON file",
	Long: `Import loans from a JSON file which contains an array of loan
records, like the following one:

	[{"version": 1, "id": "...", "user_id": "...", "transport_id": "...",
	  "start_date": "2024-05-17T09:30:00Z", "end_date": null,
	  "cost": 0, "status": "ACTIVE"}]

All records are validated before insertion and either all of them are
imported or none of them. Referenced transports must exist already.`,
	RunE: importLoans,
	Args: cobra.ExactArgs(1),
}

func importLoans(_ *cobra.Command, args []string) error {
	ctx := context.Background()
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading loan records: %w", err)
	}
	var records []model.LoanRecord
	if err = json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parsing loan records: %w", err)
	}
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc, err := c.NewLoansUseCase(p, loansrp.New(), transportsrp.New())
	if err != nil {
		return fmt.Errorf("creating loans use case: %w", err)
	}
	n, err := uc.Import(ctx, records)
	if err != nil {
		return fmt.Errorf("importing loans: %w", err)
	}
	log.Info(ctx, "imported loans", log.Int("count", n))
	return nil
}

var (
	exportUser      string
	exportTransport string
	exportStatus    string
)

var loansExportCmd = &cobra.Command{
	Use:   "export [FILE]",
	Short: "Export loans as a JSON file",
	Long: `Export loans as a JSON array of loan records, in the same format
which is accepted by the import command. Records are written to FILE,
or to the standard output if FILE is omitted. The --user, --transport,
and --status flags restrict the exported loans.`,
	RunE: exportLoans,
	Args: cobra.MaximumNArgs(1),
}

func exportFilter() (f model.LoanFilter, err error) {
	if exportUser != "" {
		id, err := uuid.Parse(exportUser)
		if err != nil {
			return f, fmt.Errorf("parsing user ID: %w", err)
		}
		f.UserID = &id
	}
	if exportTransport != "" {
		id, err := uuid.Parse(exportTransport)
		if err != nil {
			return f, fmt.Errorf("parsing transport ID: %w", err)
		}
		f.TransportID = &id
	}
	if exportStatus != "" {
		s := model.LoanStatus(exportStatus)
		f.Status = &s
	}
	return f, nil
}

func exportLoans(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	f, err := exportFilter()
	if err != nil {
		return err
	}
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	uc, err := c.NewLoansUseCase(p, loansrp.New(), transportsrp.New())
	if err != nil {
		return fmt.Errorf("creating loans use case: %w", err)
	}
	records, err := uc.Export(ctx, f)
	if err != nil {
		return fmt.Errorf("exporting loans: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling loan records: %w", err)
	}
	data = append(data, '\n')
	if len(args) == 0 {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err = os.WriteFile(args[0], data, 0o600); err != nil {
		return fmt.Errorf("writing loan records: %w", err)
	}
	log.Info(ctx, "exported loans", log.Int("count", len(records)))
	return nil
}

func init() {
	loansExportCmd.Flags().StringVar(
		&exportUser, "user", "", "only export loans of this user ID",
	)
	loansExportCmd.Flags().StringVar(
		&exportTransport, "transport", "",
		"only export loans of this transport ID",
	)
	loansExportCmd.Flags().StringVar(
		&exportStatus, "status", "",
		"only export loans with this status (e.g., COMPLETED)",
	)
	loansCmd.AddCommand(loansImportCmd, loansExportCmd)
	rootCmd.AddCommand(loansCmd)
}
