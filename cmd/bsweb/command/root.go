// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the bike
// sharing web project. Commands are organized using the cobra library.
// The root command starts the web server itself while the "db"
// sub-command can be used for the database initialization actions,
// the "loans" sub-command for importing loan records, and the "config"
// sub-command for checking the configuration file.
//
//	./bsweb [-c /path/of/config.yaml] [--listen :8080] # start web server
//	./bsweb db init-dev [-c /path/of/config.yaml]
//	./bsweb db init-prod [-c /path/of/config.yaml]
//	./bsweb loans import /path/of/records.json [-c /path/of/config.yaml]
//	./bsweb config show [-c /path/of/config.yaml]
package command

import (
	"context"
	"fmt"
	"os"

	"github.com/momeni/bikeshare/pkg/adapter/config"
	"github.com/momeni/bikeshare/pkg/adapter/config/cfg1"
	"github.com/momeni/bikeshare/pkg/adapter/restful/gin"
	"github.com/momeni/bikeshare/pkg/adapter/restful/gin/routes"
	"github.com/momeni/bikeshare/pkg/core/log"
	"github.com/momeni/bikeshare/pkg/core/repo"
	"github.com/spf13/cobra"
)

var (
	cfgPath    string
	listenAddr string
)

var rootCmd = &cobra.Command{
	Use:   "bsweb",
	Short: "A bike and scooter sharing loans web service",
	Long: `A bike and scooter sharing loans web service which lets users
start loans of bicycles, scooters, and other transports, extend their
planned end time, and complete or cancel them. Costs are computed by
a pricing engine with per transport type rules, charging late fees for
loans which are returned after their planned end time.
Loans are kept in a PostgreSQL database and exposed by a REST API.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	log.Info(
		ctx, "starting web server", log.String("addr", listenAddr),
		log.Int("pricing-rules", c.Usecases.Loans.Pricing.Table().Types()),
	)
	if err = e.Run(listenAddr); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// loadConfig loads the configuration file and installs its logging
// settings, so all commands log in the same manner.
func loadConfig(ctx context.Context) (*cfg1.Config, error) {
	c, err := config.Load(ctx, cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.Logging.Setup(os.Stderr); err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	return c, nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. Errors are printed
// and cause a non-zero exit code.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
	rootCmd.Flags().StringVarP(
		&listenAddr, "listen", "l", ":8080", "web server address",
	)
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		cfgPath = config.DefaultPath
	}
}
