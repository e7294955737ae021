// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration file actions",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Validate the config file and print its normalized settings",
	Long: `Validate the config file and print its normalized settings,
including the default values of the missing optional settings and the
clamped values of the out-of-range settings.`,
	RunE: showConfig,
	Args: cobra.NoArgs,
}

func showConfig(cmd *cobra.Command, _ []string) error {
	c, err := loadConfig(context.Background())
	if err != nil {
		return err
	}
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
