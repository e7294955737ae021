// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bikeshare/pkg/adapter/config/cfg1"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres/loansrp"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres/transportsrp"
	"github.com/momeni/bikeshare/pkg/adapter/restful/gin/loansrs"
	"github.com/momeni/bikeshare/pkg/core/repo"
)

// BasePath is the common prefix of all REST APIs.
const BasePath = "/api/bsweb/v1"

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// and transactions on demand. These connections/transactions will be
// passed to the repositories later in order to run relevant queries on
// them and accomplish those use cases. Each use case package is named
// like loansuc and each repository package is named like loansrp.
// Register instantiates the "resource" packages, named like loansrs,
// in order to adapt the use cases interfaces with the REST APIs.
// These resources are registered as request handlers using the e
// gin-gonic engine instance.
func Register(e *gin.Engine, p repo.Pool, c *cfg1.Config) error {
	loansUseCase, err := c.NewLoansUseCase(
		p, loansrp.New(), transportsrp.New(),
	)
	if err != nil {
		return fmt.Errorf("creating loans use case: %w", err)
	}
	loansrs.Register(e.Group(BasePath), loansUseCase)
	return nil
}
