// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package transportsrp_test

import (
	"context"
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/momeni/bikeshare/internal/test/dbmock"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres/transportsrp"
	"github.com/momeni/bikeshare/pkg/core/cerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind(t *testing.T) {
	c, mock := dbmock.New(t)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT "kind" FROM "transports" WHERE tid = $1`,
	)).WillReturnRows(sqlmock.NewRows([]string{"kind"}).AddRow("scooter"))
	k, err := transportsrp.New().Conn(c).Kind(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, "scooter", k)
}

func TestKindOfUnknownTransport(t *testing.T) {
	tx, mock := dbmock.Tx(t)
	mock.ExpectQuery(`FROM "transports"`).
		WillReturnRows(sqlmock.NewRows([]string{"kind"}))
	_, err := transportsrp.New().Tx(tx).Kind(context.Background(), uuid.New())
	assert.Equal(t, http.StatusNotFound, cerr.StatusCode(err))
}
