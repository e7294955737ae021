// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package transportsrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/momeni/bikeshare/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (transports *Repo) Conn(c repo.Conn) repo.TransportsConnQueryer {
	return connQueryer{Conn: c.(*postgres.Conn)}
}

func (cq connQueryer) Kind(ctx context.Context, tid uuid.UUID) (string, error) {
	return Kind(ctx, cq.Conn, tid)
}

type txQueryer struct {
	*postgres.Tx
}

func (transports *Repo) Tx(tx repo.Tx) repo.TransportsTxQueryer {
	return txQueryer{Tx: tx.(*postgres.Tx)}
}

func (tq txQueryer) Kind(ctx context.Context, tid uuid.UUID) (string, error) {
	return Kind(ctx, tq.Tx, tid)
}
