// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansrp

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/momeni/bikeshare/pkg/core/model"
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

func (loans *Repo) Conn(c repo.Conn) repo.LoansConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Insert(ctx context.Context, l *model.Loan) error {
	return Insert(ctx, cq.Conn, l)
}

func (cq connQueryer) Get(ctx context.Context, lid uuid.UUID) (*model.Loan, error) {
	return Get(ctx, cq.Conn, lid, false)
}

func (cq connQueryer) List(ctx context.Context, f model.LoanFilter) ([]model.Loan, error) {
	return List(ctx, cq.Conn, f)
}

func (cq connQueryer) Save(ctx context.Context, l *model.Loan) (*model.Loan, error) {
	return Save(ctx, cq.Conn, l)
}

type txQueryer struct {
	*postgres.Tx
}

func (loans *Repo) Tx(tx repo.Tx) repo.LoansTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Insert(ctx context.Context, l *model.Loan) error {
	return Insert(ctx, tq.Tx, l)
}

func (tq txQueryer) Get(ctx context.Context, lid uuid.UUID) (*model.Loan, error) {
	return Get(ctx, tq.Tx, lid, false)
}

func (tq txQueryer) GetForUpdate(ctx context.Context, lid uuid.UUID) (*model.Loan, error) {
	return Get(ctx, tq.Tx, lid, true)
}

func (tq txQueryer) List(ctx context.Context, f model.LoanFilter) ([]model.Loan, error) {
	return List(ctx, tq.Tx, f)
}

func (tq txQueryer) Save(ctx context.Context, l *model.Loan) (*model.Loan, error) {
	return Save(ctx, tq.Tx, l)
}
