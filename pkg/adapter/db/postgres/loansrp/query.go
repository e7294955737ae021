// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansrp implements the repo.Loans interface for PostgreSQL
// using GORM. Each query is implemented once as a generic function
// which accepts a *postgres.Conn or a *postgres.Tx.
package loansrp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/momeni/bikeshare/pkg/core/cerr"
	"github.com/momeni/bikeshare/pkg/core/model"
	"gorm.io/gorm/clause"
)

// ActiveTransportIndex is the name of the partial unique index which
// prevents a transport from having more than one active loan.
const ActiveTransportIndex = "loans_active_transport_idx"

// ErrUnknownTransport indicates that a loan refers to a transport
// which does not exist.
var ErrUnknownTransport = errors.New("unknown transport")

type gLoan struct {
	LID         uuid.UUID  `gorm:"primaryKey;type:uuid;column:lid"`
	UserID      uuid.UUID  `gorm:"type:uuid;column:user_id"`
	TransportID uuid.UUID  `gorm:"type:uuid;column:transport_id"`
	StartDate   time.Time  `gorm:"column:start_date"`
	EndDate     *time.Time `gorm:"column:end_date"`
	Cost        float64    `gorm:"column:cost"`
	Status      string     `gorm:"column:status"`
}

func (gl *gLoan) TableName() string {
	return "loans"
}

func (gl *gLoan) Model() (*model.Loan, error) {
	s, err := model.ParseLoanStatus(gl.Status)
	if err != nil {
		return nil, fmt.Errorf("loan %s: %w", gl.LID, err)
	}
	return &model.Loan{
		ID:          gl.LID,
		UserID:      gl.UserID,
		TransportID: gl.TransportID,
		StartDate:   gl.StartDate,
		EndDate:     gl.EndDate,
		Cost:        gl.Cost,
		Status:      s,
	}, nil
}

func Insert[Q postgres.Queryer](ctx context.Context, q Q, l *model.Loan) error {
	res := q.GORM(ctx).Exec(
		`INSERT INTO loans
(lid, user_id, transport_id, start_date, end_date, cost, status)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.UserID, l.TransportID,
		l.StartDate, l.EndDate, l.Cost, string(l.Status),
	)
	switch err := res.Error; {
	case err == nil:
		return nil
	case postgres.IsUniqueViolation(err, ActiveTransportIndex):
		return cerr.Conflict(model.ErrTransportInUse)
	case postgres.IsUniqueViolation(err):
		return cerr.Conflict(fmt.Errorf("loan %s exists", l.ID))
	case postgres.IsForeignKeyViolation(err):
		return cerr.BadRequest(
			fmt.Errorf("transport %s: %w", l.TransportID, ErrUnknownTransport),
		)
	default:
		return fmt.Errorf("insert: %w", err)
	}
}

// Get fetches the lid loan. If forUpdate is true, the loan row is
// locked until the end of the current transaction.
func Get[Q postgres.Queryer](
	ctx context.Context, q Q, lid uuid.UUID, forUpdate bool,
) (*model.Loan, error) {
	gdb := q.GORM(ctx)
	if forUpdate {
		gdb = gdb.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var gls []gLoan
	if err := gdb.Where("lid = ?", lid).Find(&gls).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gls); n != 1 {
		return nil, cerr.NotFound(fmt.Errorf("loan %s is not found", lid))
	}
	return gls[0].Model()
}

func List[Q postgres.Queryer](
	ctx context.Context, q Q, f model.LoanFilter,
) ([]model.Loan, error) {
	gdb := q.GORM(ctx)
	if f.UserID != nil {
		gdb = gdb.Where("user_id = ?", *f.UserID)
	}
	if f.TransportID != nil {
		gdb = gdb.Where("transport_id = ?", *f.TransportID)
	}
	if f.Status != nil {
		gdb = gdb.Where("status = ?", string(*f.Status))
	}
	var gls []gLoan
	if err := gdb.Order("start_date DESC").Find(&gls).Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	ls := make([]model.Loan, 0, len(gls))
	for i := range gls {
		l, err := gls[i].Model()
		if err != nil {
			return nil, err
		}
		ls = append(ls, *l)
	}
	return ls, nil
}

// Save updates the end date, cost, and status of the l loan and
// returns the updated row.
func Save[Q postgres.Queryer](
	ctx context.Context, q Q, l *model.Loan,
) (*model.Loan, error) {
	var gls []gLoan
	res := q.GORM(ctx).Model(&gls).Clauses(clause.Returning{}).Select(
		"end_date", "cost", "status",
	).Where(
		"lid = ?", l.ID,
	).Updates(gLoan{
		EndDate: l.EndDate,
		Cost:    l.Cost,
		Status:  string(l.Status),
	})
	if err := res.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	if n := len(gls); n != 1 {
		return nil, cerr.NotFound(
			fmt.Errorf("expected one row, but got %d", n),
		)
	}
	return gls[0].Model()
}
