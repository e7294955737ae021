// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansuc_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/internal/test/memrepo"
	"github.com/momeni/bikeshare/pkg/core/cerr"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/pricing"
	"github.com/momeni/bikeshare/pkg/core/usecase/loansuc"
	"github.com/stretchr/testify/suite"
)

const delta = 1e-9

var t0 = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

type LoansUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Store *memrepo.Store
	Clock *manualClock
	UC    *loansuc.UseCase

	bike, scooter uuid.UUID
	user          uuid.UUID
}

func TestLoansUseCaseTestSuite(t *testing.T) {
	suite.Run(t, &LoansUseCaseTestSuite{Ctx: context.Background()})
}

func (luts *LoansUseCaseTestSuite) SetupTest() {
	luts.Store = memrepo.New()
	luts.Clock = &manualClock{now: t0}
	luts.bike, luts.scooter, luts.user = uuid.New(), uuid.New(), uuid.New()
	luts.Store.AddTransport(luts.bike, "bicycle")
	luts.Store.AddTransport(luts.scooter, "scooter")
	e, err := pricing.New(pricing.StandardTable())
	luts.Require().NoError(err)
	luts.UC, err = loansuc.New(
		luts.Store, memrepo.Loans{}, memrepo.Transports{}, e,
		loansuc.WithClock(luts.Clock),
	)
	luts.Require().NoError(err)
}

func (luts *LoansUseCaseTestSuite) requireStatus(err error, code int) {
	luts.T().Helper()
	luts.Require().Error(err)
	luts.Require().Equal(code, cerr.StatusCode(err), "err=%v", err)
}

func (luts *LoansUseCaseTestSuite) start(tid uuid.UUID) *model.Loan {
	luts.T().Helper()
	l, err := luts.UC.Start(luts.Ctx, luts.user, tid)
	luts.Require().NoError(err)
	return l
}

func (luts *LoansUseCaseTestSuite) TestNewValidatesOptions() {
	e := luts.UC.Engine()
	_, err := loansuc.New(luts.Store, memrepo.Loans{}, memrepo.Transports{}, nil)
	luts.Error(err, "engine is mandatory")
	_, err = loansuc.New(
		luts.Store, memrepo.Loans{}, memrepo.Transports{}, e,
		loansuc.WithMaxDuration(time.Hour), loansuc.WithMaxDuration(time.Hour),
	)
	luts.Error(err, "repeated option")
	_, err = loansuc.New(
		luts.Store, memrepo.Loans{}, memrepo.Transports{}, e,
		loansuc.WithMaxDuration(-time.Hour),
	)
	luts.Error(err)
	_, err = loansuc.New(
		luts.Store, memrepo.Loans{}, memrepo.Transports{}, e,
		loansuc.WithClock(nil),
	)
	luts.Error(err)
}

func (luts *LoansUseCaseTestSuite) TestStartAndComplete() {
	l := luts.start(luts.bike)
	luts.True(l.IsActive())
	luts.Equal(t0, l.StartDate)
	luts.Nil(l.EndDate)
	luts.Zero(l.Cost)

	luts.Clock.Advance(45 * time.Minute)
	c, err := luts.UC.Complete(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.Equal(model.LoanStatusCompleted, c.Status)
	luts.Require().NotNil(c.EndDate)
	luts.Equal(t0.Add(45*time.Minute), *c.EndDate)
	luts.InDelta(5.5, c.Cost, delta)

	stored, ok := luts.Store.Loan(l.ID)
	luts.Require().True(ok)
	luts.Equal(*c, stored)

	_, err = luts.UC.Complete(luts.Ctx, l.ID)
	luts.requireStatus(err, http.StatusConflict)
	var ite *model.InvalidTransitionError
	luts.True(errors.As(err, &ite))
	luts.Equal(model.TransitionComplete, ite.Transition)

	_, err = luts.UC.Cancel(luts.Ctx, l.ID)
	luts.requireStatus(err, http.StatusConflict)
	stored, _ = luts.Store.Loan(l.ID)
	luts.Equal(*c, stored, "rejected transitions change nothing")
}

func (luts *LoansUseCaseTestSuite) TestStartRejections() {
	_, err := luts.UC.Start(luts.Ctx, luts.user, uuid.New())
	luts.requireStatus(err, http.StatusNotFound)

	l := luts.start(luts.scooter)
	_, err = luts.UC.Start(luts.Ctx, uuid.New(), luts.scooter)
	luts.requireStatus(err, http.StatusConflict)
	luts.ErrorIs(err, model.ErrTransportInUse)
	luts.Equal(1, luts.Store.Count())

	_, err = luts.UC.Cancel(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.start(luts.scooter)
	luts.Equal(2, luts.Store.Count())
}

func (luts *LoansUseCaseTestSuite) TestUnknownLoan() {
	lid := uuid.New()
	_, err := luts.UC.Get(luts.Ctx, lid)
	luts.requireStatus(err, http.StatusNotFound)
	_, err = luts.UC.Complete(luts.Ctx, lid)
	luts.requireStatus(err, http.StatusNotFound)
	_, err = luts.UC.Quote(luts.Ctx, lid)
	luts.requireStatus(err, http.StatusNotFound)
}

func (luts *LoansUseCaseTestSuite) TestCancel() {
	l := luts.start(luts.bike)
	luts.Clock.Advance(5 * time.Minute)
	c, err := luts.UC.Cancel(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.True(c.IsCancelled())
	luts.Nil(c.EndDate)
	luts.Zero(c.Cost)

	for _, f := range []func(context.Context, uuid.UUID) (*model.Loan, error){
		luts.UC.Complete, luts.UC.Cancel,
	} {
		_, err = f(luts.Ctx, l.ID)
		luts.requireStatus(err, http.StatusConflict)
	}
	_, err = luts.UC.Extend(luts.Ctx, l.ID, t0.Add(time.Hour))
	luts.requireStatus(err, http.StatusConflict)

	_, err = luts.UC.Quote(luts.Ctx, l.ID)
	luts.requireStatus(err, http.StatusConflict)
	luts.ErrorIs(err, loansuc.ErrUndefinedDuration)
}

func (luts *LoansUseCaseTestSuite) TestExtendThenCompleteLate() {
	l := luts.start(luts.scooter)
	luts.Clock.Advance(10 * time.Minute)
	planned := t0.Add(time.Hour)
	e, err := luts.UC.Extend(luts.Ctx, l.ID, planned)
	luts.Require().NoError(err)
	luts.True(e.IsActive())
	luts.Require().NotNil(e.EndDate)
	luts.Equal(planned, *e.EndDate)
	luts.InDelta(1.0+60*0.15, e.Cost, delta, "provisional cost")

	luts.Clock.Advance(80 * time.Minute) // 30 minutes after plan
	q, err := luts.UC.Quote(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.Equal("scooter", q.TransportType)
	luts.Equal(int64(90), q.DurationMinutes, "elapsed minutes are quoted")
	luts.Equal(int64(30), q.OverdueMinutes)
	luts.InDelta(1.0+90*0.15, q.Cost, delta)
	luts.InDelta(0.5*(1.0+90*0.15), q.LateFee, delta)
	luts.InDelta(30*0.3, q.OverdueCost, delta)
	luts.InDelta(1.0+90*0.15+30*0.3, q.Total, delta)

	c, err := luts.UC.Complete(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.True(c.IsCompleted())
	luts.Equal(t0.Add(90*time.Minute), *c.EndDate)
	luts.InDelta(q.Total, c.Cost, delta, "quote total is charged")

	q, err = luts.UC.Quote(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.Equal(int64(90), q.DurationMinutes)
	luts.Zero(q.OverdueMinutes)
	luts.InDelta(c.Cost, q.Total, delta, "completed loans quote their cost")
}

func (luts *LoansUseCaseTestSuite) TestExtendThenCompleteInTime() {
	l := luts.start(luts.bike)
	_, err := luts.UC.Extend(luts.Ctx, l.ID, t0.Add(2*time.Hour))
	luts.Require().NoError(err)
	luts.Clock.Advance(time.Hour)

	q, err := luts.UC.Quote(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.Equal(int64(60), q.DurationMinutes, "not the planned 120 minutes")
	luts.InDelta(7.0, q.Cost, delta)
	luts.InDelta(7.0, q.Total, delta)
	luts.Zero(q.OverdueMinutes)
	luts.Zero(q.LateFee)
	luts.Zero(q.OverdueCost)

	c, err := luts.UC.Complete(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.InDelta(q.Total, c.Cost, delta, "early return pays actual minutes")
}

func (luts *LoansUseCaseTestSuite) TestExtendValidation() {
	l := luts.start(luts.bike)
	luts.Clock.Advance(time.Hour)

	_, err := luts.UC.Extend(luts.Ctx, l.ID, t0.Add(-time.Minute))
	luts.requireStatus(err, http.StatusBadRequest)
	_, err = luts.UC.Extend(luts.Ctx, l.ID, luts.Clock.now.Add(25*time.Hour))
	luts.requireStatus(err, http.StatusBadRequest)

	stored, _ := luts.Store.Loan(l.ID)
	luts.Nil(stored.EndDate)
	luts.Zero(stored.Cost)

	e, err := luts.UC.Extend(luts.Ctx, l.ID, luts.Clock.now.Add(24*time.Hour))
	luts.Require().NoError(err, "limit is inclusive")
	luts.True(e.IsActive())
}

func (luts *LoansUseCaseTestSuite) TestQuoteActiveLoan() {
	l := luts.start(luts.bike)
	luts.Clock.Advance(30*time.Minute + 40*time.Second)
	q, err := luts.UC.Quote(luts.Ctx, l.ID)
	luts.Require().NoError(err)
	luts.Equal(int64(30), q.DurationMinutes)
	luts.InDelta(4.0, q.Cost, delta)
	luts.Equal(pricing.Rule{
		BaseRate: 1.0, PerMinuteRate: 0.1, Currency: "USD",
	}, q.Rule)
	luts.Zero(q.LateFee)
	luts.InDelta(4.0, q.Total, delta)

	stored, _ := luts.Store.Loan(l.ID)
	luts.Zero(stored.Cost, "quoting does not change the loan")
}

func (luts *LoansUseCaseTestSuite) TestList() {
	a := luts.start(luts.bike)
	luts.Clock.Advance(time.Minute)
	other := uuid.New()
	b, err := luts.UC.Start(luts.Ctx, other, luts.scooter)
	luts.Require().NoError(err)
	_, err = luts.UC.Cancel(luts.Ctx, b.ID)
	luts.Require().NoError(err)

	all, err := luts.UC.List(luts.Ctx, model.LoanFilter{})
	luts.Require().NoError(err)
	luts.Require().Len(all, 2)
	luts.Equal(b.ID, all[0].ID, "newest first")

	ls, err := luts.UC.List(luts.Ctx, model.LoanFilter{UserID: &luts.user})
	luts.Require().NoError(err)
	luts.Require().Len(ls, 1)
	luts.Equal(a.ID, ls[0].ID)

	cancelled := model.LoanStatusCancelled
	ls, err = luts.UC.List(luts.Ctx, model.LoanFilter{Status: &cancelled})
	luts.Require().NoError(err)
	luts.Require().Len(ls, 1)
	luts.Equal(b.ID, ls[0].ID)

	bad := model.LoanStatus("LOST")
	_, err = luts.UC.List(luts.Ctx, model.LoanFilter{Status: &bad})
	luts.requireStatus(err, http.StatusBadRequest)
}

func (luts *LoansUseCaseTestSuite) TestImport() {
	end := t0.Add(45 * time.Minute)
	good := model.LoanRecord{
		Version:     model.LoanRecordVersion,
		ID:          uuid.NewString(),
		UserID:      luts.user.String(),
		TransportID: luts.bike.String(),
		StartDate:   t0,
		EndDate:     &end,
		Cost:        5.5,
		Status:      "COMPLETED",
	}
	bad := good
	bad.ID = uuid.NewString()
	bad.Status = "UNKNOWN"

	n, err := luts.UC.Import(luts.Ctx, []model.LoanRecord{good, bad})
	luts.requireStatus(err, http.StatusBadRequest)
	luts.Zero(n)
	luts.Zero(luts.Store.Count())

	dup := good
	n, err = luts.UC.Import(luts.Ctx, []model.LoanRecord{good, dup})
	luts.Error(err)
	luts.Zero(n)
	luts.Zero(luts.Store.Count(), "failed imports are rolled back")

	n, err = luts.UC.Import(luts.Ctx, []model.LoanRecord{good})
	luts.Require().NoError(err)
	luts.Equal(1, n)
	l, err := luts.UC.Get(luts.Ctx, uuid.MustParse(good.ID))
	luts.Require().NoError(err)
	luts.Equal(good, l.Record())
}

func (luts *LoansUseCaseTestSuite) TestTransitionIsCheckedBeforeInputs() {
	l := luts.start(luts.bike)
	_, err := luts.UC.Complete(luts.Ctx, l.ID)
	luts.Require().NoError(err)

	_, err = luts.UC.Extend(luts.Ctx, l.ID, t0.Add(-time.Hour))
	luts.requireStatus(err, http.StatusConflict)
	var ite *model.InvalidTransitionError
	luts.Require().True(errors.As(err, &ite))
	luts.Equal(model.TransitionExtend, ite.Transition)
	luts.EqualError(ite, "Loan cannot be extended")
}

func (luts *LoansUseCaseTestSuite) TestExport() {
	a := luts.start(luts.bike)
	luts.Clock.Advance(45 * time.Minute)
	_, err := luts.UC.Complete(luts.Ctx, a.ID)
	luts.Require().NoError(err)
	b := luts.start(luts.bike)

	rs, err := luts.UC.Export(luts.Ctx, model.LoanFilter{UserID: &luts.user})
	luts.Require().NoError(err)
	luts.Require().Len(rs, 2)
	luts.Equal(b.ID.String(), rs[0].ID)
	luts.Equal("ACTIVE", rs[0].Status)
	luts.Equal(a.ID.String(), rs[1].ID)
	luts.Equal("COMPLETED", rs[1].Status)
	luts.InDelta(5.5, rs[1].Cost, delta)
	luts.Equal(model.LoanRecordVersion, rs[1].Version)

	bad := model.LoanStatus("LOST")
	_, err = luts.UC.Export(luts.Ctx, model.LoanFilter{Status: &bad})
	luts.requireStatus(err, http.StatusBadRequest)

	s := memrepo.New()
	s.AddTransport(luts.bike, "bicycle")
	e, err := pricing.New(pricing.StandardTable())
	luts.Require().NoError(err)
	uc, err := loansuc.New(s, memrepo.Loans{}, memrepo.Transports{}, e)
	luts.Require().NoError(err)
	n, err := uc.Import(luts.Ctx, rs[1:])
	luts.Require().NoError(err)
	luts.Equal(1, n, "exported records may be imported")
	l, ok := s.Loan(a.ID)
	luts.Require().True(ok)
	luts.True(l.IsCompleted())
}
