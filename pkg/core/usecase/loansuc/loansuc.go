// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansuc contains the loans UseCase which supports the
// loans related use cases, namely:
//  1. Starting a loan of a transport,
//  2. Completing, cancelling, or extending an active loan,
//  3. Quoting the fare of a loan,
//  4. Importing and exporting loans as versioned records.
package loansuc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/core/cerr"
	"github.com/momeni/bikeshare/pkg/core/log"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/pricing"
	"github.com/momeni/bikeshare/pkg/core/repo"
)

// ErrUndefinedDuration indicates that a loan has no measurable
// duration, hence, it may not be quoted.
var ErrUndefinedDuration = errors.New("loan has no defined duration")

// UseCase represents a loans use case. It holds a database connection
// pool, the loans and transports repository instances (to be guided
// with the DB pool), the pricing engine, and the loans use case
// specific settings.
type UseCase struct {
	pool         repo.Pool
	loansrp      repo.Loans
	transportsrp repo.Transports
	engine       *pricing.Engine

	clock       model.Clock
	newID       func() uuid.UUID
	maxDuration time.Duration
}

// Quotation describes the fare of a loan as it stands at quoting time.
// Active loans are quoted for the minutes elapsed since their start.
// LateFee and OverdueCost are non-zero only if the loan has a planned
// end (see model.Loan.Extend) which is passed already. The LateFee is
// informational and is not charged. Total is the amount which would be
// charged by completing an active loan now, or the charged cost of an
// inactive loan.
type Quotation struct {
	Loan            model.Loan
	TransportType   string
	Rule            pricing.Rule
	DurationMinutes int64
	Cost            float64
	OverdueMinutes  int64
	LateFee         float64
	OverdueCost     float64
	Total           float64
}

// New instantiates a loans use case.
// Required parameters are passed individually and optional ones are
// passed as a series of functional options.
func New(
	p repo.Pool,
	l repo.Loans,
	t repo.Transports,
	e *pricing.Engine,
	opts ...Option,
) (*UseCase, error) {
	if e == nil {
		return nil, errors.New("nil pricing engine")
	}
	uc := &UseCase{pool: p, loansrp: l, transportsrp: t, engine: e}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	if uc.clock == nil {
		uc.clock = model.ClockFunc(time.Now)
	}
	if uc.newID == nil {
		uc.newID = uuid.New
	}
	if uc.maxDuration == 0 {
		uc.maxDuration = 24 * time.Hour
	}
	return uc, nil
}

// Engine returns the pricing engine of this use case.
func (loans *UseCase) Engine() *pricing.Engine {
	return loans.engine
}

// Start use case creates an active loan of the tid transport for the
// uid user, starting now. The transport must exist and must not have
// another active loan.
func (loans *UseCase) Start(
	ctx context.Context, uid, tid uuid.UUID,
) (loan *model.Loan, err error) {
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			if _, err := loans.transportsrp.Tx(tx).Kind(ctx, tid); err != nil {
				return err
			}
			q := loans.loansrp.Tx(tx)
			active := model.LoanStatusActive
			ls, err := q.List(ctx, model.LoanFilter{
				TransportID: &tid, Status: &active,
			})
			if err != nil {
				return fmt.Errorf("listing active loans: %w", err)
			}
			if len(ls) > 0 {
				return cerr.Conflict(model.ErrTransportInUse)
			}
			l := model.NewLoan(loans.newID(), uid, tid, loans.clock.Now())
			if err := q.Insert(ctx, &l); err != nil {
				return err
			}
			loan = &l
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	log.Info(ctx, "loan is started", log.Valuer("loan", *loan))
	return loan, nil
}

// Get use case fetches the lid loan.
func (loans *UseCase) Get(
	ctx context.Context, lid uuid.UUID,
) (loan *model.Loan, err error) {
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		loan, err = loans.loansrp.Conn(c).Get(ctx, lid)
		return err
	})
	if err != nil {
		loan = nil
	}
	return
}

// List use case fetches loans which match the f filter.
func (loans *UseCase) List(
	ctx context.Context, f model.LoanFilter,
) (ls []model.Loan, err error) {
	if f.Status != nil {
		if err := f.Status.Validate(); err != nil {
			return nil, cerr.BadRequest(err)
		}
	}
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		ls, err = loans.loansrp.Conn(c).List(ctx, f)
		return err
	})
	if err != nil {
		ls = nil
	}
	return
}

// Complete use case completes the lid loan as of now and charges its
// fare. If the loan had a planned end which is passed, the overdue
// minutes are charged on top of the regular fare, so the charged cost
// equals the Total of a Quote which is taken at the same time.
func (loans *UseCase) Complete(
	ctx context.Context, lid uuid.UUID,
) (*model.Loan, error) {
	return loans.transit(ctx, lid, model.TransitionComplete, func(
		ctx context.Context, tx repo.Tx, l model.Loan,
	) (model.Loan, error) {
		now := loans.clock.Now()
		c, err := l.Complete(now)
		if err != nil {
			return c, err
		}
		kind, err := loans.transportsrp.Tx(tx).Kind(ctx, l.TransportID)
		if err != nil {
			return c, err
		}
		return c.UpdateCost(loans.fare(l, kind, now).Total), nil
	})
}

// Cancel use case cancels the lid loan. Its cost is kept unchanged.
func (loans *UseCase) Cancel(
	ctx context.Context, lid uuid.UUID,
) (*model.Loan, error) {
	return loans.transit(ctx, lid, model.TransitionCancel, func(
		_ context.Context, _ repo.Tx, l model.Loan,
	) (model.Loan, error) {
		return l.Cancel()
	})
}

// Extend use case plans the lid loan to be returned at newEnd and
// updates its cost to the fare of the planned duration. The newEnd
// may not precede the loan start and may not be further than the
// configured maximum duration from now.
func (loans *UseCase) Extend(
	ctx context.Context, lid uuid.UUID, newEnd time.Time,
) (*model.Loan, error) {
	return loans.transit(ctx, lid, model.TransitionExtend, func(
		ctx context.Context, tx repo.Tx, l model.Loan,
	) (model.Loan, error) {
		e, err := l.Extend(newEnd)
		if err != nil {
			return e, err
		}
		if newEnd.Before(l.StartDate) {
			return e, cerr.BadRequest(fmt.Errorf(
				"end (%s) precedes the loan start (%s)",
				newEnd.Format(time.RFC3339), l.StartDate.Format(time.RFC3339),
			))
		}
		limit := loans.maxDuration.Minutes()
		if model.IsOvertime(newEnd, limit, loans.clock) {
			return e, cerr.BadRequest(fmt.Errorf(
				"end (%s) is more than %v ahead",
				newEnd.Format(time.RFC3339), loans.maxDuration,
			))
		}
		kind, err := loans.transportsrp.Tx(tx).Kind(ctx, l.TransportID)
		if err != nil {
			return e, err
		}
		minutes, _ := e.DurationInMinutes(loans.clock)
		return e.UpdateCost(loans.engine.LoanCost(float64(minutes), kind)), nil
	})
}

type transitFunc func(
	ctx context.Context, tx repo.Tx, l model.Loan,
) (model.Loan, error)

// transit locks the lid loan, computes its next version using f, and
// saves it, all in one transaction. The t transition must be allowed
// by the current loan status before f is called, so f may validate its
// inputs knowing that the loan is active. Invalid transitions which are
// reported by f are wrapped as conflicts too.
func (loans *UseCase) transit(
	ctx context.Context, lid uuid.UUID, t model.Transition, f transitFunc,
) (loan *model.Loan, err error) {
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := loans.loansrp.Tx(tx)
			l, err := q.GetForUpdate(ctx, lid)
			if err != nil {
				return err
			}
			if !l.Allows(t) {
				return cerr.Conflict(&model.InvalidTransitionError{
					Transition: t,
				})
			}
			next, err := f(ctx, tx, *l)
			if err != nil {
				return cerr.Transition(err)
			}
			loan, err = q.Save(ctx, &next)
			return err
		})
	})
	if err != nil {
		log.Debug(
			ctx, "loan transition is rejected",
			log.ID("loan", lid), log.Err("err", err),
		)
		return nil, err
	}
	log.Info(
		ctx, "loan transition is done",
		log.String("transition", t.String()), log.Valuer("loan", *loan),
	)
	return loan, nil
}

// Quote use case computes the fare of the lid loan as of now, without
// changing it.
func (loans *UseCase) Quote(
	ctx context.Context, lid uuid.UUID,
) (quote *Quotation, err error) {
	err = loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		l, err := loans.loansrp.Conn(c).Get(ctx, lid)
		if err != nil {
			return err
		}
		kind, err := loans.transportsrp.Conn(c).Kind(ctx, l.TransportID)
		if err != nil {
			return err
		}
		quote, err = loans.quote(*l, kind)
		return err
	})
	if err != nil {
		quote = nil
	}
	return
}

func (loans *UseCase) quote(l model.Loan, kind string) (*Quotation, error) {
	if l.IsActive() {
		return loans.fare(l, kind, loans.clock.Now()), nil
	}
	minutes, ok := l.DurationInMinutes(loans.clock)
	if !ok {
		return nil, cerr.Conflict(ErrUndefinedDuration)
	}
	return &Quotation{
		Loan:            l,
		TransportType:   kind,
		Rule:            loans.engine.BasePricing(kind),
		DurationMinutes: minutes,
		Cost:            loans.engine.LoanCost(float64(minutes), kind),
		Total:           l.Cost,
	}, nil
}

// fare computes the quotation of the active l loan as if it is
// returned at the end time. The regular cost covers all minutes from
// the loan start and minutes after a planned end are charged again by
// the overdue cost at the double per-minute rate.
func (loans *UseCase) fare(l model.Loan, kind string, end time.Time) *Quotation {
	minutes, _ := model.DurationInMinutes(l.StartDate, &end, false, loans.clock)
	q := &Quotation{
		Loan:            l,
		TransportType:   kind,
		Rule:            loans.engine.BasePricing(kind),
		DurationMinutes: minutes,
		Cost:            loans.engine.LoanCost(float64(minutes), kind),
	}
	q.Total = q.Cost
	planned, hasPlan := l.PlannedEnd()
	if !hasPlan {
		return q
	}
	overdue, _ := model.DurationInMinutes(planned, &end, false, loans.clock)
	if overdue <= 0 {
		return q
	}
	plannedMinutes, _ := model.DurationInMinutes(
		l.StartDate, &planned, false, loans.clock,
	)
	q.OverdueMinutes = overdue
	q.LateFee = loans.engine.LateFee(float64(minutes), kind)
	q.OverdueCost = loans.engine.OverdueCost(pricing.OverdueInput{
		TransportType:          kind,
		PlannedDurationMinutes: float64(plannedMinutes),
		ActualDurationMinutes:  float64(minutes),
		OverdueMinutes:         float64(overdue),
	}).TotalCost
	q.Total += q.OverdueCost
	return q
}

// Import use case reconstructs loans from their records and inserts
// them all in one transaction. No loan is imported if any record is
// malformed or any insertion fails. The number of imported loans is
// returned.
func (loans *UseCase) Import(
	ctx context.Context, records []model.LoanRecord,
) (int, error) {
	ls := make([]model.Loan, 0, len(records))
	for i, r := range records {
		l, err := model.ReconstructLoan(r)
		if err != nil {
			return 0, cerr.BadRequest(fmt.Errorf("record #%d: %w", i, err))
		}
		ls = append(ls, l)
	}
	err := loans.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			q := loans.loansrp.Tx(tx)
			for i := range ls {
				if err := q.Insert(ctx, &ls[i]); err != nil {
					return fmt.Errorf("inserting record #%d: %w", i, err)
				}
			}
			return nil
		})
	})
	if err != nil {
		return 0, err
	}
	log.Info(ctx, "loans are imported", log.Int("count", len(ls)))
	return len(ls), nil
}

// Export use case fetches the loans which match the f filter as
// versioned records, so they may be imported by Import later.
func (loans *UseCase) Export(
	ctx context.Context, f model.LoanFilter,
) ([]model.LoanRecord, error) {
	ls, err := loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	rs := make([]model.LoanRecord, 0, len(ls))
	for i := range ls {
		rs = append(rs, ls[i].Record())
	}
	return rs, nil
}
