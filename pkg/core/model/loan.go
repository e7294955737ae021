// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, also called entities or domain.
// This layer may not depend on outter layers, while all other layers
// may depend on it.
// The Loan model and its state machine live here. All of its operations
// are pure value transformations, so they may be called concurrently
// with no synchronization. Serializing transitions of one persisted
// loan is the responsibility of the use cases and repositories.
package model

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrTransportInUse indicates that a transport may not be loaned
// because it has an active loan already.
var ErrTransportInUse = errors.New("transport has an active loan")

// Loan models one rental of a transport (e.g., a bicycle or scooter)
// by a user. It is created by NewLoan in the ACTIVE status and may only
// be changed by its transition methods which return a modified copy.
//
// EndDate is nil while the loan is active, unless a planned return
// time is recorded by Extend. It holds the actual return time after
// completion. Cost is zero until it is replaced by UpdateCost.
type Loan struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	TransportID uuid.UUID  `json:"transport_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Cost        float64    `json:"cost"`
	Status      LoanStatus `json:"status"`
}

// NewLoan creates an active loan with no end date and zero cost.
// Identifiers are taken as they are and no validation is performed,
// so it may not fail.
func NewLoan(id, userID, transportID uuid.UUID, start time.Time) Loan {
	return Loan{
		ID:          id,
		UserID:      userID,
		TransportID: transportID,
		StartDate:   start,
		Status:      LoanStatusActive,
	}
}

// IsActive reports if l is still in progress.
func (l Loan) IsActive() bool {
	return l.Status == LoanStatusActive
}

// IsCompleted reports if the transport of l is returned.
func (l Loan) IsCompleted() bool {
	return l.Status == LoanStatusCompleted
}

// IsCancelled reports if l was abandoned before its completion.
func (l Loan) IsCancelled() bool {
	return l.Status == LoanStatusCancelled
}

// CanBeCompleted reports if the Complete transition is allowed.
// Only active loans may be completed.
func (l Loan) CanBeCompleted() bool {
	switch l.Status {
	case LoanStatusActive:
		return true
	default:
		return false
	}
}

// CanBeCancelled reports if the Cancel transition is allowed.
// Only active loans may be cancelled.
func (l Loan) CanBeCancelled() bool {
	switch l.Status {
	case LoanStatusActive:
		return true
	default:
		return false
	}
}

// CanBeExtended reports if the Extend transition is allowed.
// Only active loans may be extended.
func (l Loan) CanBeExtended() bool {
	switch l.Status {
	case LoanStatusActive:
		return true
	default:
		return false
	}
}

// Allows reports if the t transition may be applied on l by
// dispatching to its dedicated predicate. Unknown transitions are
// never allowed.
func (l Loan) Allows(t Transition) bool {
	switch t {
	case TransitionComplete:
		return l.CanBeCompleted()
	case TransitionCancel:
		return l.CanBeCancelled()
	case TransitionExtend:
		return l.CanBeExtended()
	default:
		return false
	}
}

// Complete returns a copy of l in the COMPLETED status which records
// the end time as its EndDate. Cost is not computed here and should be
// applied by UpdateCost afterwards. If l may not be completed, an
// *InvalidTransitionError will be returned.
func (l Loan) Complete(end time.Time) (Loan, error) {
	if !l.CanBeCompleted() {
		return Loan{}, &InvalidTransitionError{Transition: TransitionComplete}
	}
	l.Status = LoanStatusCompleted
	l.EndDate = &end
	return l, nil
}

// Cancel returns a copy of l in the CANCELLED status. Its EndDate and
// Cost are kept unchanged. If l may not be cancelled, an
// *InvalidTransitionError will be returned.
func (l Loan) Cancel() (Loan, error) {
	if !l.CanBeCancelled() {
		return Loan{}, &InvalidTransitionError{Transition: TransitionCancel}
	}
	l.Status = LoanStatusCancelled
	return l, nil
}

// Extend returns a copy of l which records newEnd as its planned
// return time. The status remains ACTIVE. If l may not be extended,
// an *InvalidTransitionError will be returned.
func (l Loan) Extend(newEnd time.Time) (Loan, error) {
	if !l.CanBeExtended() {
		return Loan{}, &InvalidTransitionError{Transition: TransitionExtend}
	}
	l.EndDate = &newEnd
	return l, nil
}

// UpdateCost returns a copy of l with the given cost, regardless of
// its status.
func (l Loan) UpdateCost(cost float64) Loan {
	l.Cost = cost
	return l
}

// PlannedEnd returns the planned return time of an active loan as
// recorded by Extend, if any.
func (l Loan) PlannedEnd() (time.Time, bool) {
	if !l.IsActive() || l.EndDate == nil {
		return time.Time{}, false
	}
	return *l.EndDate, true
}

// DurationInMinutes returns the rental duration of l. See the
// DurationInMinutes function for details.
func (l Loan) DurationInMinutes(clk Clock) (int64, bool) {
	return DurationInMinutes(l.StartDate, l.EndDate, l.IsActive(), clk)
}

// LogValue implements slog.LogValuer, so a loan may be logged as a
// group of its identifying attributes.
func (l Loan) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("id", l.ID.String()),
		slog.String("user", l.UserID.String()),
		slog.String("transport", l.TransportID.String()),
		slog.String("status", string(l.Status)),
		slog.Float64("cost", l.Cost),
	)
}

// LoanFilter specifies the optional criteria for listing loans.
// Nil fields are not used for filtering.
type LoanFilter struct {
	UserID      *uuid.UUID
	TransportID *uuid.UUID
	Status      *LoanStatus
}
