// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC)

func newActiveLoan() model.Loan {
	return model.NewLoan(uuid.New(), uuid.New(), uuid.New(), t0)
}

func requireInvalidTransition(
	t *testing.T, err error, tr model.Transition, msg string,
) {
	t.Helper()
	var ite *model.InvalidTransitionError
	require.True(t, errors.As(err, &ite), "expected transition error")
	assert.Equal(t, tr, ite.Transition)
	assert.EqualError(t, err, msg)
}

func TestNewLoan(t *testing.T) {
	id, u, tr := uuid.New(), uuid.New(), uuid.New()
	l := model.NewLoan(id, u, tr, t0)
	assert.Equal(t, model.Loan{
		ID:          id,
		UserID:      u,
		TransportID: tr,
		StartDate:   t0,
		Status:      model.LoanStatusActive,
	}, l)
	assert.Nil(t, l.EndDate)
	assert.Zero(t, l.Cost)
	assert.True(t, l.IsActive())
	assert.False(t, l.IsCompleted())
	assert.False(t, l.IsCancelled())
}

func TestTerminalStatesRejectAllTransitions(t *testing.T) {
	active := newActiveLoan()
	completed, err := active.Complete(t0.Add(time.Hour))
	require.NoError(t, err)
	cancelled, err := active.Cancel()
	require.NoError(t, err)
	for name, l := range map[string]model.Loan{
		"completed": completed,
		"cancelled": cancelled,
	} {
		t.Run(name, func(t *testing.T) {
			assert.False(t, l.CanBeCompleted())
			assert.False(t, l.CanBeCancelled())
			assert.False(t, l.CanBeExtended())
			for _, tr := range []model.Transition{
				model.TransitionComplete,
				model.TransitionCancel,
				model.TransitionExtend,
				model.TransitionInvalid,
			} {
				assert.False(t, l.Allows(tr))
			}
			_, err := l.Complete(t0)
			requireInvalidTransition(
				t, err, model.TransitionComplete,
				"Loan cannot be completed",
			)
			_, err = l.Cancel()
			requireInvalidTransition(
				t, err, model.TransitionCancel,
				"Loan cannot be cancelled",
			)
			_, err = l.Extend(t0)
			requireInvalidTransition(
				t, err, model.TransitionExtend,
				"Loan cannot be extended",
			)
		})
	}
}

func TestActiveAllowsAllTransitions(t *testing.T) {
	l := newActiveLoan()
	assert.True(t, l.CanBeCompleted())
	assert.True(t, l.CanBeCancelled())
	assert.True(t, l.CanBeExtended())
	assert.True(t, l.Allows(model.TransitionComplete))
	assert.True(t, l.Allows(model.TransitionCancel))
	assert.True(t, l.Allows(model.TransitionExtend))
	assert.False(t, l.Allows(model.TransitionInvalid))
}

func TestComplete(t *testing.T) {
	l := newActiveLoan()
	end := t0.Add(45 * time.Minute)
	c, err := l.Complete(end)
	require.NoError(t, err)
	assert.Equal(t, model.LoanStatusCompleted, c.Status)
	require.NotNil(t, c.EndDate)
	assert.Equal(t, end, *c.EndDate)
	assert.Equal(t, l.ID, c.ID)
	assert.Equal(t, l.UserID, c.UserID)
	assert.Equal(t, l.TransportID, c.TransportID)
	assert.Equal(t, l.StartDate, c.StartDate)
	assert.Zero(t, c.Cost, "completion does not compute cost")

	assert.True(t, l.IsActive(), "input is not modified")
	assert.Nil(t, l.EndDate, "input is not modified")

	_, err = c.Complete(end)
	requireInvalidTransition(
		t, err, model.TransitionComplete, "Loan cannot be completed",
	)
}

func TestCancel(t *testing.T) {
	l := newActiveLoan().UpdateCost(0.25)
	c, err := l.Cancel()
	require.NoError(t, err)
	assert.Equal(t, model.LoanStatusCancelled, c.Status)
	assert.Nil(t, c.EndDate)
	assert.Equal(t, 0.25, c.Cost)
	assert.True(t, l.IsActive())

	_, err = c.Cancel()
	requireInvalidTransition(
		t, err, model.TransitionCancel, "Loan cannot be cancelled",
	)
}

func TestExtendKeepsLoanActive(t *testing.T) {
	l := newActiveLoan()
	planned := t0.Add(2 * time.Hour)
	e, err := l.Extend(planned)
	require.NoError(t, err)
	assert.True(t, e.IsActive())
	require.NotNil(t, e.EndDate)
	assert.Equal(t, planned, *e.EndDate)
	assert.Nil(t, l.EndDate)

	p, ok := e.PlannedEnd()
	assert.True(t, ok)
	assert.Equal(t, planned, p)
	_, ok = l.PlannedEnd()
	assert.False(t, ok)

	later := planned.Add(time.Hour)
	e2, err := e.Extend(later)
	require.NoError(t, err, "extension may be repeated")
	assert.Equal(t, later, *e2.EndDate)
	assert.Equal(t, planned, *e.EndDate, "previous copy is intact")

	c, err := e2.Complete(planned)
	require.NoError(t, err)
	_, ok = c.PlannedEnd()
	assert.False(t, ok, "completed loans have no planned end")
}

func TestUpdateCostIsUnconditional(t *testing.T) {
	l := newActiveLoan()
	c, err := l.Complete(t0.Add(time.Minute))
	require.NoError(t, err)
	for _, x := range []model.Loan{l, c} {
		u := x.UpdateCost(5.5)
		assert.Equal(t, 5.5, u.Cost)
		assert.Equal(t, x.Status, u.Status)
		assert.Zero(t, x.Cost)
	}
}

func TestLoanStatusParsing(t *testing.T) {
	for _, s := range []string{"ACTIVE", "COMPLETED", "CANCELLED"} {
		ls, err := model.ParseLoanStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, s, ls.String())
		assert.NoError(t, ls.Validate())
	}
	for _, s := range []string{"", "active", "OVERDUE"} {
		_, err := model.ParseLoanStatus(s)
		assert.ErrorIs(t, err, model.ErrUnknownLoanStatus)
		assert.Error(t, model.LoanStatus(s).Validate())
	}
	var ls model.LoanStatus
	assert.Error(t, ls.UnmarshalText([]byte("DONE")))
	assert.NoError(t, ls.UnmarshalText([]byte("CANCELLED")))
	assert.Equal(t, model.LoanStatusCancelled, ls)
}

func TestTransitionParsing(t *testing.T) {
	for _, tr := range []model.Transition{
		model.TransitionComplete,
		model.TransitionCancel,
		model.TransitionExtend,
	} {
		p, err := model.ParseTransition(tr.String())
		assert.NoError(t, err)
		assert.Equal(t, tr, p)
	}
	_, err := model.ParseTransition("resurrect")
	assert.ErrorIs(t, err, model.ErrUnknownTransition)
	assert.Panics(t, func() { _ = model.TransitionInvalid.String() })
}
