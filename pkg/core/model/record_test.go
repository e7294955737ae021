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

func validRecord() model.LoanRecord {
	end := t0.Add(45 * time.Minute)
	return model.LoanRecord{
		Version:     model.LoanRecordVersion,
		ID:          uuid.NewString(),
		UserID:      uuid.NewString(),
		TransportID: uuid.NewString(),
		StartDate:   t0,
		EndDate:     &end,
		Cost:        5.5,
		Status:      "COMPLETED",
	}
}

func TestReconstructLoan(t *testing.T) {
	r := validRecord()
	l, err := model.ReconstructLoan(r)
	require.NoError(t, err)
	assert.Equal(t, r.ID, l.ID.String())
	assert.Equal(t, r.UserID, l.UserID.String())
	assert.Equal(t, r.TransportID, l.TransportID.String())
	assert.Equal(t, t0, l.StartDate)
	require.NotNil(t, l.EndDate)
	assert.Equal(t, *r.EndDate, *l.EndDate)
	assert.Equal(t, 5.5, l.Cost)
	assert.Equal(t, model.LoanStatusCompleted, l.Status)
	assert.Equal(t, r, l.Record(), "record round trips")
}

func TestReconstructLoanRejectsMalformedRecords(t *testing.T) {
	for _, tc := range []struct {
		name  string
		edit  func(r *model.LoanRecord)
		field string
		is    error
	}{
		{
			name:  "version",
			edit:  func(r *model.LoanRecord) { r.Version = 2 },
			field: "version",
			is:    model.ErrUnsupportedVersion,
		},
		{
			name:  "id",
			edit:  func(r *model.LoanRecord) { r.ID = "42" },
			field: "id",
		},
		{
			name:  "user",
			edit:  func(r *model.LoanRecord) { r.UserID = "" },
			field: "user_id",
		},
		{
			name:  "transport",
			edit:  func(r *model.LoanRecord) { r.TransportID = "bike-7" },
			field: "transport_id",
		},
		{
			name:  "start",
			edit:  func(r *model.LoanRecord) { r.StartDate = time.Time{} },
			field: "start_date",
			is:    model.ErrMissingStartDate,
		},
		{
			name:  "status",
			edit:  func(r *model.LoanRecord) { r.Status = "LOST" },
			field: "status",
			is:    model.ErrUnknownLoanStatus,
		},
		{
			name:  "cost",
			edit:  func(r *model.LoanRecord) { r.Cost = -0.01 },
			field: "cost",
			is:    model.ErrNegativeCost,
		},
		{
			name:  "completed without end",
			edit:  func(r *model.LoanRecord) { r.EndDate = nil },
			field: "end_date",
			is:    model.ErrMissingEndDate,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r := validRecord()
			tc.edit(&r)
			_, err := model.ReconstructLoan(r)
			var re *model.RecordError
			require.True(t, errors.As(err, &re), "got %v", err)
			assert.Equal(t, tc.field, re.Field)
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestReconstructLoanAcceptsOpenRecords(t *testing.T) {
	r := validRecord()
	r.Status = "ACTIVE"
	r.EndDate = nil
	r.Cost = 0
	l, err := model.ReconstructLoan(r)
	require.NoError(t, err)
	assert.True(t, l.IsActive())
	assert.Nil(t, l.EndDate)

	r.Status = "CANCELLED"
	l, err = model.ReconstructLoan(r)
	require.NoError(t, err)
	assert.True(t, l.IsCancelled())
}
