// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// LoanRecordVersion is the latest (and only) supported format version
// of the LoanRecord struct.
const LoanRecordVersion = 1

// LoanRecord is the flat representation of a previously persisted loan
// as it is exported by (or imported from) other systems. Identifiers
// are kept as strings because the exporting system may not have used
// UUIDs. A LoanRecord must be converted to a Loan by ReconstructLoan
// which rejects the malformed records.
type LoanRecord struct {
	Version     int        `json:"version" yaml:"version"`
	ID          string     `json:"id" yaml:"id"`
	UserID      string     `json:"user_id" yaml:"user-id"`
	TransportID string     `json:"transport_id" yaml:"transport-id"`
	StartDate   time.Time  `json:"start_date" yaml:"start-date"`
	EndDate     *time.Time `json:"end_date" yaml:"end-date"`
	Cost        float64    `json:"cost" yaml:"cost"`
	Status      string     `json:"status" yaml:"status"`
}

// These errors describe why a LoanRecord field was rejected.
// They are wrapped by a *RecordError which names the field.
var (
	ErrUnsupportedVersion = errors.New("unsupported record version")
	ErrMissingStartDate   = errors.New("start date is missing")
	ErrNegativeCost       = errors.New("cost is negative")
	ErrMissingEndDate     = errors.New("completed loan has no end date")
)

// RecordError reports the LoanRecord field which could not be used
// for reconstruction of a Loan.
type RecordError struct {
	Field string
	Err   error
}

// Error implements the error interface.
func (e *RecordError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

// Unwrap returns the wrapped error, so errors.Is may be used to
// identify the reason of the rejection.
func (e *RecordError) Unwrap() error {
	return e.Err
}

// ReconstructLoan converts a persisted loan record to a Loan. Status,
// cost, and dates are taken verbatim, but the record is rejected by
// a *RecordError if any of its fields may not belong to a loan which
// was created and transitioned by this package.
func ReconstructLoan(r LoanRecord) (Loan, error) {
	if r.Version != LoanRecordVersion {
		return Loan{}, &RecordError{
			Field: "version",
			Err: fmt.Errorf(
				"%w: %d", ErrUnsupportedVersion, r.Version,
			),
		}
	}
	var l Loan
	var err error
	if l.ID, err = uuid.Parse(r.ID); err != nil {
		return Loan{}, &RecordError{Field: "id", Err: err}
	}
	if l.UserID, err = uuid.Parse(r.UserID); err != nil {
		return Loan{}, &RecordError{Field: "user_id", Err: err}
	}
	if l.TransportID, err = uuid.Parse(r.TransportID); err != nil {
		return Loan{}, &RecordError{Field: "transport_id", Err: err}
	}
	if r.StartDate.IsZero() {
		return Loan{}, &RecordError{
			Field: "start_date", Err: ErrMissingStartDate,
		}
	}
	l.StartDate = r.StartDate
	if l.Status, err = ParseLoanStatus(r.Status); err != nil {
		return Loan{}, &RecordError{Field: "status", Err: err}
	}
	if r.Cost < 0 {
		return Loan{}, &RecordError{Field: "cost", Err: ErrNegativeCost}
	}
	l.Cost = r.Cost
	if r.EndDate != nil {
		end := *r.EndDate
		l.EndDate = &end
	} else if l.Status == LoanStatusCompleted {
		return Loan{}, &RecordError{
			Field: "end_date", Err: ErrMissingEndDate,
		}
	}
	return l, nil
}

// Record returns the flat representation of l, so it may be exported.
func (l Loan) Record() LoanRecord {
	r := LoanRecord{
		Version:     LoanRecordVersion,
		ID:          l.ID.String(),
		UserID:      l.UserID.String(),
		TransportID: l.TransportID.String(),
		StartDate:   l.StartDate,
		Cost:        l.Cost,
		Status:      string(l.Status),
	}
	if l.EndDate != nil {
		end := *l.EndDate
		r.EndDate = &end
	}
	return r
}
