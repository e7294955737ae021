// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// LoanStatus specifies the lifecycle state of a loan. It is a closed
// enumeration with three valid values. In contrast to ParkingMode, it
// is kept as a string because the same spelling is used by the REST
// API, the database rows, and the exported loan records.
type LoanStatus string

// Valid values for the LoanStatus enum.
const (
	LoanStatusActive    LoanStatus = "ACTIVE"    // loan is in progress
	LoanStatusCompleted LoanStatus = "COMPLETED" // vehicle is returned
	LoanStatusCancelled LoanStatus = "CANCELLED" // loan is abandoned
)

// ErrUnknownLoanStatus indicates that a given string may not be parsed
// as a known loan status. Similar to ErrUnknownParkingMode, the status
// string itself is not included since the caller of ParseLoanStatus
// knows about it already.
var ErrUnknownLoanStatus = errors.New("unknown loan status")

// LoanStatusError indicates an invalid loan status which was found
// in a LoanStatus variable (and not in a parsed string).
type LoanStatusError string

// Error implements the error interface, returning a string
// representation of the LoanStatusError.
func (e LoanStatusError) Error() string {
	return fmt.Sprintf("invalid loan status: %q", string(e))
}

// Validate returns nil if LoanStatus value is valid. For invalid
// values, an instance of the LoanStatusError will be returned.
func (s LoanStatus) Validate() error {
	switch s {
	case LoanStatusActive, LoanStatusCompleted, LoanStatusCancelled:
		return nil
	default:
		return LoanStatusError(s)
	}
}

// String returns the LoanStatus as a plain string.
func (s LoanStatus) String() string {
	return string(s)
}

// ParseLoanStatus parses the given string and returns a LoanStatus.
// Parsing is case-sensitive. For invalid strings, an empty LoanStatus
// and ErrUnknownLoanStatus will be returned.
func ParseLoanStatus(s string) (LoanStatus, error) {
	ls := LoanStatus(s)
	if err := ls.Validate(); err != nil {
		return "", ErrUnknownLoanStatus
	}
	return ls, nil
}

// UnmarshalText implements the encoding.TextUnmarshaler interface,
// so a LoanStatus may be decoded from JSON or YAML documents while
// rejecting unknown values.
func (s *LoanStatus) UnmarshalText(text []byte) error {
	ls, err := ParseLoanStatus(string(text))
	if err != nil {
		return err
	}
	*s = ls
	return nil
}
