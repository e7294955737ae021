// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"errors"
	"fmt"
)

// Transition identifies one of the status changing business operations
// of a Loan. Each transition is guarded by its own predicate (see the
// Loan.Allows method), so their rules may diverge independently.
type Transition int

// Valid values for the Transition enum.
const (
	TransitionInvalid Transition = iota // zero value is invalid

	TransitionComplete // ACTIVE -> COMPLETED
	TransitionCancel   // ACTIVE -> CANCELLED
	TransitionExtend   // ACTIVE -> ACTIVE with a planned end date
)

// ErrUnknownTransition indicates that a string may not be parsed as a
// known transition name.
var ErrUnknownTransition = errors.New("unknown loan transition")

// String returns the operation name of t as it is used by the REST
// API, such as "complete". Invalid transitions cause a panic.
func (t Transition) String() string {
	switch t {
	case TransitionComplete:
		return "complete"
	case TransitionCancel:
		return "cancel"
	case TransitionExtend:
		return "extend"
	default:
		panic(fmt.Sprintf("invalid loan transition: %d", int(t)))
	}
}

// ParseTransition parses an operation name as returned by String.
func ParseTransition(s string) (Transition, error) {
	switch s {
	case "complete":
		return TransitionComplete, nil
	case "cancel":
		return TransitionCancel, nil
	case "extend":
		return TransitionExtend, nil
	default:
		return TransitionInvalid, ErrUnknownTransition
	}
}

// pastParticiple returns the adjective form of t which is used in
// the error messages.
func (t Transition) pastParticiple() string {
	switch t {
	case TransitionComplete:
		return "completed"
	case TransitionCancel:
		return "cancelled"
	case TransitionExtend:
		return "extended"
	default:
		return "transitioned"
	}
}

// InvalidTransitionError indicates that a Transition was asked for a
// loan whose current status does not allow it. Callers are expected
// to present it as a conflict with the current state of the loan.
type InvalidTransitionError struct {
	Transition Transition
}

// Error implements the error interface.
func (e *InvalidTransitionError) Error() string {
	return "Loan cannot be " + e.Transition.pastParticiple()
}
