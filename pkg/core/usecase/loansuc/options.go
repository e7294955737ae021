// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansuc

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/core/model"
)

// Option is a functional option for the loans use case.
type Option func(uc *UseCase) error

// WithMaxDuration option configures a loans UseCase instance in order
// to reject extensions whose planned end is more than the given delay
// ahead of the current time. This option may be passed to New().
func WithMaxDuration(delay time.Duration) Option {
	return func(uc *UseCase) error {
		if d := int64(delay); d <= 0 {
			return fmt.Errorf("max duration (%d) is not positive", d)
		}
		if uc.maxDuration != 0 {
			return errors.New("max duration is already configured")
		}
		uc.maxDuration = delay
		return nil
	}
}

// WithClock option replaces the system clock of a loans UseCase, so
// tests may control the start and end times of loans.
func WithClock(c model.Clock) Option {
	return func(uc *UseCase) error {
		if c == nil {
			return errors.New("nil clock")
		}
		if uc.clock != nil {
			return errors.New("clock is already configured")
		}
		uc.clock = c
		return nil
	}
}

// WithIDGenerator option replaces the generator of new loan IDs which
// defaults to uuid.New.
func WithIDGenerator(gen func() uuid.UUID) Option {
	return func(uc *UseCase) error {
		if gen == nil {
			return errors.New("nil ID generator")
		}
		if uc.newID != nil {
			return errors.New("ID generator is already configured")
		}
		uc.newID = gen
		return nil
	}
}
