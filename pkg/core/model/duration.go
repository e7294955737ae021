// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"math"
	"time"
)

// Clock is the source of the current time. It is passed explicitly to
// every computation which depends on "now", so they may be tested with
// a fixed or manually advanced clock.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts an ordinary function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time {
	return f()
}

// DurationInMinutes computes the number of whole minutes between start
// and end, rounded towards negative infinity. If end is nil and active
// is true, the elapsed minutes until clk.Now() are returned instead.
// If end is nil and active is false, the duration is undefined and
// the second return value will be false.
func DurationInMinutes(
	start time.Time, end *time.Time, active bool, clk Clock,
) (int64, bool) {
	switch {
	case end != nil:
		return floorMinutes(end.Sub(start)), true
	case active:
		return floorMinutes(clk.Now().Sub(start)), true
	default:
		return 0, false
	}
}

// IsOvertime reports if end is more than limitMinutes minutes ahead
// of clk.Now(). That is, it compares the remaining (not the elapsed)
// time until end against the limit.
func IsOvertime(end time.Time, limitMinutes float64, clk Clock) bool {
	return end.Sub(clk.Now()).Minutes() > limitMinutes
}

func floorMinutes(d time.Duration) int64 {
	return int64(math.Floor(d.Minutes()))
}
