// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package log

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Valuer returns an Attr for the given slog.LogValuer value, such as
// a model.Loan or a pricing.Rule.
func Valuer(key string, value slog.LogValuer) slog.Attr {
	return slog.Any(key, value)
}

// Err returns an Attr for the given error value.
// The error value is resolved as a string by its Error() method.
// If error value is nil, the constant "no-error" value will be used.
func Err(key string, value error) slog.Attr {
	if value == nil {
		return slog.String(key, "no-error")
	}
	return slog.String(key, value.Error())
}

// ID returns an Attr for the given UUID as its canonical string.
func ID(key string, value uuid.UUID) slog.Attr {
	return slog.String(key, value.String())
}

// Time returns an Attr for the given time in the RFC 3339 format.
func Time(key string, value time.Time) slog.Attr {
	return slog.String(key, value.Format(time.RFC3339))
}

// Minutes returns an Attr for a duration which is measured in minutes.
func Minutes(key string, value int64) slog.Attr {
	return slog.Int64(key, value)
}

// Amount returns an Attr for a monetary amount (without rounding).
func Amount(key string, value float64) slog.Attr {
	return slog.Float64(key, value)
}

func String(key, value string) slog.Attr {
	return slog.String(key, value)
}

func Int(key string, value int) slog.Attr {
	return slog.Int(key, value)
}
