// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

import (
	"cmp"
	"fmt"
)

// OutOfRangeError indicates that the Field setting had a Value which
// was out of its acceptable range, or its range was invalid itself.
type OutOfRangeError[T cmp.Ordered] struct {
	Field        string
	Value        *T   // the actual out-of-range value
	LessThanMin  bool // true if and only if min boundary is violated
	InvalidRange bool // true if and only if min is greater than max
}

func (e *OutOfRangeError[T]) Error() string {
	switch {
	case e.InvalidRange:
		return fmt.Sprintf("%s: minimum is greater than maximum", e.Field)
	case e.LessThanMin:
		return fmt.Sprintf("%s: %v is less than minimum", e.Field, *e.Value)
	default:
		return fmt.Sprintf("%s: %v is greater than maximum", e.Field, *e.Value)
	}
}

// VerifyRange ensures that *value is nil or within the minb/maxb
// boundaries (when they are not nil). An out-of-range *value is
// clamped to the violated boundary and an error is returned which
// keeps the original value. Nothing is changed if minb > maxb.
func VerifyRange[T cmp.Ordered](
	field string, value **T, minb, maxb *T,
) *OutOfRangeError[T] {
	switch {
	case minb != nil && maxb != nil && (*minb) > (*maxb):
		return &OutOfRangeError[T]{Field: field, InvalidRange: true}
	case (*value) == nil:
		return nil
	}
	switch v := **value; {
	case minb != nil && v < *minb:
		**value = *minb
		return &OutOfRangeError[T]{Field: field, Value: &v, LessThanMin: true}
	case maxb != nil && v > *maxb:
		**value = *maxb
		return &OutOfRangeError[T]{Field: field, Value: &v}
	}
	return nil
}
