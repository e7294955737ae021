// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers which are used by the
// cfgN packages for normalizing and validating their optional fields.
// Optional settings are represented by pointers, so a missing setting
// may be distinguished from a zero one.
package settings

// Nil2Zero replaces a nil *t with a pointer to the zero value of T.
func Nil2Zero[T any](t **T) {
	if (*t) != nil {
		return
	}
	var zero T
	(*t) = &zero
}

// Nil2Default replaces a nil *t with a pointer to a copy of def.
func Nil2Default[T any](t **T, def T) {
	if (*t) != nil {
		return
	}
	(*t) = &def
}
