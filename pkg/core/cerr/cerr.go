// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core errors which are returned by the use
// cases. Each Error wraps a more specific error and records the HTTP
// status code which should be reported by the REST adapter, so the use
// cases may classify their failures without depending on an adapter.
package cerr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/momeni/bikeshare/pkg/core/model"
)

type Error struct {
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict indicates that err was caused by the current state of a
// resource, such as a loan which is already completed.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// Transition wraps err as a Conflict if it is (or wraps) a
// *model.InvalidTransitionError and returns it unchanged otherwise.
func Transition(err error) error {
	var ite *model.InvalidTransitionError
	if errors.As(err, &ite) {
		return Conflict(err)
	}
	return err
}

// StatusCode returns the HTTP status code of err if it wraps an *Error
// and http.StatusInternalServerError otherwise. A nil err yields
// http.StatusOK.
func StatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.HTTPStatusCode
	}
	return http.StatusInternalServerError
}
