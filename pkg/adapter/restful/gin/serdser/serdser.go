// Copyright (c) 2023-2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package serdser contains the serialization and deserialization
// helpers which are shared by the REST resources. Bind deserializes
// and validates requests, SerErr serializes errors, and Money rounds
// the monetary amounts for presentation.
package serdser

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/momeni/bikeshare/pkg/core/cerr"
	"github.com/shopspring/decimal"
)

// Bind fills req using the b binding (e.g., binding.Form or
// binding.Query) and validates it. Validation errors are reported to
// the client and false is returned, so the caller may return early.
func Bind(c *gin.Context, req any, b binding.Binding) bool {
	return report(c, c.ShouldBindWith(req, b))
}

// BindURI is similar to Bind, but fills req using the path params.
func BindURI(c *gin.Context, req any) bool {
	return report(c, c.ShouldBindUri(req))
}

func report(c *gin.Context, err error) bool {
	var verrs validator.ValidationErrors
	var ierr *validator.InvalidValidationError
	switch {
	case err == nil:
		return true
	case errors.As(err, &ierr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"detail": err.Error(),
		})
	case errors.As(err, &verrs):
		var nameToErrs map[string][]string
		for _, ferr := range verrs {
			AddErr(&nameToErrs, ferr.Field(), ferr.Error())
		}
		c.JSON(http.StatusBadRequest, nameToErrs)
	default:
		c.JSON(http.StatusBadRequest, gin.H{
			"detail": err.Error(),
		})
	}
	return false
}

func AddErr(errs *map[string][]string, name string, msgs ...string) {
	if (*errs) == nil {
		*errs = make(map[string][]string)
	}
	(*errs)[name] = append((*errs)[name], msgs...)
}

func Assert(errs *map[string][]string, ok bool, name string, msgs ...string) bool {
	if ok {
		return true
	}
	AddErr(errs, name, msgs...)
	return false
}

// SerErr responds with the HTTP status code of err (see cerr.Error)
// and its message. Errors which are not classified by a cerr.Error are
// reported as internal server errors.
func SerErr(c *gin.Context, err error) {
	detail := err.Error()
	var ce *cerr.Error
	if errors.As(err, &ce) {
		detail = ce.Err.Error()
	}
	c.JSON(cerr.StatusCode(err), gin.H{
		"detail": detail,
	})
}

// Money rounds amount half away from zero to cents.
func Money(amount float64) float64 {
	return decimal.NewFromFloat(amount).Round(2).InexactFloat64()
}
