// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package loansrs exposes the loans use cases as REST resources.
package loansrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/bikeshare/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/usecase/loansuc"
)

type resource struct {
	loans *loansuc.UseCase
}

func Register(r *gin.RouterGroup, loans *loansuc.UseCase) {
	rs := &resource{loans: loans}
	r.POST("loans", rs.StartLoan)
	r.GET("loans", rs.ListLoans)
	r.GET("loans/:lid", rs.GetLoan)
	r.PATCH("loans/:lid", rs.UpdateLoan)
	r.GET("loans/:lid/quote", rs.QuoteLoan)
	r.GET("pricing/:type", rs.GetPricing)
}

func (rs *resource) StartLoan(c *gin.Context) {
	req := rs.DserStartLoanReq(c)
	if req == nil {
		return
	}
	l, err := rs.loans.Start(c, req.UserID, req.TransportID)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, SerLoan(l))
}

func (rs *resource) ListLoans(c *gin.Context) {
	f := rs.DserListLoansReq(c)
	if f == nil {
		return
	}
	ls, err := rs.loans.List(c, *f)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]LoanResp, 0, len(ls))
	for i := range ls {
		resp = append(resp, SerLoan(&ls[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func (rs *resource) GetLoan(c *gin.Context) {
	lid, ok := rs.DserLoanID(c)
	if !ok {
		return
	}
	l, err := rs.loans.Get(c, lid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerLoan(l))
}

func (rs *resource) UpdateLoan(c *gin.Context) {
	req := rs.DserUpdateLoanReq(c)
	if req == nil {
		return
	}
	var l *model.Loan
	var err error
	switch req.Op {
	case model.TransitionComplete:
		l, err = rs.loans.Complete(c, req.LoanID)
	case model.TransitionCancel:
		l, err = rs.loans.Cancel(c, req.LoanID)
	case model.TransitionExtend:
		l, err = rs.loans.Extend(c, req.LoanID, req.End)
	default:
		panic("unexpected op: " + req.Op.String())
	}
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerLoan(l))
}

func (rs *resource) QuoteLoan(c *gin.Context) {
	lid, ok := rs.DserLoanID(c)
	if !ok {
		return
	}
	q, err := rs.loans.Quote(c, lid)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerQuotation(q))
}

func (rs *resource) GetPricing(c *gin.Context) {
	req := rs.DserPricingReq(c)
	if req == nil {
		return
	}
	e := rs.loans.Engine()
	resp := PricingResp{
		TransportType: req.Type,
		Rule:          SerRule(e.BasePricing(req.Type)),
	}
	if req.Minutes != nil {
		m := float64(*req.Minutes)
		cost := serdser.Money(e.LoanCost(m, req.Type))
		lateFee := serdser.Money(e.LateFee(m, req.Type))
		resp.Minutes = req.Minutes
		resp.Cost = &cost
		resp.LateFee = &lateFee
	}
	c.JSON(http.StatusOK, resp)
}
