// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package loansrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/pricing"
	"github.com/momeni/bikeshare/pkg/core/usecase/loansuc"
)

type rawStartLoanReq struct {
	UserID      string `form:"user" binding:"required,uuid"`
	TransportID string `form:"transport" binding:"required,uuid"`
}

type startLoanReq struct {
	UserID      uuid.UUID
	TransportID uuid.UUID
}

type rawListLoansReq struct {
	UserID      string `form:"user" binding:"omitempty,uuid"`
	TransportID string `form:"transport" binding:"omitempty,uuid"`
	Status      string `form:"status" binding:"omitempty,oneof=ACTIVE COMPLETED CANCELLED"`
}

type rawLoanIDReq struct {
	LoanID string `uri:"lid" binding:"required,uuid"`
}

type rawUpdateLoanReq struct {
	Op  string `form:"op" binding:"required,oneof=complete cancel extend"`
	End string `form:"end"`
}

type updateLoanReq struct {
	LoanID uuid.UUID
	Op     model.Transition
	End    time.Time
}

type pricingReq struct {
	Type    string `uri:"type" binding:"required,max=64"`
	Minutes *int64 `form:"minutes" binding:"omitempty,min=0,max=525600"`
}

// LoanResp is the JSON representation of a loan. The cost is rounded
// to cents.
type LoanResp struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	TransportID uuid.UUID  `json:"transport_id"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Cost        float64    `json:"cost"`
	Status      string     `json:"status"`
}

type RuleResp struct {
	BaseRate      float64 `json:"base_rate"`
	PerMinuteRate float64 `json:"per_minute_rate"`
	Currency      string  `json:"currency"`
}

type QuotationResp struct {
	Loan            LoanResp `json:"loan"`
	TransportType   string   `json:"transport_type"`
	Rule            RuleResp `json:"rule"`
	DurationMinutes int64    `json:"duration_minutes"`
	Cost            float64  `json:"cost"`
	OverdueMinutes  int64    `json:"overdue_minutes"`
	LateFee         float64  `json:"late_fee"`
	OverdueCost     float64  `json:"overdue_cost"`
	Total           float64  `json:"total"`
}

type PricingResp struct {
	TransportType string   `json:"transport_type"`
	Rule          RuleResp `json:"rule"`
	Minutes       *int64   `json:"minutes,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	LateFee       *float64 `json:"late_fee,omitempty"`
}

func SerLoan(l *model.Loan) LoanResp {
	return LoanResp{
		ID:          l.ID,
		UserID:      l.UserID,
		TransportID: l.TransportID,
		StartDate:   l.StartDate,
		EndDate:     l.EndDate,
		Cost:        serdser.Money(l.Cost),
		Status:      l.Status.String(),
	}
}

func SerRule(r pricing.Rule) RuleResp {
	return RuleResp{
		BaseRate:      r.BaseRate,
		PerMinuteRate: r.PerMinuteRate,
		Currency:      r.Currency,
	}
}

func SerQuotation(q *loansuc.Quotation) QuotationResp {
	return QuotationResp{
		Loan:            SerLoan(&q.Loan),
		TransportType:   q.TransportType,
		Rule:            SerRule(q.Rule),
		DurationMinutes: q.DurationMinutes,
		Cost:            serdser.Money(q.Cost),
		OverdueMinutes:  q.OverdueMinutes,
		LateFee:         serdser.Money(q.LateFee),
		OverdueCost:     serdser.Money(q.OverdueCost),
		Total:           serdser.Money(q.Total),
	}
}

func (rs *resource) DserStartLoanReq(c *gin.Context) *startLoanReq {
	req := &rawStartLoanReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	// validator checked the UUID format already
	return &startLoanReq{
		UserID:      uuid.MustParse(req.UserID),
		TransportID: uuid.MustParse(req.TransportID),
	}
}

func (rs *resource) DserListLoansReq(c *gin.Context) *model.LoanFilter {
	req := &rawListLoansReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	f := &model.LoanFilter{}
	if req.UserID != "" {
		uid := uuid.MustParse(req.UserID)
		f.UserID = &uid
	}
	if req.TransportID != "" {
		tid := uuid.MustParse(req.TransportID)
		f.TransportID = &tid
	}
	if req.Status != "" {
		s := model.LoanStatus(req.Status)
		f.Status = &s
	}
	return f
}

func (rs *resource) DserLoanID(c *gin.Context) (uuid.UUID, bool) {
	req := &rawLoanIDReq{}
	if ok := serdser.BindURI(c, req); !ok {
		return uuid.Nil, false
	}
	return uuid.MustParse(req.LoanID), true
}

func (rs *resource) DserUpdateLoanReq(c *gin.Context) *updateLoanReq {
	lid, ok := rs.DserLoanID(c)
	if !ok {
		return nil
	}
	req := &rawUpdateLoanReq{}
	if ok := serdser.Bind(c, req, binding.Form); !ok {
		return nil
	}
	val := &updateLoanReq{LoanID: lid}
	var errs map[string][]string
	var err error
	val.Op, err = model.ParseTransition(req.Op)
	serdser.Assert(&errs, err == nil, "op", "Unknown op.")
	if val.Op == model.TransitionExtend {
		if serdser.Assert(
			&errs, req.End != "", "end", "The op=extend requires end.",
		) {
			val.End, err = time.Parse(time.RFC3339, req.End)
			serdser.Assert(
				&errs, err == nil, "end", "The end is not an RFC 3339 time.",
			)
		}
	} else {
		serdser.Assert(
			&errs, req.End == "", "end", "Only op=extend accepts end.",
		)
	}
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return val
}

func (rs *resource) DserPricingReq(c *gin.Context) *pricingReq {
	req := &pricingReq{}
	if ok := serdser.BindURI(c, req); !ok {
		return nil
	}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	return req
}
