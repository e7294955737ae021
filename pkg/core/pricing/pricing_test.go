// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package pricing_test

import (
	"testing"

	"github.com/momeni/bikeshare/pkg/core/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

func newEngine(t *testing.T) *pricing.Engine {
	e, err := pricing.New(pricing.StandardTable())
	require.NoError(t, err, "creating engine with standard table")
	return e
}

func TestNewRequiresTable(t *testing.T) {
	e, err := pricing.New(nil)
	assert.Error(t, err)
	assert.Nil(t, e)
}

func TestBasePricingFallback(t *testing.T) {
	e := newEngine(t)
	def := pricing.Rule{BaseRate: 1.5, PerMinuteRate: 0.12, Currency: "USD"}
	assert.Equal(t, def, e.BasePricing("default"))
	assert.Equal(t, def, e.BasePricing("unknown_type"))
	assert.Equal(t, def, e.BasePricing(""))
	assert.Equal(t, def, e.BasePricing("Bicycle"), "keys are exact")
	assert.Equal(
		t,
		pricing.Rule{BaseRate: 1.0, PerMinuteRate: 0.1, Currency: "USD"},
		e.BasePricing("bicycle"),
	)
}

func TestLoanCostIsLinear(t *testing.T) {
	e := newEngine(t)
	assert.InDelta(t, 7.0, e.LoanCost(60, "bicycle"), delta)
	assert.InDelta(t, 5.5, e.LoanCost(45, "bicycle"), delta)
	for _, tc := range []struct {
		typ     string
		b, r, m float64
	}{
		{"bicycle", 1.0, 0.10, 0},
		{"scooter", 1.0, 0.15, 17},
		{"electric_bicycle", 1.5, 0.20, 120},
		{"hoverboard", 1.5, 0.12, 33},
	} {
		t.Run(tc.typ, func(t *testing.T) {
			assert.InDelta(t, tc.b+tc.m*tc.r, e.LoanCost(tc.m, tc.typ), delta)
		})
	}
}

func TestLoanCostIsNotClamped(t *testing.T) {
	e := newEngine(t)
	assert.InDelta(t, 0.0, e.LoanCost(-10, "bicycle"), delta)
	assert.InDelta(t, 1.5+2880*0.12, e.LoanCost(2880, "x"), delta)
}

func TestLateFeeIsHalfOfLoanCost(t *testing.T) {
	e := newEngine(t)
	for _, typ := range []string{"bicycle", "scooter", "unknown"} {
		for _, m := range []float64{0, 1, 45, 1440} {
			assert.InDelta(
				t, 0.5*e.LoanCost(m, typ), e.LateFee(m, typ), delta,
				"type=%s minutes=%v", typ, m,
			)
		}
	}
}

func TestOverdueCost(t *testing.T) {
	e := newEngine(t)
	res := e.OverdueCost(pricing.OverdueInput{
		TransportType:          "scooter",
		PlannedDurationMinutes: 30,
		ActualDurationMinutes:  50,
		OverdueMinutes:         20,
	})
	assert.InDelta(t, 6.0, res.TotalCost, delta)

	res = e.OverdueCost(pricing.OverdueInput{
		TransportType:          "scooter",
		PlannedDurationMinutes: 1000,
		ActualDurationMinutes:  1,
		OverdueMinutes:         20,
	})
	assert.InDelta(t, 6.0, res.TotalCost, delta, "only overdue counts")
}

func TestNewTableKeepsDefaultConsistent(t *testing.T) {
	def := pricing.Rule{BaseRate: 2, PerMinuteRate: 0.5, Currency: "EUR"}
	rules := map[string]pricing.Rule{
		"default": {BaseRate: 99},
		"bicycle": {BaseRate: 1, PerMinuteRate: 0.25, Currency: "EUR"},
	}
	tbl := pricing.NewTable(def, rules)
	rules["bicycle"] = pricing.Rule{}
	r, ok := tbl.Lookup("default")
	assert.True(t, ok)
	assert.Equal(t, def, r)
	r, ok = tbl.Lookup("bicycle")
	assert.True(t, ok)
	assert.Equal(t, 0.25, r.PerMinuteRate, "table copies its rules")
	assert.Equal(t, 2, tbl.Types())
}

func TestStandardRulesReturnsFreshMaps(t *testing.T) {
	a := pricing.StandardRules()
	a["bicycle"] = pricing.Rule{}
	b := pricing.StandardRules()
	assert.Equal(t, 0.10, b["bicycle"].PerMinuteRate)
}
