// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package pricing computes the fare of loans based on their duration
// and the type of their rented transport. All computations are pure
// functions of their arguments and the RuleTable which is injected
// into an Engine, so an Engine may be shared by concurrent callers.
// No rounding is performed and no argument is clamped. Rounding the
// amounts for presentation is left to the callers.
package pricing

import (
	"fmt"
	"log/slog"
)

// DefaultType is the transport type key whose Rule is used for all
// unknown transport types.
const DefaultType = "default"

// Rule is the fare of one transport type.
type Rule struct {
	BaseRate      float64 `json:"base_rate"`       // flat charge
	PerMinuteRate float64 `json:"per_minute_rate"` // charge per minute
	Currency      string  `json:"currency"`        // informational
}

// LogValue implements slog.LogValuer.
func (r Rule) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("base", r.BaseRate),
		slog.Float64("per_minute", r.PerMinuteRate),
		slog.String("currency", r.Currency),
	)
}

// RuleTable resolves the Rule of transport types.
type RuleTable interface {
	// Lookup returns the Rule of the exact transport type key.
	// The second return value is false if that key is unknown.
	Lookup(transportType string) (Rule, bool)

	// Default returns the fallback Rule for unknown types.
	Default() Rule
}

// Table is an immutable RuleTable which is backed by a map.
type Table struct {
	def   Rule
	rules map[string]Rule
}

// NewTable creates a Table with the def fallback Rule and a copy of
// the given rules. A rule which is keyed by DefaultType is ignored in
// favor of def, so Lookup(DefaultType) always agrees with Default.
func NewTable(def Rule, rules map[string]Rule) *Table {
	t := &Table{def: def, rules: make(map[string]Rule, len(rules)+1)}
	for k, r := range rules {
		t.rules[k] = r
	}
	t.rules[DefaultType] = def
	return t
}

// Lookup implements the RuleTable interface.
func (t *Table) Lookup(transportType string) (Rule, bool) {
	r, ok := t.rules[transportType]
	return r, ok
}

// Default implements the RuleTable interface.
func (t *Table) Default() Rule {
	return t.def
}

// Types returns the number of known transport types, including the
// DefaultType itself.
func (t *Table) Types() int {
	return len(t.rules)
}

// StandardDefault returns the fallback Rule which is used when no
// other default is configured.
func StandardDefault() Rule {
	return Rule{BaseRate: 1.5, PerMinuteRate: 0.12, Currency: "USD"}
}

// StandardRules returns a new map containing the built-in rules of the
// known transport types. The DefaultType is not included.
func StandardRules() map[string]Rule {
	return map[string]Rule{
		"bicycle": {
			BaseRate: 1.0, PerMinuteRate: 0.10, Currency: "USD",
		},
		"scooter": {
			BaseRate: 1.0, PerMinuteRate: 0.15, Currency: "USD",
		},
		"electric_bicycle": {
			BaseRate: 1.5, PerMinuteRate: 0.20, Currency: "USD",
		},
	}
}

// StandardTable creates a Table from StandardDefault and StandardRules.
func StandardTable() *Table {
	return NewTable(StandardDefault(), StandardRules())
}

// Engine computes loan fares using the rules of its RuleTable.
type Engine struct {
	table RuleTable
}

// New instantiates an Engine. The t table is mandatory.
func New(t RuleTable) (*Engine, error) {
	if t == nil {
		return nil, fmt.Errorf("nil rule table")
	}
	return &Engine{table: t}, nil
}

// BasePricing returns the Rule of transportType, or the Default rule
// of the table if transportType is unknown.
func (e *Engine) BasePricing(transportType string) Rule {
	if r, ok := e.table.Lookup(transportType); ok {
		return r
	}
	return e.table.Default()
}

// LoanCost computes the regular fare of a loan which lasted for the
// given minutes as base + minutes*perMinute.
func (e *Engine) LoanCost(minutes float64, transportType string) float64 {
	r := e.BasePricing(transportType)
	return r.BaseRate + minutes*r.PerMinuteRate
}

// LateFee computes a surcharge which is half of the regular fare for
// the same minutes. It is charged on top of the regular fare.
func (e *Engine) LateFee(minutes float64, transportType string) float64 {
	return 0.5 * e.LoanCost(minutes, transportType)
}

// OverdueInput describes an overdue loan.
// PlannedDurationMinutes and ActualDurationMinutes are accepted for
// reporting purposes, but only OverdueMinutes affects the cost.
type OverdueInput struct {
	TransportType          string
	PlannedDurationMinutes float64
	ActualDurationMinutes  float64
	OverdueMinutes         float64
}

// OverdueResult is the outcome of OverdueCost.
type OverdueResult struct {
	TotalCost float64 `json:"total_cost"`
}

// OverdueCost charges each overdue minute with twice the per-minute
// rate of the transport type. No base rate is included.
func (e *Engine) OverdueCost(in OverdueInput) OverdueResult {
	r := e.BasePricing(in.TransportType)
	return OverdueResult{
		TotalCost: in.OverdueMinutes * (r.PerMinuteRate * 2),
	}
}
