// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/core/model"
)

// LoansConnQueryer lists the loans operations which may be run using
// a database connection (outside of an explicit transaction).
type LoansConnQueryer interface {
	LoansQueryer
}

// LoansTxQueryer lists the loans operations which may be run within a
// transaction. In addition to the common operations, it may lock a
// loan row so a transition can be applied on a consistent snapshot.
type LoansTxQueryer interface {
	LoansQueryer

	// GetForUpdate fetches the lid loan and locks its row until the
	// end of the current transaction, so concurrent transitions of
	// the same loan are serialized.
	GetForUpdate(ctx context.Context, lid uuid.UUID) (*model.Loan, error)
}

// LoansQueryer lists the loans operations which are supported both by
// connections and transactions.
type LoansQueryer interface {
	// Insert persists a new loan. The loan ID must be unique.
	Insert(ctx context.Context, l *model.Loan) error

	// Get fetches the lid loan or returns a NotFound error.
	Get(ctx context.Context, lid uuid.UUID) (*model.Loan, error)

	// List fetches loans matching the f filter, ordered by their
	// start date (newest first).
	List(ctx context.Context, f model.LoanFilter) ([]model.Loan, error)

	// Save updates the mutable fields (end date, cost, and status)
	// of an existing loan and returns its persisted version.
	Save(ctx context.Context, l *model.Loan) (*model.Loan, error)
}

// Loans is the loans repository. It wraps a connection or transaction
// and returns a queryer which can run loans queries on it.
type Loans interface {
	Conn(Conn) LoansConnQueryer
	Tx(Tx) LoansTxQueryer
}
