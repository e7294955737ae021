// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// TxHandler is called by Conn.Tx with an open transaction. Returning
// a nil error commits that transaction, while returning an error (or
// panicking) rolls it back.
type TxHandler func(context.Context, Tx) error

// Tx represents a database transaction.
// It is unsafe to be used concurrently. All statements which are run
// in a single transaction observe the ACID properties. By default, a
// READ-COMMITTED transaction is expected from a PostgreSQL DBMS, hence,
// loan transitions lock their rows explicitly (see LoansTxQueryer).
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}
