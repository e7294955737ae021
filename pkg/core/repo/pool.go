// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo declares the repository interfaces which are used by
// the use cases layer. Use cases acquire a Conn from a Pool (and a Tx
// from that Conn when atomicity is required) and pass them to the
// repositories, such as Loans, which run their queries on them.
// Implementations belong to the adapter layer.
package repo

import "context"

// ConnHandler is called by Pool.Conn with an acquired connection which
// is released after the handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool is a database connections pool.
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}
