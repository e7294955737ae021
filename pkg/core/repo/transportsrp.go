// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/google/uuid"
)

type TransportsConnQueryer interface {
	TransportsQueryer
}

type TransportsTxQueryer interface {
	TransportsQueryer
}

type TransportsQueryer interface {
	// Kind returns the transport type key of the tid transport, such
	// as "bicycle", as it is used for looking up the pricing rules.
	// A NotFound error is returned for unknown transports.
	Kind(ctx context.Context, tid uuid.UUID) (string, error)
}

type Transports interface {
	Conn(Conn) TransportsConnQueryer
	Tx(Tx) TransportsTxQueryer
}
