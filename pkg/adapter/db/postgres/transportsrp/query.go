// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package transportsrp

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/adapter/db/postgres"
	"github.com/momeni/bikeshare/pkg/core/cerr"
)

type gTransport struct {
	TID  uuid.UUID `gorm:"primaryKey;type:uuid;column:tid"`
	Kind string
	Name string
}

func (gt *gTransport) TableName() string {
	return "transports"
}

func Kind[Q postgres.Queryer](ctx context.Context, q Q, tid uuid.UUID) (string, error) {
	var kinds []string
	err := q.GORM(ctx).Model(&gTransport{}).Where(
		"tid = ?", tid,
	).Pluck("kind", &kinds).Error
	if err != nil {
		return "", fmt.Errorf("query: %w", err)
	}
	if n := len(kinds); n != 1 {
		return "", cerr.NotFound(fmt.Errorf("transport %s is not found", tid))
	}
	return kinds[0], nil
}
