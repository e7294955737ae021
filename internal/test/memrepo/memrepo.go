// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memrepo provides in-memory implementations of the repo
// interfaces, so use cases and REST resources may be tested without
// a database. All connections of a Store are serialized and each
// transaction is rolled back if its handler fails.
package memrepo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/momeni/bikeshare/pkg/core/cerr"
	"github.com/momeni/bikeshare/pkg/core/model"
	"github.com/momeni/bikeshare/pkg/core/repo"
)

// ErrRawSQL is returned by Exec and Query methods.
var ErrRawSQL = errors.New("raw SQL is not supported in memory")

type Store struct {
	mu         sync.Mutex
	loans      map[uuid.UUID]model.Loan
	transports map[uuid.UUID]string
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		loans:      make(map[uuid.UUID]model.Loan),
		transports: make(map[uuid.UUID]string),
	}
}

// AddTransport registers the tid transport with the kind type.
func (s *Store) AddTransport(tid uuid.UUID, kind string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transports[tid] = kind
}

// Loan returns the committed version of the lid loan.
func (s *Store) Loan(lid uuid.UUID) (model.Loan, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.loans[lid]
	return l, ok
}

// Count returns the number of committed loans.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loans)
}

// Conn implements the repo.Pool interface.
func (s *Store) Conn(ctx context.Context, handler repo.ConnHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return handler(ctx, &Conn{s: s})
}

type Conn struct {
	s *Store
}

func (c *Conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	backup := make(map[uuid.UUID]model.Loan, len(c.s.loans))
	for k, v := range c.s.loans {
		backup[k] = v
	}
	if err := handler(ctx, &Tx{s: c.s}); err != nil {
		c.s.loans = backup
		return fmt.Errorf("handler: %w", err)
	}
	return nil
}

func (c *Conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (c *Conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (c *Conn) IsConn() {
}

type Tx struct {
	s *Store
}

func (tx *Tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrRawSQL
}

func (tx *Tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrRawSQL
}

func (tx *Tx) IsTx() {
}

// Loans implements the repo.Loans interface for a Store.
type Loans struct{}

func (Loans) Conn(c repo.Conn) repo.LoansConnQueryer {
	return loansQueryer{s: c.(*Conn).s}
}

func (Loans) Tx(tx repo.Tx) repo.LoansTxQueryer {
	return loansQueryer{s: tx.(*Tx).s}
}

type loansQueryer struct {
	s *Store
}

func (q loansQueryer) Insert(_ context.Context, l *model.Loan) error {
	if _, ok := q.s.loans[l.ID]; ok {
		return cerr.Conflict(fmt.Errorf("loan %s exists", l.ID))
	}
	q.s.loans[l.ID] = *l
	return nil
}

func (q loansQueryer) Get(_ context.Context, lid uuid.UUID) (*model.Loan, error) {
	l, ok := q.s.loans[lid]
	if !ok {
		return nil, cerr.NotFound(fmt.Errorf("loan %s", lid))
	}
	return &l, nil
}

func (q loansQueryer) GetForUpdate(
	ctx context.Context, lid uuid.UUID,
) (*model.Loan, error) {
	return q.Get(ctx, lid)
}

func (q loansQueryer) List(
	_ context.Context, f model.LoanFilter,
) ([]model.Loan, error) {
	ls := make([]model.Loan, 0, len(q.s.loans))
	for _, l := range q.s.loans {
		switch {
		case f.UserID != nil && *f.UserID != l.UserID:
		case f.TransportID != nil && *f.TransportID != l.TransportID:
		case f.Status != nil && *f.Status != l.Status:
		default:
			ls = append(ls, l)
		}
	}
	sort.Slice(ls, func(i, j int) bool {
		return ls[i].StartDate.After(ls[j].StartDate)
	})
	return ls, nil
}

func (q loansQueryer) Save(
	_ context.Context, l *model.Loan,
) (*model.Loan, error) {
	old, ok := q.s.loans[l.ID]
	if !ok {
		return nil, cerr.NotFound(fmt.Errorf("loan %s", l.ID))
	}
	old.EndDate = l.EndDate
	old.Cost = l.Cost
	old.Status = l.Status
	q.s.loans[l.ID] = old
	return &old, nil
}

// Transports implements the repo.Transports interface for a Store.
type Transports struct{}

func (Transports) Conn(c repo.Conn) repo.TransportsConnQueryer {
	return transportsQueryer{s: c.(*Conn).s}
}

func (Transports) Tx(tx repo.Tx) repo.TransportsTxQueryer {
	return transportsQueryer{s: tx.(*Tx).s}
}

type transportsQueryer struct {
	s *Store
}

func (q transportsQueryer) Kind(_ context.Context, tid uuid.UUID) (string, error) {
	k, ok := q.s.transports[tid]
	if !ok {
		return "", cerr.NotFound(fmt.Errorf("transport %s", tid))
	}
	return k, nil
}
