package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgx shared by pgxpool.Pool and pgx.Tx, so stores
// can run either directly against the pool or inside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Stores struct {
	q Querier
}

func NewStores(q Querier) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Users() UserStore {
	return &userStore{q: s.q}
}

func (s *Stores) Usage() UsageStore {
	return &usageStore{q: s.q}
}

func (s *Stores) Content() ContentStore {
	return &contentStore{q: s.q}
}

func (s *Stores) Teams() TeamStore {
	return &teamStore{q: s.q}
}

func (s *Stores) Stats() StatsStore {
	return &statsStore{q: s.q}
}

func (s *Stores) Grants() GrantStore {
	return &grantStore{q: s.q}
}

func (s *Stores) Workspaces() WorkspaceStore {
	return &workspaceStore{q: s.q}
}
