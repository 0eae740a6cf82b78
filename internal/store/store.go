package store

import "github.com/jackc/pgx/v5/pgxpool"

type Store struct {
	pool *pgxpool.Pool

	usage *UsageRepo
}

func New(pool *pgxpool.Pool) *Store {
	s := &Store{pool: pool}
	s.usage = &UsageRepo{pool: pool}
	return s
}

func (s *Store) Usage() *UsageRepo { return s.usage }
