package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/yourorg/gig-optimizer-gateway/internal/ollama"
)

// UsageRepo persists model-call metadata. Inserts are best-effort: a ledger
// failure must never fail the request that triggered it.
type UsageRepo struct{ pool *pgxpool.Pool }

func (r *UsageRepo) Insert(ctx context.Context, ev ollama.CallEvent) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO model_calls(id, endpoint, model, protocol, duration_ms, ok)
VALUES($1,$2,$3,$4,$5,$6)
`, uuid.New(), ev.Endpoint, ev.Model, ev.Protocol, ev.Duration.Milliseconds(), ev.OK)
	return err
}

// Sink adapts the repo to the client's usage interface, logging instead of
// propagating insert errors.
type Sink struct {
	Repo *UsageRepo
	Log  zerolog.Logger
}

func (s Sink) Record(ctx context.Context, ev ollama.CallEvent) {
	if err := s.Repo.Insert(ctx, ev); err != nil {
		s.Log.Warn().Err(err).Str("endpoint", ev.Endpoint).Msg("usage insert failed")
	}
}
