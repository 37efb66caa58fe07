package store

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sethvargo/go-retry"

	"trustflow/pkg/config"
	"trustflow/pkg/database"
	"trustflow/pkg/domain"
)

// EdgeStore persists the trust edges computeFlow builds its graph from.
type EdgeStore interface {
	// ListEdges returns every trust edge currently on record, in no
	// particular order; callers that need determinism sort the result
	// themselves (the graph builder does not sort; its output does not
	// depend on edge order when no (from, to, token) triple repeats).
	ListEdges(ctx context.Context) ([]domain.Edge, error)
	// UpsertEdge records the trust limit a sender extends to a receiver
	// for a token, replacing any existing limit for the same triple.
	UpsertEdge(ctx context.Context, edge domain.Edge) error
	// DeleteEdge removes a trust limit. It is not an error to delete an
	// edge that does not exist.
	DeleteEdge(ctx context.Context, from, to, token domain.Address) error
	// UpsertEdges writes a batch of trust limits atomically: either every
	// edge in the batch lands, or none do. Ingesters that replay a
	// snapshot of trust limits for many accounts at once use this instead
	// of looping over UpsertEdge, so a crash mid-batch can't leave the
	// graph half-updated.
	UpsertEdges(ctx context.Context, edges []domain.Edge) error
}

// PostgresEdgeStore is an EdgeStore backed by the trust_edges table.
type PostgresEdgeStore struct {
	db    database.DB
	retry config.RetryConfig
}

// NewPostgresEdgeStore builds a PostgresEdgeStore. A zero-value retry
// config disables retries (MaxAttempts of 0 or less runs the operation
// exactly once).
func NewPostgresEdgeStore(db database.DB, retryCfg config.RetryConfig) *PostgresEdgeStore {
	return &PostgresEdgeStore{db: db, retry: retryCfg}
}

func (s *PostgresEdgeStore) backoff() retry.Backoff {
	if s.retry.MaxAttempts <= 0 {
		return retry.WithMaxRetries(0, retry.NewConstant(0))
	}

	initial := s.retry.InitialBackoff
	if initial <= 0 {
		initial = 100 * time.Millisecond
	}

	// go-retry's exponential backoff always doubles each step; there is no
	// knob for RetryConfig.BackoffMultiplier in its public API.
	b := retry.NewExponential(initial)
	if s.retry.MaxBackoff > 0 {
		b = retry.WithCappedDuration(s.retry.MaxBackoff, b)
	}
	return retry.WithMaxRetries(uint64(s.retry.MaxAttempts-1), b)
}

// ListEdges loads the full trust-edge set, retrying on transient store
// errors per the configured backoff.
func (s *PostgresEdgeStore) ListEdges(ctx context.Context) ([]domain.Edge, error) {
	var edges []domain.Edge

	err := retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		rows, err := s.db.Query(ctx, `
			SELECT from_address, to_address, token_address, capacity
			FROM trust_edges`)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer rows.Close()

		edges = edges[:0]
		for rows.Next() {
			var fromHex, toHex, tokenHex, capacityText string
			if err := rows.Scan(&fromHex, &toHex, &tokenHex, &capacityText); err != nil {
				return fmt.Errorf("store: scanning trust edge row: %w", err)
			}

			edge, err := decodeEdge(fromHex, toHex, tokenHex, capacityText)
			if err != nil {
				return err
			}
			edges = append(edges, edge)
		}
		if err := rows.Err(); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: listing trust edges: %w", err)
	}

	return edges, nil
}

// UpsertEdge writes the trust limit for (from, to, token), replacing any
// prior limit for the same triple.
func (s *PostgresEdgeStore) UpsertEdge(ctx context.Context, edge domain.Edge) error {
	return retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		_, err := s.db.Exec(ctx, `
			INSERT INTO trust_edges (from_address, to_address, token_address, capacity)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (from_address, to_address, token_address)
			DO UPDATE SET capacity = EXCLUDED.capacity`,
			edge.From.String(), edge.To.String(), edge.Token.String(), edge.Capacity.String())
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// UpsertEdges writes every edge in the batch inside a single transaction,
// rolling back the whole batch if any one upsert fails. The retry backoff
// wraps the transaction as a unit: a transient failure restarts the batch
// from scratch rather than resuming partway through.
func (s *PostgresEdgeStore) UpsertEdges(ctx context.Context, edges []domain.Edge) error {
	if len(edges) == 0 {
		return nil
	}

	return retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		err := database.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
			for _, edge := range edges {
				_, err := tx.Exec(ctx, `
					INSERT INTO trust_edges (from_address, to_address, token_address, capacity)
					VALUES ($1, $2, $3, $4)
					ON CONFLICT (from_address, to_address, token_address)
					DO UPDATE SET capacity = EXCLUDED.capacity`,
					edge.From.String(), edge.To.String(), edge.Token.String(), edge.Capacity.String())
				if err != nil {
					return fmt.Errorf("store: upserting trust edge %s->%s: %w", edge.From, edge.To, err)
				}
			}
			return nil
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

// DeleteEdge removes the trust limit for (from, to, token), if any.
func (s *PostgresEdgeStore) DeleteEdge(ctx context.Context, from, to, token domain.Address) error {
	return retry.Do(ctx, s.backoff(), func(ctx context.Context) error {
		_, err := s.db.Exec(ctx, `
			DELETE FROM trust_edges
			WHERE from_address = $1 AND to_address = $2 AND token_address = $3`,
			from.String(), to.String(), token.String())
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
}

func decodeEdge(fromHex, toHex, tokenHex, capacityText string) (domain.Edge, error) {
	from, err := domain.ParseAddress(fromHex)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("store: decoding trust edge: %w", err)
	}
	to, err := domain.ParseAddress(toHex)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("store: decoding trust edge: %w", err)
	}
	token, err := domain.ParseAddress(tokenHex)
	if err != nil {
		return domain.Edge{}, fmt.Errorf("store: decoding trust edge: %w", err)
	}
	capacity, ok := new(big.Int).SetString(capacityText, 10)
	if !ok {
		return domain.Edge{}, fmt.Errorf("store: decoding trust edge: invalid capacity %q", capacityText)
	}

	return domain.Edge{From: from, To: to, Token: token, Capacity: domain.NewAmountFromBigInt(capacity)}, nil
}
