package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liquidityPilot/internal/model"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS lp_operations (
	id           BIGSERIAL PRIMARY KEY,
	chain_id     BIGINT NOT NULL,
	chain        TEXT NOT NULL,
	op           TEXT NOT NULL,
	account      TEXT NOT NULL,
	token_a      TEXT NOT NULL,
	token_b      TEXT NOT NULL,
	pool_address TEXT NOT NULL DEFAULT '',
	stage        TEXT NOT NULL,
	amount       NUMERIC,
	min_out      NUMERIC,
	approval_tx  TEXT NOT NULL DEFAULT '',
	tx_hash      TEXT NOT NULL DEFAULT '',
	gas_used     BIGINT NOT NULL DEFAULT 0,
	error        TEXT NOT NULL DEFAULT '',
	started_at   TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Store persists operation records in Postgres.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(ctx context.Context, dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("open pg pool: %w", err)
	}
	return &Store{pool: pool}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the operations table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create lp_operations: %w", err)
	}
	return nil
}

const insertOperationSQL = `
INSERT INTO lp_operations (
	chain_id, chain, op, account, token_a, token_b, pool_address, stage,
	amount, min_out, approval_tx, tx_hash, gas_used, error, started_at, finished_at
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NULLIF($9,'')::numeric,NULLIF($10,'')::numeric,$11,$12,$13,$14,$15::timestamptz,$16::timestamptz)`

const recentOperationsSQL = `
SELECT chain_id, chain, op, account, token_a, token_b, pool_address, stage,
	COALESCE(amount::text, ''), COALESCE(min_out::text, ''), approval_tx, tx_hash, gas_used, error,
	to_char(started_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"'),
	to_char(finished_at AT TIME ZONE 'UTC', 'YYYY-MM-DD"T"HH24:MI:SS"Z"')
FROM lp_operations
WHERE account = $1
ORDER BY id DESC
LIMIT $2`

// operationBatch queues one insert per record.
func operationBatch(records []model.OperationRecord) *pgx.Batch {
	batch := &pgx.Batch{}
	for _, r := range records {
		batch.Queue(insertOperationSQL,
			r.ChainID,
			r.Chain,
			r.Op,
			r.Account,
			r.TokenA,
			r.TokenB,
			r.Pool,
			r.Stage,
			r.Amount,
			r.MinOut,
			r.ApprovalTx,
			r.TxHash,
			int64(r.GasUsed),
			r.Error,
			r.StartedAt,
			r.FinishedAt,
		)
	}
	return batch
}

// PutOperationBatch inserts operation records in one round trip.
func (s *Store) PutOperationBatch(ctx context.Context, records []model.OperationRecord) error {
	if len(records) == 0 {
		return nil
	}

	br := s.pool.SendBatch(ctx, operationBatch(records))
	defer br.Close()

	for range records {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("insert operation: %w", err)
		}
	}
	return nil
}

// RecentOperations returns the latest records for an account, newest first.
func (s *Store) RecentOperations(ctx context.Context, account string, limit int) ([]model.OperationRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx, recentOperationsSQL, account, limit)
	if err != nil {
		return nil, fmt.Errorf("query operations: %w", err)
	}
	defer rows.Close()

	var out []model.OperationRecord
	for rows.Next() {
		r, err := scanOperation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read operations: %w", err)
	}
	return out, nil
}

func scanOperation(row pgx.Row) (model.OperationRecord, error) {
	var r model.OperationRecord
	var gasUsed int64
	if err := row.Scan(
		&r.ChainID, &r.Chain, &r.Op, &r.Account, &r.TokenA, &r.TokenB, &r.Pool, &r.Stage,
		&r.Amount, &r.MinOut, &r.ApprovalTx, &r.TxHash, &gasUsed, &r.Error,
		&r.StartedAt, &r.FinishedAt,
	); err != nil {
		return model.OperationRecord{}, fmt.Errorf("scan operation: %w", err)
	}
	r.GasUsed = uint64(gasUsed)
	return r, nil
}
