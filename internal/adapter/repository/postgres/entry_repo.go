package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/corebank/internal/domain"
	"github.com/iho/corebank/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository. Entries are
// append-only: there is no update or delete path.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Append writes ledger entries inside an open transaction. An entry id
// comes from the sequence, so ids are assigned in commit order.
func (r *EntryRepository) Append(ctx context.Context, tx usecase.Transaction, entries ...*domain.Entry) error {
	pgxTx := tx.(*Tx).PgxTx()

	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(
			`INSERT INTO entries (account_id, kind, amount, from_account, to_account, description, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id`,
			entry.AccountID, string(entry.Kind), entry.Amount.Units(),
			entry.FromAccount, entry.ToAccount, entry.Description, entry.CreatedAt,
		)
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()

	for _, entry := range entries {
		if err := results.QueryRow().Scan(&entry.ID); err != nil {
			return err
		}
	}

	return results.Close()
}

// ListByAccount lists entries for an account, newest first.
func (r *EntryRepository) ListByAccount(ctx context.Context, accountID int64, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, account_id, kind, amount, from_account, to_account, description, created_at
		 FROM entries
		 WHERE account_id = $1
		 ORDER BY id DESC
		 LIMIT $2 OFFSET $3`,
		accountID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		var (
			entry  domain.Entry
			kind   string
			amount int64
		)

		if err := rows.Scan(&entry.ID, &entry.AccountID, &kind, &amount,
			&entry.FromAccount, &entry.ToAccount, &entry.Description, &entry.CreatedAt); err != nil {
			return nil, err
		}

		entry.Kind = domain.EntryKind(kind)
		entry.Amount = domain.MoneyFromUnits(amount)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}
