package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	"github.com/fintrackr/fintrackr-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxLedgerRepository struct {
	db *pgxpool.Pool
}

func newPgxLedgerRepository(db *pgxpool.Pool) portsrepo.LedgerRepository {
	return &PgxLedgerRepository{db: db}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepository
var _ portsrepo.LedgerRepository = (*PgxLedgerRepository)(nil)

func toModelEntry(d domain.LedgerEntry) models.LedgerEntry {
	return models.LedgerEntry{
		EntryID:    d.EntryID,
		UserID:     d.UserID,
		WalletID:   d.WalletID,
		Amount:     d.Amount,
		Direction:  string(d.Direction),
		CategoryID: d.CategoryID,
		Date:       d.Date,
		Note:       d.Note,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainEntry(m models.LedgerEntry) domain.LedgerEntry {
	return domain.LedgerEntry{
		EntryID:    m.EntryID,
		UserID:     m.UserID,
		WalletID:   m.WalletID,
		Amount:     m.Amount,
		Direction:  domain.EntryDirection(m.Direction),
		CategoryID: m.CategoryID,
		Date:       m.Date,
		Note:       m.Note,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const entryColumns = `entry_id, user_id, wallet_id, amount, direction, category_id, entry_date, note, created_at, updated_at`

func scanEntry(row pgx.Row) (models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.UserID,
		&m.WalletID,
		&m.Amount,
		&m.Direction,
		&m.CategoryID,
		&m.Date,
		&m.Note,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (r *PgxLedgerRepository) FindEntryForUser(ctx context.Context, userID, entryID string) (*domain.LedgerEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries WHERE entry_id = $1 AND user_id = $2;`, entryColumns)

	m, err := scanEntry(r.db.QueryRow(ctx, query, entryID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	d := toDomainEntry(m)
	return &d, nil
}

func (r *PgxLedgerRepository) ListEntriesByUser(ctx context.Context, userID string, filter portsrepo.EntryFilter) ([]domain.LedgerEntry, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries WHERE user_id = $1`, entryColumns)
	args := []any{userID}

	if filter.WalletID != nil {
		args = append(args, *filter.WalletID)
		query += fmt.Sprintf(" AND wallet_id = $%d", len(args))
	}
	if filter.Direction != nil {
		args = append(args, string(*filter.Direction))
		query += fmt.Sprintf(" AND direction = $%d", len(args))
	}
	if filter.DateFrom != nil {
		args = append(args, *filter.DateFrom)
		query += fmt.Sprintf(" AND entry_date >= $%d", len(args))
	}
	if filter.DateTo != nil {
		args = append(args, *filter.DateTo)
		query += fmt.Sprintf(" AND entry_date <= $%d", len(args))
	}
	query += " ORDER BY entry_date DESC, created_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries for user %s: %w", userID, err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		entries = append(entries, toDomainEntry(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}
	return entries, nil
}

const balanceExpr = `COALESCE(SUM(CASE WHEN direction = 'CREDIT' THEN amount ELSE -amount END), 0)`

func (r *PgxLedgerRepository) SumWalletBalance(ctx context.Context, userID, walletID string) (decimal.Decimal, error) {
	query := fmt.Sprintf(`SELECT %s FROM ledger_entries WHERE user_id = $1 AND wallet_id = $2;`, balanceExpr)

	var balance decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID, walletID).Scan(&balance); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balance for wallet %s: %w", walletID, err)
	}
	return balance, nil
}

func (r *PgxLedgerRepository) SumBalancesByWallet(ctx context.Context, userID string) (map[string]decimal.Decimal, error) {
	query := fmt.Sprintf(`SELECT wallet_id, %s FROM ledger_entries WHERE user_id = $1 GROUP BY wallet_id;`, balanceExpr)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances for user %s: %w", userID, err)
	}
	defer rows.Close()

	balances := map[string]decimal.Decimal{}
	for rows.Next() {
		var walletID string
		var balance decimal.Decimal
		if err := rows.Scan(&walletID, &balance); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		balances[walletID] = balance
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating balance rows: %w", err)
	}
	return balances, nil
}

func (r *PgxLedgerRepository) CountEntriesByWallet(ctx context.Context, userID, walletID string) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE user_id = $1 AND wallet_id = $2;`,
		userID, walletID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries for wallet %s: %w", walletID, err)
	}
	return count, nil
}

const insertEntryQuery = `
	INSERT INTO ledger_entries (entry_id, user_id, wallet_id, amount, direction, category_id, entry_date, note, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func insertEntryArgs(m models.LedgerEntry) []any {
	return []any{
		m.EntryID, m.UserID, m.WalletID, m.Amount, m.Direction,
		m.CategoryID, m.Date, m.Note, m.CreatedAt, m.UpdatedAt,
	}
}

func (r *PgxLedgerRepository) SaveEntry(ctx context.Context, entry domain.LedgerEntry) error {
	m := toModelEntry(entry)
	if _, err := r.db.Exec(ctx, insertEntryQuery, insertEntryArgs(m)...); err != nil {
		return fmt.Errorf("failed to save entry %s: %w", entry.EntryID, err)
	}
	return nil
}

func (r *PgxLedgerRepository) UpdateEntry(ctx context.Context, entry domain.LedgerEntry) error {
	query := `
		UPDATE ledger_entries
		SET wallet_id = $1, amount = $2, direction = $3, category_id = $4, entry_date = $5, note = $6, updated_at = $7
		WHERE entry_id = $8 AND user_id = $9;
	`
	m := toModelEntry(entry)
	tag, err := r.db.Exec(ctx, query,
		m.WalletID, m.Amount, m.Direction, m.CategoryID, m.Date, m.Note, m.UpdatedAt,
		m.EntryID, m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", entry.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) DeleteEntry(ctx context.Context, userID, entryID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM ledger_entries WHERE entry_id = $1 AND user_id = $2;`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxLedgerRepository) PostTransfer(ctx context.Context, posting domain.TransferPosting) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for posting: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback is a no-op after commit

	if err := postTransferTx(ctx, tx, posting); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit posting: %w", err)
	}
	return nil
}

// postTransferTx runs the balance-guarded entry pair insert inside an open
// transaction, shared with the peer payment settlement path.
func postTransferTx(ctx context.Context, tx pgx.Tx, posting domain.TransferPosting) error {
	// Serialize concurrent postings out of the same wallet.
	var lockedID string
	err := tx.QueryRow(ctx,
		`SELECT wallet_id FROM wallets WHERE wallet_id = $1 FOR UPDATE;`,
		posting.SourceWalletID,
	).Scan(&lockedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%w: source wallet %s", apperrors.ErrNotFound, posting.SourceWalletID)
		}
		return fmt.Errorf("failed to lock source wallet %s: %w", posting.SourceWalletID, err)
	}

	// Re-check the balance under the lock; the caller's early check can be
	// stale by the time the posting lands.
	var balance decimal.Decimal
	balanceQuery := fmt.Sprintf(`SELECT %s FROM ledger_entries WHERE user_id = $1 AND wallet_id = $2;`, balanceExpr)
	if err := tx.QueryRow(ctx, balanceQuery, posting.Debit.UserID, posting.SourceWalletID).Scan(&balance); err != nil {
		return fmt.Errorf("failed to recompute balance for wallet %s: %w", posting.SourceWalletID, err)
	}
	if balance.LessThan(posting.RequiredBalance) {
		return fmt.Errorf("%w: insufficient balance", apperrors.ErrConflict)
	}

	debitCategory, err := getOrCreateCategory(ctx, tx, posting.DebitCategory)
	if err != nil {
		return err
	}
	creditCategory, err := getOrCreateCategory(ctx, tx, posting.CreditCategory)
	if err != nil {
		return err
	}

	debit := toModelEntry(posting.Debit)
	debit.CategoryID = debitCategory.CategoryID
	credit := toModelEntry(posting.Credit)
	credit.CategoryID = creditCategory.CategoryID

	batch := &pgx.Batch{}
	batch.Queue(insertEntryQuery, insertEntryArgs(debit)...)
	batch.Queue(insertEntryQuery, insertEntryArgs(credit)...)

	results := tx.SendBatch(ctx, batch)
	defer results.Close() //nolint:errcheck

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert posting entry: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("failed to close posting batch: %w", err)
	}
	return nil
}
