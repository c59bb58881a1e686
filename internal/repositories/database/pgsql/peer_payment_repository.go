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
)

type PgxPeerPaymentRepository struct {
	db *pgxpool.Pool
}

func newPgxPeerPaymentRepository(db *pgxpool.Pool) portsrepo.PeerPaymentRepository {
	return &PgxPeerPaymentRepository{db: db}
}

// Ensure PgxPeerPaymentRepository implements portsrepo.PeerPaymentRepository
var _ portsrepo.PeerPaymentRepository = (*PgxPeerPaymentRepository)(nil)

func toModelPeerPaymentRequest(d domain.PeerPaymentRequest) models.PeerPaymentRequest {
	return models.PeerPaymentRequest{
		RequestID:       d.RequestID,
		RequesterUserID: d.RequesterUserID,
		PayerUserID:     d.PayerUserID,
		TargetWalletID:  d.TargetWalletID,
		Amount:          d.Amount,
		Note:            d.Note,
		Status:          string(d.Status),
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		ResolvedAt:   d.ResolvedAt,
		FromWalletID: d.FromWalletID,
		RateUsed:     d.RateUsed,
	}
}

func toDomainPeerPaymentRequest(m models.PeerPaymentRequest) domain.PeerPaymentRequest {
	return domain.PeerPaymentRequest{
		RequestID:       m.RequestID,
		RequesterUserID: m.RequesterUserID,
		PayerUserID:     m.PayerUserID,
		TargetWalletID:  m.TargetWalletID,
		Amount:          m.Amount,
		Note:            m.Note,
		Status:          domain.RequestStatus(m.Status),
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ResolvedAt:   m.ResolvedAt,
		FromWalletID: m.FromWalletID,
		RateUsed:     m.RateUsed,
	}
}

const peerPaymentColumns = `request_id, requester_user_id, payer_user_id, target_wallet_id, amount, note, status, created_at, updated_at, resolved_at, from_wallet_id, rate_used`

func scanPeerPaymentRequest(row pgx.Row) (models.PeerPaymentRequest, error) {
	var m models.PeerPaymentRequest
	err := row.Scan(
		&m.RequestID,
		&m.RequesterUserID,
		&m.PayerUserID,
		&m.TargetWalletID,
		&m.Amount,
		&m.Note,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.ResolvedAt,
		&m.FromWalletID,
		&m.RateUsed,
	)
	return m, err
}

func (r *PgxPeerPaymentRepository) FindRequestForPayer(ctx context.Context, requestID, payerUserID string) (*domain.PeerPaymentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM peer_payment_requests WHERE request_id = $1 AND payer_user_id = $2;`, peerPaymentColumns)
	return r.findRequest(ctx, query, requestID, payerUserID)
}

func (r *PgxPeerPaymentRepository) FindRequestForRequester(ctx context.Context, requestID, requesterUserID string) (*domain.PeerPaymentRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM peer_payment_requests WHERE request_id = $1 AND requester_user_id = $2;`, peerPaymentColumns)
	return r.findRequest(ctx, query, requestID, requesterUserID)
}

func (r *PgxPeerPaymentRepository) findRequest(ctx context.Context, query string, args ...any) (*domain.PeerPaymentRequest, error) {
	m, err := scanPeerPaymentRequest(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find peer payment request: %w", err)
	}

	d := toDomainPeerPaymentRequest(m)
	return &d, nil
}

func (r *PgxPeerPaymentRepository) ListPendingByPayer(ctx context.Context, payerUserID string) ([]domain.PeerPaymentRequest, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM peer_payment_requests WHERE payer_user_id = $1 AND status = 'PENDING' ORDER BY created_at DESC;`,
		peerPaymentColumns,
	)
	return r.listRequests(ctx, query, payerUserID)
}

func (r *PgxPeerPaymentRepository) ListPendingByRequester(ctx context.Context, requesterUserID string) ([]domain.PeerPaymentRequest, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM peer_payment_requests WHERE requester_user_id = $1 AND status = 'PENDING' ORDER BY created_at DESC;`,
		peerPaymentColumns,
	)
	return r.listRequests(ctx, query, requesterUserID)
}

func (r *PgxPeerPaymentRepository) listRequests(ctx context.Context, query string, args ...any) ([]domain.PeerPaymentRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query peer payment requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.PeerPaymentRequest{}
	for rows.Next() {
		m, err := scanPeerPaymentRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan peer payment request row: %w", err)
		}
		requests = append(requests, toDomainPeerPaymentRequest(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating peer payment request rows: %w", err)
	}
	return requests, nil
}

func (r *PgxPeerPaymentRepository) SaveRequest(ctx context.Context, req domain.PeerPaymentRequest) error {
	query := `
		INSERT INTO peer_payment_requests (request_id, requester_user_id, payer_user_id, target_wallet_id, amount, note, status, created_at, updated_at, resolved_at, from_wallet_id, rate_used)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	m := toModelPeerPaymentRequest(req)
	_, err := r.db.Exec(ctx, query,
		m.RequestID, m.RequesterUserID, m.PayerUserID, m.TargetWalletID,
		m.Amount, m.Note, m.Status, m.CreatedAt, m.UpdatedAt,
		m.ResolvedAt, m.FromWalletID, m.RateUsed,
	)
	if err != nil {
		return fmt.Errorf("failed to save peer payment request %s: %w", req.RequestID, err)
	}
	return nil
}

const updatePeerPaymentRequestQuery = `
	UPDATE peer_payment_requests
	SET status = $1, updated_at = $2, resolved_at = $3, from_wallet_id = $4, rate_used = $5
	WHERE request_id = $6;
`

func (r *PgxPeerPaymentRepository) UpdateRequest(ctx context.Context, req domain.PeerPaymentRequest) error {
	m := toModelPeerPaymentRequest(req)
	tag, err := r.db.Exec(ctx, updatePeerPaymentRequestQuery,
		m.Status, m.UpdatedAt, m.ResolvedAt, m.FromWalletID, m.RateUsed, m.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update peer payment request %s: %w", req.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxPeerPaymentRepository) SettleRequest(ctx context.Context, req domain.PeerPaymentRequest, posting domain.TransferPosting) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for peer payment settlement: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback is a no-op after commit

	// Guard against a concurrent accept of the same request: only the
	// transition out of PENDING settles.
	m := toModelPeerPaymentRequest(req)
	tag, err := tx.Exec(ctx, `
		UPDATE peer_payment_requests
		SET status = $1, updated_at = $2, resolved_at = $3, from_wallet_id = $4, rate_used = $5
		WHERE request_id = $6 AND status = 'PENDING';
	`, m.Status, m.UpdatedAt, m.ResolvedAt, m.FromWalletID, m.RateUsed, m.RequestID)
	if err != nil {
		return fmt.Errorf("failed to update peer payment request %s: %w", req.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: request is not pending", apperrors.ErrConflict)
	}

	if err := postTransferTx(ctx, tx, posting); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit peer payment settlement: %w", err)
	}
	return nil
}
