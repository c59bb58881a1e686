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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxFriendRepository struct {
	db *pgxpool.Pool
}

func newPgxFriendRepository(db *pgxpool.Pool) portsrepo.FriendRepository {
	return &PgxFriendRepository{db: db}
}

// Ensure PgxFriendRepository implements portsrepo.FriendRepository
var _ portsrepo.FriendRepository = (*PgxFriendRepository)(nil)

func toModelFriendLink(d domain.FriendLink) models.FriendLink {
	return models.FriendLink{
		FriendLinkID: d.FriendLinkID,
		UserID:       d.UserID,
		FriendUserID: d.FriendUserID,
		Nickname:     d.Nickname,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

func toDomainFriendLink(m models.FriendLink) domain.FriendLink {
	return domain.FriendLink{
		FriendLinkID: m.FriendLinkID,
		UserID:       m.UserID,
		FriendUserID: m.FriendUserID,
		Nickname:     m.Nickname,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

func toModelFriendRequest(d domain.FriendRequest) models.FriendRequest {
	return models.FriendRequest{
		RequestID:         d.RequestID,
		RequesterUserID:   d.RequesterUserID,
		ReceiverUserID:    d.ReceiverUserID,
		Status:            string(d.Status),
		RequestedNickname: d.RequestedNickname,
		Timestamps: models.Timestamps{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
		ResolvedAt: d.ResolvedAt,
	}
}

func toDomainFriendRequest(m models.FriendRequest) domain.FriendRequest {
	return domain.FriendRequest{
		RequestID:         m.RequestID,
		RequesterUserID:   m.RequesterUserID,
		ReceiverUserID:    m.ReceiverUserID,
		Status:            domain.RequestStatus(m.Status),
		RequestedNickname: m.RequestedNickname,
		Timestamps: domain.Timestamps{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		ResolvedAt: m.ResolvedAt,
	}
}

const friendLinkColumns = `friend_link_id, user_id, friend_user_id, nickname, created_at, updated_at`

func scanFriendLink(row pgx.Row) (models.FriendLink, error) {
	var m models.FriendLink
	err := row.Scan(&m.FriendLinkID, &m.UserID, &m.FriendUserID, &m.Nickname, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

const friendRequestColumns = `request_id, requester_user_id, receiver_user_id, status, requested_nickname, created_at, updated_at, resolved_at`

func scanFriendRequest(row pgx.Row) (models.FriendRequest, error) {
	var m models.FriendRequest
	err := row.Scan(
		&m.RequestID,
		&m.RequesterUserID,
		&m.ReceiverUserID,
		&m.Status,
		&m.RequestedNickname,
		&m.CreatedAt,
		&m.UpdatedAt,
		&m.ResolvedAt,
	)
	return m, err
}

func (r *PgxFriendRepository) FindLink(ctx context.Context, userID, friendUserID string) (*domain.FriendLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM friends WHERE user_id = $1 AND friend_user_id = $2;`, friendLinkColumns)

	m, err := scanFriendLink(r.db.QueryRow(ctx, query, userID, friendUserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find friend link %s -> %s: %w", userID, friendUserID, err)
	}

	d := toDomainFriendLink(m)
	return &d, nil
}

func (r *PgxFriendRepository) AnyLinkBetween(ctx context.Context, userA, userB string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM friends
			WHERE (user_id = $1 AND friend_user_id = $2)
			   OR (user_id = $2 AND friend_user_id = $1)
		);
	`
	var exists bool
	if err := r.db.QueryRow(ctx, query, userA, userB).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check friendship between %s and %s: %w", userA, userB, err)
	}
	return exists, nil
}

func (r *PgxFriendRepository) ListLinksByUser(ctx context.Context, userID string) ([]domain.FriendLink, error) {
	query := fmt.Sprintf(`SELECT %s FROM friends WHERE user_id = $1 ORDER BY nickname;`, friendLinkColumns)

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend links for user %s: %w", userID, err)
	}
	defer rows.Close()

	links := []domain.FriendLink{}
	for rows.Next() {
		m, err := scanFriendLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend link row: %w", err)
		}
		links = append(links, toDomainFriendLink(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend link rows: %w", err)
	}
	return links, nil
}

func (r *PgxFriendRepository) UpdateLinkNickname(ctx context.Context, link domain.FriendLink) error {
	query := `
		UPDATE friends
		SET nickname = $1, updated_at = $2
		WHERE user_id = $3 AND friend_user_id = $4;
	`
	tag, err := r.db.Exec(ctx, query, link.Nickname, link.UpdatedAt, link.UserID, link.FriendUserID)
	if err != nil {
		return fmt.Errorf("failed to update nickname for friend link %s -> %s: %w", link.UserID, link.FriendUserID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFriendRepository) DeleteLinkPair(ctx context.Context, userA, userB string) (int64, error) {
	query := `
		DELETE FROM friends
		WHERE (user_id = $1 AND friend_user_id = $2)
		   OR (user_id = $2 AND friend_user_id = $1);
	`
	tag, err := r.db.Exec(ctx, query, userA, userB)
	if err != nil {
		return 0, fmt.Errorf("failed to delete friend links between %s and %s: %w", userA, userB, err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxFriendRepository) FindRequestForReceiver(ctx context.Context, requestID, receiverUserID string) (*domain.FriendRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM friend_requests WHERE request_id = $1 AND receiver_user_id = $2;`, friendRequestColumns)
	return r.findRequest(ctx, query, requestID, receiverUserID)
}

func (r *PgxFriendRepository) FindRequestForRequester(ctx context.Context, requestID, requesterUserID string) (*domain.FriendRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM friend_requests WHERE request_id = $1 AND requester_user_id = $2;`, friendRequestColumns)
	return r.findRequest(ctx, query, requestID, requesterUserID)
}

func (r *PgxFriendRepository) FindRequestBetween(ctx context.Context, requesterUserID, receiverUserID string) (*domain.FriendRequest, error) {
	query := fmt.Sprintf(`SELECT %s FROM friend_requests WHERE requester_user_id = $1 AND receiver_user_id = $2;`, friendRequestColumns)
	return r.findRequest(ctx, query, requesterUserID, receiverUserID)
}

func (r *PgxFriendRepository) FindPendingBetween(ctx context.Context, requesterUserID, receiverUserID string) (*domain.FriendRequest, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM friend_requests WHERE requester_user_id = $1 AND receiver_user_id = $2 AND status = 'PENDING';`,
		friendRequestColumns,
	)
	return r.findRequest(ctx, query, requesterUserID, receiverUserID)
}

func (r *PgxFriendRepository) findRequest(ctx context.Context, query string, args ...any) (*domain.FriendRequest, error) {
	m, err := scanFriendRequest(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find friend request: %w", err)
	}

	d := toDomainFriendRequest(m)
	return &d, nil
}

func (r *PgxFriendRepository) ListPendingByReceiver(ctx context.Context, receiverUserID string) ([]domain.FriendRequest, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM friend_requests WHERE receiver_user_id = $1 AND status = 'PENDING' ORDER BY created_at DESC;`,
		friendRequestColumns,
	)
	return r.listRequests(ctx, query, receiverUserID)
}

func (r *PgxFriendRepository) ListPendingByRequester(ctx context.Context, requesterUserID string) ([]domain.FriendRequest, error) {
	query := fmt.Sprintf(
		`SELECT %s FROM friend_requests WHERE requester_user_id = $1 AND status = 'PENDING' ORDER BY created_at DESC;`,
		friendRequestColumns,
	)
	return r.listRequests(ctx, query, requesterUserID)
}

func (r *PgxFriendRepository) listRequests(ctx context.Context, query string, args ...any) ([]domain.FriendRequest, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query friend requests: %w", err)
	}
	defer rows.Close()

	requests := []domain.FriendRequest{}
	for rows.Next() {
		m, err := scanFriendRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan friend request row: %w", err)
		}
		requests = append(requests, toDomainFriendRequest(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating friend request rows: %w", err)
	}
	return requests, nil
}

func (r *PgxFriendRepository) SaveRequest(ctx context.Context, req domain.FriendRequest) error {
	query := `
		INSERT INTO friend_requests (request_id, requester_user_id, receiver_user_id, status, requested_nickname, created_at, updated_at, resolved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	m := toModelFriendRequest(req)
	_, err := r.db.Exec(ctx, query,
		m.RequestID, m.RequesterUserID, m.ReceiverUserID, m.Status,
		m.RequestedNickname, m.CreatedAt, m.UpdatedAt, m.ResolvedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: a friend request for this pair already exists", apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save friend request %s: %w", req.RequestID, err)
	}
	return nil
}

const updateFriendRequestQuery = `
	UPDATE friend_requests
	SET status = $1, requested_nickname = $2, updated_at = $3, resolved_at = $4
	WHERE request_id = $5;
`

func (r *PgxFriendRepository) UpdateRequest(ctx context.Context, req domain.FriendRequest) error {
	m := toModelFriendRequest(req)
	tag, err := r.db.Exec(ctx, updateFriendRequestQuery,
		m.Status, m.RequestedNickname, m.UpdatedAt, m.ResolvedAt, m.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update friend request %s: %w", req.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxFriendRepository) AcceptRequest(ctx context.Context, req domain.FriendRequest, links []domain.FriendLink) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for friend request acceptance: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // Rollback is a no-op after commit

	m := toModelFriendRequest(req)
	tag, err := tx.Exec(ctx, updateFriendRequestQuery,
		m.Status, m.RequestedNickname, m.UpdatedAt, m.ResolvedAt, m.RequestID,
	)
	if err != nil {
		return fmt.Errorf("failed to update friend request %s: %w", req.RequestID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	// Links are only created when none exist yet; a re-accepted request
	// between already-linked users must not duplicate the pair.
	var exists bool
	existsQuery := `
		SELECT EXISTS (
			SELECT 1 FROM friends
			WHERE (user_id = $1 AND friend_user_id = $2)
			   OR (user_id = $2 AND friend_user_id = $1)
		);
	`
	err = tx.QueryRow(ctx, existsQuery, req.RequesterUserID, req.ReceiverUserID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing friend links: %w", err)
	}

	if !exists {
		insertQuery := `
			INSERT INTO friends (friend_link_id, user_id, friend_user_id, nickname, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6);
		`
		batch := &pgx.Batch{}
		for _, link := range links {
			lm := toModelFriendLink(link)
			batch.Queue(insertQuery, lm.FriendLinkID, lm.UserID, lm.FriendUserID, lm.Nickname, lm.CreatedAt, lm.UpdatedAt)
		}

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close() //nolint:errcheck
				return fmt.Errorf("failed to insert friend link: %w", err)
			}
		}
		if err := results.Close(); err != nil {
			return fmt.Errorf("failed to close friend link batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit friend request acceptance: %w", err)
	}
	return nil
}
