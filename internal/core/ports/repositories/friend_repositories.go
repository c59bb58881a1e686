package repositories

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
)

// FriendLinkReader defines read operations for directional friend links
type FriendLinkReader interface {
	// FindLink retrieves the directional link from userID to friendUserID.
	FindLink(ctx context.Context, userID, friendUserID string) (*domain.FriendLink, error)

	// AnyLinkBetween reports whether a link exists in either direction.
	AnyLinkBetween(ctx context.Context, userA, userB string) (bool, error)

	// ListLinksByUser retrieves all links owned by a user.
	ListLinksByUser(ctx context.Context, userID string) ([]domain.FriendLink, error)
}

// FriendLinkWriter defines write operations for directional friend links
type FriendLinkWriter interface {
	// UpdateLinkNickname rewrites the nickname of one direction's link.
	UpdateLinkNickname(ctx context.Context, link domain.FriendLink) error

	// DeleteLinkPair removes both directional rows between two users in one
	// transaction, regardless of which side initiated. Returns the number of
	// rows removed.
	DeleteLinkPair(ctx context.Context, userA, userB string) (int64, error)
}

// FriendRequestReader defines read operations for friend requests
type FriendRequestReader interface {
	// FindRequestForReceiver retrieves a request scoped to its receiver.
	FindRequestForReceiver(ctx context.Context, requestID, receiverUserID string) (*domain.FriendRequest, error)

	// FindRequestForRequester retrieves a request scoped to its requester.
	FindRequestForRequester(ctx context.Context, requestID, requesterUserID string) (*domain.FriendRequest, error)

	// FindRequestBetween retrieves the row for an ordered (requester,
	// receiver) pair in any status; at most one exists.
	FindRequestBetween(ctx context.Context, requesterUserID, receiverUserID string) (*domain.FriendRequest, error)

	// FindPendingBetween retrieves the Pending row for an ordered pair, if any.
	FindPendingBetween(ctx context.Context, requesterUserID, receiverUserID string) (*domain.FriendRequest, error)

	// ListPendingByReceiver retrieves Pending requests aimed at a user, newest-first.
	ListPendingByReceiver(ctx context.Context, receiverUserID string) ([]domain.FriendRequest, error)

	// ListPendingByRequester retrieves Pending requests sent by a user, newest-first.
	ListPendingByRequester(ctx context.Context, requesterUserID string) ([]domain.FriendRequest, error)
}

// FriendRequestWriter defines write operations for friend requests
type FriendRequestWriter interface {
	// SaveRequest persists a new request.
	SaveRequest(ctx context.Context, req domain.FriendRequest) error

	// UpdateRequest rewrites a request's status, nickname and timestamps.
	UpdateRequest(ctx context.Context, req domain.FriendRequest) error

	// AcceptRequest marks the request Accepted and inserts both directional
	// friend links in one transaction, so the pair can never exist in only
	// one direction. Link creation is skipped when any link already exists
	// between the two users.
	AcceptRequest(ctx context.Context, req domain.FriendRequest, links []domain.FriendLink) error
}

// FriendRepository combines all friendship-related repository interfaces
type FriendRepository interface {
	FriendLinkReader
	FriendLinkWriter
	FriendRequestReader
	FriendRequestWriter
}
