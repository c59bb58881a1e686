package services

import (
	"context"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
)

// FriendRequestSvc drives the friend-request state machine.
type FriendRequestSvc interface {
	// CreateFriendRequest starts (or refreshes) a request to the user behind
	// the given email. A reverse Pending request is treated as mutual intent
	// and accepted immediately.
	CreateFriendRequest(ctx context.Context, userID string, req dto.CreateFriendRequestRequest) (*dto.FriendRequestResponse, error)

	// ListIncomingRequests lists Pending requests aimed at the user, newest-first.
	ListIncomingRequests(ctx context.Context, userID string) ([]dto.FriendRequestResponse, error)

	// ListOutgoingRequests lists Pending requests the user has sent, newest-first.
	ListOutgoingRequests(ctx context.Context, userID string) ([]dto.FriendRequestResponse, error)

	// AcceptFriendRequest resolves a Pending request and creates both
	// directional friend links. False when no Pending row matches.
	AcceptFriendRequest(ctx context.Context, receiverUserID, requestID string) (bool, error)

	// RejectFriendRequest stamps a Pending request Rejected. False when no
	// Pending row matches.
	RejectFriendRequest(ctx context.Context, receiverUserID, requestID string) (bool, error)

	// CancelFriendRequest stamps the requester's own Pending request
	// Cancelled. False when no Pending row matches.
	CancelFriendRequest(ctx context.Context, requesterUserID, requestID string) (bool, error)
}

// FriendLinkSvc manages established friendships.
type FriendLinkSvc interface {
	// ListFriends lists the user's friends sorted by nickname.
	ListFriends(ctx context.Context, userID string) ([]dto.FriendResponse, error)

	// UpdateNickname renames the user's view of one friend.
	UpdateNickname(ctx context.Context, userID, friendUserID string, req dto.UpdateFriendNicknameRequest) (*dto.FriendResponse, error)

	// RemoveFriend deletes both directional links in one call. False when
	// neither direction exists.
	RemoveFriend(ctx context.Context, userID, friendUserID string) (bool, error)

	// ListFriendWallets returns a friend's wallets with balances. The caller
	// must hold a link TO the friend; the reverse link alone is not enough.
	ListFriendWallets(ctx context.Context, userID, friendUserID string) ([]domain.Wallet, error)

	// DisplayNameFor resolves how viewerUserID refers to otherUserID:
	// nickname, then full name, then email, then "user {id}".
	DisplayNameFor(ctx context.Context, viewerUserID, otherUserID string) string
}

// FriendSvcFacade combines all friendship-related service interfaces
type FriendSvcFacade interface {
	FriendRequestSvc
	FriendLinkSvc
}
