package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fintrackr/fintrackr-backend/internal/apperrors"
	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
	portsrepo "github.com/fintrackr/fintrackr-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackr/fintrackr-backend/internal/core/ports/services"
	"github.com/fintrackr/fintrackr-backend/internal/dto"
	"github.com/fintrackr/fintrackr-backend/internal/middleware"
)

// friendService implements the friend-request state machine and link management.
type friendService struct {
	friendRepo portsrepo.FriendRepository
	userRepo   portsrepo.UserRepository
	walletSvc  portssvc.WalletReaderSvc
}

// NewFriendService creates a new friend service. The wallet service supplies
// balance-enriched wallet listings for friend wallet visibility.
func NewFriendService(friendRepo portsrepo.FriendRepository, userRepo portsrepo.UserRepository, walletSvc portssvc.WalletReaderSvc) portssvc.FriendSvcFacade {
	return &friendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
		walletSvc:  walletSvc,
	}
}

var _ portssvc.FriendSvcFacade = (*friendService)(nil)

// emailLocalPart returns everything before the '@', the default nickname for
// a friend who never got an explicit one.
func emailLocalPart(email string) string {
	if idx := strings.Index(email, "@"); idx > 0 {
		return email[:idx]
	}
	return email
}

// CreateFriendRequest starts a friend request addressed by email.
//
// Three outcomes are possible:
//   - a reverse Pending request exists: mutual intent, so that request is
//     accepted on the spot and returned;
//   - a forward request already exists in any status: it is reset to Pending
//     with the new nickname instead of inserting a duplicate row;
//   - otherwise a fresh Pending row is created.
func (s *friendService) CreateFriendRequest(ctx context.Context, userID string, req dto.CreateFriendRequestRequest) (*dto.FriendRequestResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	email := strings.ToLower(strings.TrimSpace(req.Email))
	receiver, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: user not found", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to resolve receiver: %w", err)
	}
	if receiver.UserID == userID {
		return nil, fmt.Errorf("%w: cannot friend yourself", apperrors.ErrValidation)
	}

	alreadyFriends, err := s.friendRepo.AnyLinkBetween(ctx, userID, receiver.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing friendship: %w", err)
	}
	if alreadyFriends {
		return nil, fmt.Errorf("%w: already friends", apperrors.ErrValidation)
	}

	requester, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve requester: %w", err)
	}

	// Reverse Pending request means both sides want the friendship; accept
	// it instead of stacking a second request.
	reverse, err := s.friendRepo.FindPendingBetween(ctx, receiver.UserID, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check reverse request: %w", err)
	}
	if reverse != nil {
		if err := s.acceptRequest(ctx, reverse, receiver, requester); err != nil {
			return nil, err
		}
		logger.Info("Friend request auto-merged with reverse pending request", slog.String("request_id", reverse.RequestID))
		resp := dto.ComposeFriendRequestResponse(reverse, receiver, requester)
		return &resp, nil
	}

	nickname := strings.TrimSpace(req.Nickname)
	now := time.Now().UTC()

	existing, err := s.friendRepo.FindRequestBetween(ctx, userID, receiver.UserID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing request: %w", err)
	}
	if existing != nil {
		existing.Status = domain.StatusPending
		existing.RequestedNickname = nickname
		existing.UpdatedAt = now
		existing.ResolvedAt = nil
		if err := s.friendRepo.UpdateRequest(ctx, *existing); err != nil {
			return nil, fmt.Errorf("failed to refresh friend request: %w", err)
		}
		resp := dto.ComposeFriendRequestResponse(existing, requester, receiver)
		return &resp, nil
	}

	request := domain.FriendRequest{
		RequestID:         uuid.NewString(),
		RequesterUserID:   userID,
		ReceiverUserID:    receiver.UserID,
		Status:            domain.StatusPending,
		RequestedNickname: nickname,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if err := s.friendRepo.SaveRequest(ctx, request); err != nil {
		return nil, fmt.Errorf("failed to save friend request: %w", err)
	}

	resp := dto.ComposeFriendRequestResponse(&request, requester, receiver)
	return &resp, nil
}

// acceptRequest resolves a Pending request and creates both directional
// links, skipping link creation if any link already exists between the pair.
func (s *friendService) acceptRequest(ctx context.Context, req *domain.FriendRequest, requester, receiver *domain.User) error {
	now := time.Now().UTC()

	requesterNickname := strings.TrimSpace(req.RequestedNickname)
	if requesterNickname == "" {
		requesterNickname = emailLocalPart(receiver.Email)
	}

	links := []domain.FriendLink{
		{
			FriendLinkID: uuid.NewString(),
			UserID:       requester.UserID,
			FriendUserID: receiver.UserID,
			Nickname:     requesterNickname,
			Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		},
		{
			FriendLinkID: uuid.NewString(),
			UserID:       receiver.UserID,
			FriendUserID: requester.UserID,
			Nickname:     emailLocalPart(requester.Email),
			Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
		},
	}

	req.Status = domain.StatusAccepted
	req.UpdatedAt = now
	req.ResolvedAt = &now

	if err := s.friendRepo.AcceptRequest(ctx, *req, links); err != nil {
		return fmt.Errorf("failed to accept friend request: %w", err)
	}
	return nil
}

func (s *friendService) ListIncomingRequests(ctx context.Context, userID string) ([]dto.FriendRequestResponse, error) {
	requests, err := s.friendRepo.ListPendingByReceiver(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list incoming requests: %w", err)
	}
	return s.composeRequestResponses(ctx, requests, userID)
}

func (s *friendService) ListOutgoingRequests(ctx context.Context, userID string) ([]dto.FriendRequestResponse, error) {
	requests, err := s.friendRepo.ListPendingByRequester(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list outgoing requests: %w", err)
	}
	return s.composeRequestResponses(ctx, requests, userID)
}

// composeRequestResponses joins requests with both parties' profiles using a
// single batched user lookup.
func (s *friendService) composeRequestResponses(ctx context.Context, requests []domain.FriendRequest, userID string) ([]dto.FriendRequestResponse, error) {
	ids := make([]string, 0, len(requests)*2+1)
	ids = append(ids, userID)
	for _, r := range requests {
		ids = append(ids, r.RequesterUserID, r.ReceiverUserID)
	}

	users, err := s.userRepo.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve request participants: %w", err)
	}

	out := make([]dto.FriendRequestResponse, 0, len(requests))
	for i := range requests {
		r := requests[i]
		requester, okR := users[r.RequesterUserID]
		receiver, okV := users[r.ReceiverUserID]
		if !okR || !okV {
			continue
		}
		out = append(out, dto.ComposeFriendRequestResponse(&r, &requester, &receiver))
	}
	return out, nil
}

// AcceptFriendRequest resolves a Pending request addressed to the receiver.
// Returns false (no error) when no Pending row matches.
func (s *friendService) AcceptFriendRequest(ctx context.Context, receiverUserID, requestID string) (bool, error) {
	req, err := s.friendRepo.FindRequestForReceiver(ctx, requestID, receiverUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get friend request: %w", err)
	}
	if req.Status != domain.StatusPending {
		return false, nil
	}

	requester, err := s.userRepo.FindUserByID(ctx, req.RequesterUserID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve requester: %w", err)
	}
	receiver, err := s.userRepo.FindUserByID(ctx, req.ReceiverUserID)
	if err != nil {
		return false, fmt.Errorf("failed to resolve receiver: %w", err)
	}

	if err := s.acceptRequest(ctx, req, requester, receiver); err != nil {
		return false, err
	}
	return true, nil
}

// RejectFriendRequest stamps a Pending request Rejected. False when no
// Pending row matches the receiver.
func (s *friendService) RejectFriendRequest(ctx context.Context, receiverUserID, requestID string) (bool, error) {
	req, err := s.friendRepo.FindRequestForReceiver(ctx, requestID, receiverUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get friend request: %w", err)
	}
	return s.resolveRequest(ctx, req, domain.StatusRejected)
}

// CancelFriendRequest stamps the requester's own Pending request Cancelled.
func (s *friendService) CancelFriendRequest(ctx context.Context, requesterUserID, requestID string) (bool, error) {
	req, err := s.friendRepo.FindRequestForRequester(ctx, requestID, requesterUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get friend request: %w", err)
	}
	return s.resolveRequest(ctx, req, domain.StatusCancelled)
}

func (s *friendService) resolveRequest(ctx context.Context, req *domain.FriendRequest, status domain.RequestStatus) (bool, error) {
	if req.Status != domain.StatusPending {
		return false, nil
	}
	now := time.Now().UTC()
	req.Status = status
	req.UpdatedAt = now
	req.ResolvedAt = &now
	if err := s.friendRepo.UpdateRequest(ctx, *req); err != nil {
		return false, fmt.Errorf("failed to resolve friend request: %w", err)
	}
	return true, nil
}

// ListFriends returns the user's friends joined to their profiles, sorted by
// nickname.
func (s *friendService) ListFriends(ctx context.Context, userID string) ([]dto.FriendResponse, error) {
	links, err := s.friendRepo.ListLinksByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend links: %w", err)
	}

	ids := make([]string, 0, len(links))
	for _, l := range links {
		ids = append(ids, l.FriendUserID)
	}
	users, err := s.userRepo.FindUsersByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve friend profiles: %w", err)
	}

	out := make([]dto.FriendResponse, 0, len(links))
	for _, l := range links {
		friend, ok := users[l.FriendUserID]
		if !ok {
			continue
		}
		out = append(out, dto.FriendResponse{
			FriendLinkID: l.FriendLinkID,
			FriendUserID: l.FriendUserID,
			Email:        friend.Email,
			DisplayName:  friend.DisplayName(),
			Nickname:     l.Nickname,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nickname < out[j].Nickname })
	return out, nil
}

// UpdateNickname renames one direction of a friendship.
func (s *friendService) UpdateNickname(ctx context.Context, userID, friendUserID string, req dto.UpdateFriendNicknameRequest) (*dto.FriendResponse, error) {
	link, err := s.friendRepo.FindLink(ctx, userID, friendUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get friend link: %w", err)
	}

	link.Nickname = strings.TrimSpace(req.Nickname)
	link.UpdatedAt = time.Now().UTC()
	if err := s.friendRepo.UpdateLinkNickname(ctx, *link); err != nil {
		return nil, fmt.Errorf("failed to update nickname: %w", err)
	}

	friend, err := s.userRepo.FindUserByID(ctx, friendUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve friend profile: %w", err)
	}

	return &dto.FriendResponse{
		FriendLinkID: link.FriendLinkID,
		FriendUserID: friend.UserID,
		Email:        friend.Email,
		DisplayName:  friend.DisplayName(),
		Nickname:     link.Nickname,
	}, nil
}

// RemoveFriend deletes both directional links between the two users. False
// when neither direction exists.
func (s *friendService) RemoveFriend(ctx context.Context, userID, friendUserID string) (bool, error) {
	removed, err := s.friendRepo.DeleteLinkPair(ctx, userID, friendUserID)
	if err != nil {
		return false, fmt.Errorf("failed to remove friend: %w", err)
	}
	return removed > 0, nil
}

// ListFriendWallets returns a friend's wallets with balances. Visibility is
// deliberately asymmetric: the caller must hold a link TO the friend, having
// been added by them is not enough.
func (s *friendService) ListFriendWallets(ctx context.Context, userID, friendUserID string) ([]domain.Wallet, error) {
	if _, err := s.friendRepo.FindLink(ctx, userID, friendUserID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: not friends", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to check friendship: %w", err)
	}

	wallets, err := s.walletSvc.ListWallets(ctx, friendUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list friend wallets: %w", err)
	}
	return wallets, nil
}

// DisplayNameFor resolves how the viewer refers to another user: friend
// nickname, then full name, then email, then a generic "user {id}".
func (s *friendService) DisplayNameFor(ctx context.Context, viewerUserID, otherUserID string) string {
	link, err := s.friendRepo.FindLink(ctx, viewerUserID, otherUserID)
	if err == nil && strings.TrimSpace(link.Nickname) != "" {
		return link.Nickname
	}

	other, err := s.userRepo.FindUserByID(ctx, otherUserID)
	if err == nil {
		if name := other.DisplayName(); strings.TrimSpace(name) != "" {
			return name
		}
	}

	return fmt.Sprintf("user %s", otherUserID)
}
