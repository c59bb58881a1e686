package dto

import (
	"time"

	"github.com/fintrackr/fintrackr-backend/internal/core/domain"
)

// CreateFriendRequestRequest asks to friend another user, looked up by email.
type CreateFriendRequestRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname"`
}

// UpdateFriendNicknameRequest renames one direction of a friendship.
type UpdateFriendNicknameRequest struct {
	Nickname string `json:"nickname" binding:"required"`
}

// FriendRequestResponse enriches a friend request with both parties' display info.
type FriendRequestResponse struct {
	RequestID         string               `json:"requestID"`
	RequesterUserID   string               `json:"requesterUserID"`
	ReceiverUserID    string               `json:"receiverUserID"`
	Status            domain.RequestStatus `json:"status"`
	RequestedNickname string               `json:"requestedNickname,omitempty"`
	RequesterEmail    string               `json:"requesterEmail"`
	RequesterName     string               `json:"requesterName"`
	ReceiverEmail     string               `json:"receiverEmail"`
	ReceiverName      string               `json:"receiverName"`
	CreatedAt         time.Time            `json:"createdAt"`
}

// ComposeFriendRequestResponse joins a request with its two users.
func ComposeFriendRequestResponse(r *domain.FriendRequest, requester, receiver *domain.User) FriendRequestResponse {
	return FriendRequestResponse{
		RequestID:         r.RequestID,
		RequesterUserID:   r.RequesterUserID,
		ReceiverUserID:    r.ReceiverUserID,
		Status:            r.Status,
		RequestedNickname: r.RequestedNickname,
		RequesterEmail:    requester.Email,
		RequesterName:     requester.DisplayName(),
		ReceiverEmail:     receiver.Email,
		ReceiverName:      receiver.DisplayName(),
		CreatedAt:         r.CreatedAt,
	}
}

// FriendResponse is one friend as seen by the link owner.
type FriendResponse struct {
	FriendLinkID string `json:"friendLinkID"`
	FriendUserID string `json:"friendUserID"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	Nickname     string `json:"nickname"`
}
