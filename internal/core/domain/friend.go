package domain

import "time"

// FriendLink is a one-directional acknowledgment that UserID has added
// FriendUserID as a friend, with a private nickname. Accepting a friend
// request always creates the two directional rows together; they are also
// removed together.
type FriendLink struct {
	FriendLinkID string `json:"friendLinkID"` // Primary Key (UUID)
	UserID       string `json:"userID"`
	FriendUserID string `json:"friendUserID"`
	Nickname     string `json:"nickname"`
	Timestamps
}

// RequestStatus is the lifecycle of a friend or peer-payment request.
// Pending is the only non-terminal state.
type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusAccepted  RequestStatus = "ACCEPTED"
	StatusRejected  RequestStatus = "REJECTED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// FriendRequest asks another user to become friends. At most one row exists
// per ordered (requester, receiver) pair; re-requesting resets the existing
// row to Pending instead of inserting a duplicate.
type FriendRequest struct {
	RequestID         string        `json:"requestID"` // Primary Key (UUID)
	RequesterUserID   string        `json:"requesterUserID"`
	ReceiverUserID    string        `json:"receiverUserID"`
	Status            RequestStatus `json:"status"`
	RequestedNickname string        `json:"requestedNickname"`
	Timestamps
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}
