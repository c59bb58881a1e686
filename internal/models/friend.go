package models

import "time"

// FriendLink is the database representation of one direction of a friendship.
type FriendLink struct {
	FriendLinkID string `db:"friend_link_id"`
	UserID       string `db:"user_id"`
	FriendUserID string `db:"friend_user_id"`
	Nickname     string `db:"nickname"`
	Timestamps
}

// FriendRequest is the database representation of a friend request row,
// unique on (requester_user_id, receiver_user_id).
type FriendRequest struct {
	RequestID         string `db:"request_id"`
	RequesterUserID   string `db:"requester_user_id"`
	ReceiverUserID    string `db:"receiver_user_id"`
	Status            string `db:"status"`
	RequestedNickname string `db:"requested_nickname"`
	Timestamps
	ResolvedAt *time.Time `db:"resolved_at"`
}
