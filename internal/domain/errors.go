package domain

import "errors"

// NotFound
var (
	ErrRoomNotFound         = errors.New("chat room not found")
	ErrUserNotFound         = errors.New("user not found")
	ErrMemberNotFound       = errors.New("chat room member not found")
	ErrMessageNotFound      = errors.New("message not found")
	ErrParentNotFound       = errors.New("replied message not found")
	ErrRequestNotFound      = errors.New("friend request not found")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrBanNotFound          = errors.New("user is not banned")
	ErrLikeNotFound         = errors.New("user did not like this message")
)

// Conflict
var (
	ErrAlreadyMember  = errors.New("user is already a member of the chat room")
	ErrAlreadyBanned  = errors.New("user is already banned in this chat room")
	ErrAlreadyLiked   = errors.New("user already liked this message")
	ErrRequestPending = errors.New("friend request is already pending")
)

// Forbidden / invalid input
var (
	ErrNotMember      = errors.New("user is not a member of this chat room")
	ErrForbidden      = errors.New("only admins can remove other members")
	ErrSelfRequest    = errors.New("cannot send a friend request to yourself")
	ErrSelfRoom       = errors.New("cannot open a private room with yourself")
	ErrInvalidContent = errors.New("invalid message content")
)

// Unavailable — временная ошибка стора, можно ретраить.
var ErrUnavailable = errors.New("storage temporarily unavailable")
