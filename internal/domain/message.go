package domain

import "time"

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentImage ContentType = "image"
	ContentLink  ContentType = "link"
	ContentVideo ContentType = "video"
	ContentAudio ContentType = "audio"
	// "audis" — опечатка в историческом enum, клиенты её всё ещё шлют.
	ContentAudis ContentType = "audis"
)

func (t ContentType) Known() bool {
	switch t {
	case ContentText, ContentImage, ContentLink, ContentVideo, ContentAudio, ContentAudis:
		return true
	}
	return false
}

type Message struct {
	ID              int64       `db:"id"`
	RoomID          *int64      `db:"room_id"`
	SenderID        *int64      `db:"user_id"`
	Content         string      `db:"content"`
	ContentType     ContentType `db:"content_type"`
	ParentMessageID *int64      `db:"parent_message_id"`
	CreatedAt       time.Time   `db:"created_at"`
}
