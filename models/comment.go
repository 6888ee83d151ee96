package models

import (
	"time"
)

type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID    string    `json:"postId" gorm:"column:post_id;type:uuid;not null"`
	UserID    string    `json:"userId" gorm:"column:user_id;type:uuid;not null"`
	Content   string    `json:"content" binding:"required"`
	CreatedAt time.Time `json:"createdAt"`
}

type CommentCreate struct {
	Content string `json:"content" binding:"required"`
}

func (Comment) TableName() string {
	return "comments"
}
