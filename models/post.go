package models

import (
	"time"
)

type Post struct {
	ID        string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	AuthorID  string     `json:"authorId" gorm:"column:author_id;type:uuid;not null"`
	Content   string     `json:"content" binding:"required"`
	MediaURL  string     `json:"mediaUrl" gorm:"column:media_url"`
	IsPublic  bool       `json:"isPublic" gorm:"default:true"`
	Enable    bool       `json:"enable" gorm:"default:true"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

type PostCreate struct {
	Content  string `json:"content" binding:"required"`
	IsPublic bool   `json:"isPublic"`
}

type PostUpdate struct {
	Content  string `json:"content"`
	IsPublic *bool  `json:"isPublic"`
	Enable   *bool  `json:"enable"`
}

func (Post) TableName() string {
	return "posts"
}
