package models

import (
	"time"
)

// PrivateMessage représente un message direct entre deux utilisateurs
type PrivateMessage struct {
	ID         string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	SenderID   string     `json:"senderId" gorm:"column:sender_id;type:uuid;not null"`
	ReceiverID string     `json:"receiverId" gorm:"column:receiver_id;type:uuid;not null"`
	Content    string     `json:"content" binding:"required"`
	Status     string     `json:"status" gorm:"default:UNREAD"` // UNREAD, READ
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty" gorm:"index"`
}

// PrivateMessageCreate modèle pour l'envoi d'un message privé
type PrivateMessageCreate struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content" binding:"required"`
}

func (PrivateMessage) TableName() string {
	return "private_messages"
}
