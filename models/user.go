package models

import (
	"database/sql"
	"time"
)

type Role string

const (
	AdminRole   Role = "ADMIN"
	UserRole    Role = "USER"
	CreatorRole Role = "CREATOR"
)

// User représente un utilisateur de la plateforme
type User struct {
	ID                 string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Email              string       `json:"email" binding:"required,email" gorm:"uniqueIndex"`
	Password           string       `json:"-" binding:"required,min=6"`
	UserName           string       `json:"username"`
	Role               Role         `json:"role" gorm:"type:varchar(20);default:'USER'"`
	Bio                string       `json:"bio"`
	ProfilePicture     string       `json:"profilePicture"`
	BannerPicture      string       `json:"bannerPicture"`
	SubscriptionPrice  int          `json:"subscriptionPrice"` // prix mensuel en XAF
	Enable             bool         `json:"enable" gorm:"default:true"`
	SubscriptionEnable bool         `json:"subscriptionEnable" gorm:"default:true"`
	CommentsEnable     bool         `json:"commentsEnable" gorm:"default:true"`
	MessageEnable      bool         `json:"messageEnable" gorm:"default:true"`
	EmailVerifiedAt    sql.NullTime `json:"emailVerifiedAt" swaggerignore:"true"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// UserLogin modèle pour la connexion
type UserLogin struct {
	Email    string `json:"email" binding:"required,email" example:"samuel@exemple.com"`
	Password string `json:"password" binding:"required" example:"Secret123"`
}

// UserUpdate modèle pour la mise à jour du profil
type UserUpdate struct {
	UserName           string `json:"username"`
	Bio                string `json:"bio"`
	SubscriptionPrice  *int   `json:"subscriptionPrice"`
	SubscriptionEnable *bool  `json:"subscriptionEnable"`
	CommentsEnable     *bool  `json:"commentsEnable"`
	MessageEnable      *bool  `json:"messageEnable"`
}

func (User) TableName() string {
	return "users"
}
