package models

import (
	"time"
)

// CreatorApplicationStatus statuts possibles d'une demande de passage créateur
type CreatorApplicationStatus string

const (
	CreatorApplicationPending  CreatorApplicationStatus = "PENDING"
	CreatorApplicationApproved CreatorApplicationStatus = "APPROVED"
	CreatorApplicationRejected CreatorApplicationStatus = "REJECTED"
)

// CreatorApplication représente une demande pour devenir créateur de contenu
type CreatorApplication struct {
	ID               string                   `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID           string                   `json:"userId" gorm:"type:uuid;not null"`
	FullName         string                   `json:"fullName" binding:"required"`
	Country          string                   `json:"country" binding:"required"`
	City             string                   `json:"city" binding:"required"`
	PhoneNumber      string                   `json:"phoneNumber" binding:"required"`
	SocialLink       string                   `json:"socialLink"`
	DocumentProofUrl string                   `json:"documentProofUrl"`
	Status           CreatorApplicationStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	ReviewedBy       string                   `json:"reviewedBy" gorm:"type:uuid"`
	CreatedAt        time.Time                `json:"createdAt"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

func (CreatorApplication) TableName() string {
	return "creator_applications"
}

// CreatorApplicationCreate modèle pour soumettre une demande créateur
type CreatorApplicationCreate struct {
	FullName    string `json:"fullName" form:"fullName" binding:"required" example:"Samuel Pokam"`
	Country     string `json:"country" form:"country" binding:"required" example:"Cameroun"`
	City        string `json:"city" form:"city" binding:"required" example:"Douala"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" binding:"required" example:"+237690000000"`
	SocialLink  string `json:"socialLink" form:"socialLink" example:"https://x.com/samuel"`
}

// CreatorApplicationStatusUpdate modèle pour la revue admin d'une demande
type CreatorApplicationStatusUpdate struct {
	Status CreatorApplicationStatus `json:"status" binding:"required" example:"APPROVED"`
}
