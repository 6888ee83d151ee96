package models

import "time"

type ReportReason string

const (
	ReasonHarassment     ReportReason = "HARASSMENT"
	ReasonViolence       ReportReason = "VIOLENCE"
	ReasonNudity         ReportReason = "NUDITY"
	ReasonScam           ReportReason = "SCAM"
	ReasonMisinformation ReportReason = "MISINFORMATION"
	ReasonIllegalContent ReportReason = "ILLEGAL_CONTENT"
	ReasonOther          ReportReason = "OTHER"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportReviewed  ReportStatus = "REVIEWED"
	ReportDismissed ReportStatus = "DISMISSED"
)

type Report struct {
	ID         string       `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	PostID     string       `json:"postId" gorm:"column:post_id;type:uuid;not null"`
	ReportedBy string       `json:"reportedBy" gorm:"column:reported_by;type:uuid;not null"`
	Reason     ReportReason `json:"reason" gorm:"column:reason"`
	Status     ReportStatus `json:"status" gorm:"type:varchar(20);default:'PENDING'"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type ReportCreate struct {
	Reason ReportReason `json:"reason" binding:"required"`
}

type ReportStatusUpdate struct {
	Status ReportStatus `json:"status" binding:"required" example:"REVIEWED"`
}

func (Report) TableName() string {
	return "reports"
}
