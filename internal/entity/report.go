package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReportReason string

const (
	ReasonSpam           ReportReason = "SPAM"
	ReasonHarassment     ReportReason = "HARASSMENT"
	ReasonHateSpeech     ReportReason = "HATE_SPEECH"
	ReasonMisinformation ReportReason = "MISINFORMATION"
	ReasonInappropriate  ReportReason = "INAPPROPRIATE"
	ReasonOther          ReportReason = "OTHER"
)

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportReviewed  ReportStatus = "REVIEWED"
	ReportResolved  ReportStatus = "RESOLVED"
	ReportDismissed ReportStatus = "DISMISSED"
)

// Report targets exactly one of user, post or comment; validation rejects
// a report with no target at all.
type Report struct {
	ID             uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID     uuid.UUID    `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reporter       User         `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"reporter,omitempty"`
	ReportedUserID *uuid.UUID   `gorm:"type:uuid" json:"reported_user_id,omitempty"`
	ReportedUser   *User        `gorm:"foreignKey:ReportedUserID;constraint:OnDelete:SET NULL" json:"reported_user,omitempty"`
	PostID         *uuid.UUID   `gorm:"type:uuid" json:"post_id,omitempty"`
	Post           *Post        `gorm:"foreignKey:PostID;constraint:OnDelete:SET NULL" json:"post,omitempty"`
	CommentID      *uuid.UUID   `gorm:"type:uuid" json:"comment_id,omitempty"`
	Comment        *Comment     `gorm:"foreignKey:CommentID;constraint:OnDelete:SET NULL" json:"comment,omitempty"`
	Reason         ReportReason `gorm:"size:30;not null" json:"reason"`
	Status         ReportStatus `gorm:"size:20;default:PENDING" json:"status"`
	Message        *string      `gorm:"type:text" json:"message,omitempty"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}
