package dto

import "github.com/google/uuid"

type CreateReportRequest struct {
	Reason         string     `json:"reason" binding:"required,oneof=SPAM HARASSMENT HATE_SPEECH MISINFORMATION INAPPROPRIATE OTHER"`
	Message        *string    `json:"message" binding:"omitempty,max=1000"`
	ReportedUserID *uuid.UUID `json:"reported_user_id"`
	PostID         *uuid.UUID `json:"post_id"`
	CommentID      *uuid.UUID `json:"comment_id"`
}

type UpdateReportStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING REVIEWED RESOLVED DISMISSED"`
}
