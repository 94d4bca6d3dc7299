package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Active       bool      `gorm:"default:true" json:"active"`
	Suspended    bool      `gorm:"default:false" json:"suspended"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	Profile      *Profile  `gorm:"constraint:OnDelete:CASCADE" json:"profile,omitempty"`
	Settings     *Settings `gorm:"constraint:OnDelete:CASCADE" json:"settings,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

// SocialLink is one entry of the ordered socials list on a profile.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

type Profile struct {
	UserID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"user_id"`
	DisplayName    string         `gorm:"size:100;not null" json:"display_name"`
	AvatarURL      *string        `gorm:"type:text" json:"avatar_url,omitempty"`
	AvatarPath     *string        `gorm:"type:text" json:"-"`
	CoverImageURL  *string        `gorm:"type:text" json:"cover_image_url,omitempty"`
	CoverImagePath *string        `gorm:"type:text" json:"-"`
	Bio            *string        `gorm:"type:text" json:"bio,omitempty"`
	Nationality    *string        `gorm:"size:100" json:"nationality,omitempty"`
	Socials        datatypes.JSON `gorm:"type:jsonb" json:"socials,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

type Settings struct {
	UserID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Theme         string    `gorm:"size:20;default:system" json:"theme"`
	FontSize      string    `gorm:"size:20;default:medium" json:"font_size"`
	LineHeight    string    `gorm:"size:20;default:normal" json:"line_height"`
	Notifications bool      `gorm:"default:true" json:"notifications"`
}
