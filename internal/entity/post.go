package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Description string    `gorm:"type:text" json:"description"`
	ColorLight  string    `gorm:"size:20" json:"color_light"`
	ColorDark   string    `gorm:"size:20" json:"color_dark"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

type Post struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Slug           string    `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Summary        string    `gorm:"type:text" json:"summary"`
	CoverImageURL  *string   `gorm:"type:text" json:"cover_image_url,omitempty"`
	CoverImagePath *string   `gorm:"type:text" json:"-"`
	// Content stays null until the author saves the editor document for
	// the first time; a published post without content is not viewable.
	Content     datatypes.JSON `gorm:"type:jsonb" json:"content,omitempty"`
	CategoryID  *uuid.UUID     `gorm:"type:uuid" json:"category_id"`
	Category    *Category      `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Author      User           `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Published   bool           `gorm:"default:false" json:"published"`
	Suspended   bool           `gorm:"default:false" json:"suspended"`
	IsDeleted   bool           `gorm:"default:false" json:"is_deleted"`
	IsFeatured  bool           `gorm:"default:false" json:"is_featured"`
	Views       int            `gorm:"default:0" json:"views"`
	ReadTime    int            `gorm:"default:0" json:"read_time"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	Tags        []PostTag      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"tags,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

// PostTag is one tag row; membership checks in explore are a plain join.
type PostTag struct {
	PostID uuid.UUID `gorm:"type:uuid;primaryKey" json:"-"`
	Name   string    `gorm:"size:50;primaryKey" json:"name"`
}

func (pt PostTag) MarshalText() ([]byte, error) {
	return []byte(pt.Name), nil
}
