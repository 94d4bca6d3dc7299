package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Admin lives in a separate identity space from User; admin tokens carry
// a different role claim and never resolve to a User row.
type Admin struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AdminID      string    `gorm:"size:30;uniqueIndex;not null" json:"admin_id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Number       string    `gorm:"size:30" json:"number"`
	AvatarURL    *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	AvatarPath   *string   `gorm:"type:text" json:"-"`
	IsSuperAdmin bool      `gorm:"default:false" json:"is_super_admin"`
	IsDeleted    bool      `gorm:"default:false" json:"is_deleted"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}

type LogAction string

const (
	LogSuspendUser   LogAction = "SUSPEND_USER"
	LogActivateUser  LogAction = "ACTIVATE_USER"
	LogSuspendPost   LogAction = "SUSPEND_POST"
	LogRestorePost   LogAction = "RESTORE_POST"
	LogDeleteComment LogAction = "DELETE_COMMENT"
	LogCreateAdmin   LogAction = "CREATE_ADMIN"
	LogDeleteAdmin   LogAction = "DELETE_ADMIN"
	LogOther         LogAction = "OTHER"
)

// Log is the append-only audit trail of admin actions.
type Log struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	ActorID     uuid.UUID         `gorm:"type:uuid;not null;index" json:"actor_id"`
	Actor       Admin             `gorm:"foreignKey:ActorID;constraint:OnDelete:CASCADE" json:"actor,omitempty"`
	Action      LogAction         `gorm:"size:30;not null" json:"action"`
	Description string            `gorm:"type:text" json:"description"`
	Meta        datatypes.JSONMap `gorm:"type:jsonb" json:"meta"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Log) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}
