package models

import "time"

// Role is the authorization level of a user
type Role string

const (
	RoleUser       Role = "USER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

// IsAdmin reports whether the role grants access to admin surfaces
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User represents an authenticated account
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex:users_ux_email;column:email" json:"email"`
	Name      string    `gorm:"type:varchar(128);not null;default:'';column:name" json:"name"`
	AvatarURL string    `gorm:"type:varchar(1024);not null;default:'';column:avatar_url" json:"avatarUrl"`
	GoogleID  string    `gorm:"type:varchar(64);not null;default:'';index;column:google_id" json:"-"`
	Role      Role      `gorm:"type:varchar(16);not null;default:'USER';column:role" json:"role"`
	CreatedAt time.Time `gorm:"not null;column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null;column:updated_at" json:"updatedAt"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
