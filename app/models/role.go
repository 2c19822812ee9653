package models

import "time"

// Role represents a staff role (e.g., admin, accountant)
type Role struct {
	ID          string            `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	Name        string            `json:"name" gorm:"uniqueIndex;not null" validate:"required"`
	IsActive    bool              `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt   *time.Time        `json:"deleted_at,omitempty" gorm:"index"`
	Permissions []*RolePermission `json:"permissions,omitempty" gorm:"foreignKey:RoleID;references:ID"` // optional for JSON responses
}

// RolePermission carries the per-resource action flags for a role.
// One row per (role, resource) pair.
type RolePermission struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()" validate:"required,uuid"`
	RoleID    string    `json:"role_id" gorm:"not null;index;type:uuid" validate:"required,uuid"`
	Resource  string    `json:"resource" gorm:"not null" validate:"required"`
	CanSelect bool      `json:"can_select" gorm:"default:false"`
	CanInsert bool      `json:"can_insert" gorm:"default:false"`
	CanUpdate bool      `json:"can_update" gorm:"default:false"`
	CanDelete bool      `json:"can_delete" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}
