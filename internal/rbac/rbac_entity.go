package rbac

import (
	"time"

	"github.com/google/uuid"
)

type Role struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_role_name,priority:1"`
	Name        string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_role_name,priority:2"`
	Description string    `gorm:"type:varchar(255)"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Permission struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Resource string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_permission,priority:1"`
	Action   string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_permission,priority:2"`
	Label    string    `gorm:"type:varchar(100)"`
}

type RolePermission struct {
	RoleID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	PermissionID uuid.UUID `gorm:"type:uuid;primaryKey"`
}

type PersonnelRole struct {
	PersonnelID uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID      uuid.UUID `gorm:"type:uuid;primaryKey"`
}

// Models lists the tables backing the policy, for AutoMigrate.
func Models() []any {
	return []any{&Role{}, &Permission{}, &RolePermission{}, &PersonnelRole{}}
}
