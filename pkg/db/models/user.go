package models

import "time"

// Role names known to the portal.
const (
	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleUser     = "USER"
)

// Account statuses.
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

type AppUser struct {
	UserID       int64      `gorm:"column:UserId;primaryKey;autoIncrement" json:"userId"`
	Email        string     `gorm:"column:Email;size:255;not null;uniqueIndex" json:"email"`
	PasswordHash string     `gorm:"column:PasswordHash;size:255;not null" json:"-"`
	FullName     *string    `gorm:"column:FullName;size:200" json:"fullName"`
	Phone        *string    `gorm:"column:Phone;size:50" json:"phone"`
	Status       string     `gorm:"column:Status;size:20;not null;default:ACTIVE" json:"status"`
	CreatedAt    *time.Time `gorm:"column:CreatedAt" json:"createdAt"`

	UserRoles []UserRole `gorm:"foreignKey:UserID" json:"-"`
}

func (AppUser) TableName() string { return "APP_USER" }

// RoleNames flattens the preloaded UserRoles join.
func (u AppUser) RoleNames() []string {
	names := make([]string, 0, len(u.UserRoles))
	for _, ur := range u.UserRoles {
		if ur.Role.Name != "" {
			names = append(names, ur.Role.Name)
		}
	}
	return names
}

type Role struct {
	RoleID int64  `gorm:"column:RoleId;primaryKey;autoIncrement" json:"roleId"`
	Name   string `gorm:"column:Name;size:100;not null;uniqueIndex" json:"name"`
}

func (Role) TableName() string { return "ROLE" }

type UserRole struct {
	UserID int64 `gorm:"column:UserId;primaryKey" json:"userId"`
	RoleID int64 `gorm:"column:RoleId;primaryKey" json:"roleId"`

	Role Role `gorm:"foreignKey:RoleID" json:"-"`
}

func (UserRole) TableName() string { return "USER_ROLE" }
