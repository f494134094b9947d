package account

import (
	"time"
)

const (
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

type EmployeeAccount struct {
	UserID       string    `gorm:"column:user_id;type:varchar(50);primaryKey"`
	Name         string    `gorm:"column:name;type:varchar(255);not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(255);not null"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:'employee'"`
	ManagerID    *string   `gorm:"column:manager_id;type:varchar(50);index"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (EmployeeAccount) TableName() string {
	return "employee_accounts"
}
