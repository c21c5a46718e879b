package repo

import (
	"time"

	"gorm.io/gorm"

	"easy-matters/internal/domain"
)

type UserModel struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	FirmName     string `gorm:"size:255;not null"`
	PasswordHash string `gorm:"size:100;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserModel) TableName() string { return "users" }

type CustomerModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	PhoneNumber string `gorm:"size:64;not null;default:''"`
	IsActive    bool   `gorm:"not null;default:true;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CustomerModel) TableName() string { return "customers" }

type MatterModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"size:255;not null"`
	Description string         `gorm:"type:text;not null"`
	CustomerID  uint           `gorm:"not null;index"`
	Customer    *CustomerModel `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (MatterModel) TableName() string { return "matters" }

// Migrate creates or updates the schema; customers must exist before the
// matters foreign key.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&UserModel{}, &CustomerModel{}, &MatterModel{})
}

func (m *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID:           m.ID,
		Email:        m.Email,
		FirmName:     m.FirmName,
		PasswordHash: m.PasswordHash,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m *CustomerModel) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:          m.ID,
		Name:        m.Name,
		PhoneNumber: m.PhoneNumber,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (m *MatterModel) toDomain() *domain.Matter {
	return &domain.Matter{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		CustomerID:  m.CustomerID,
		CreatedAt:   m.CreatedAt,
	}
}
