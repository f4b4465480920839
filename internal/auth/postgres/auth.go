package auth

import (
	"fmt"

	"github.com/barangay/docucheck/internal/auth"
	"github.com/barangay/docucheck/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) GetByName(name string) (*auth.UserRecord, error) {
	var row user.User
	if err := r.db.Where("name = ?", name).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return toRecord(&row), nil
}

func (r *Repository) GetByID(userID int64) (*auth.UserRecord, error) {
	var row user.User
	if err := r.db.Where("id = ?", userID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return toRecord(&row), nil
}

func toRecord(row *user.User) *auth.UserRecord {
	return &auth.UserRecord{
		ID:           row.ID,
		Name:         row.Name,
		PasswordHash: row.PasswordHash,
		Role:         row.Role,
		IsActive:     row.IsActive,
	}
}
