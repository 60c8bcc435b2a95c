package postgres

import (
	"errors"

	"gorm.io/gorm"

	authpkg "github.com/docconnect/docconnect/internal/auth"
	"github.com/docconnect/docconnect/internal/core/datamodel/user"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) authpkg.RepositoryAPI {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) Create(p *user.Profile) error {
	return r.db.Create(p).Error
}

func (r *ProfileRepository) GetByEmail(email string) (*user.Profile, error) {
	var p user.Profile
	err := r.db.Where("email = ?", email).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepository) GetByID(id string) (*user.Profile, error) {
	var p user.Profile
	err := r.db.Where("id = ?", id).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
